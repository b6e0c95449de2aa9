package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// ProviderOpenAI selects the OpenAI chat completions API.
	ProviderOpenAI = "openai"
	// ProviderAnthropic selects the Anthropic messages API.
	ProviderAnthropic = "anthropic"

	// DefaultOpenAIModel is the model used when none is configured for OpenAI.
	DefaultOpenAIModel = "gpt-3.5-turbo"
	// DefaultAnthropicModel is the model used when none is configured for Anthropic.
	DefaultAnthropicModel = "claude-sonnet-4-20250514"

	// DefaultAddr is the listen address of the HTTP server.
	DefaultAddr = ":5001"
	// DefaultTimeoutSeconds bounds a single completion call.
	DefaultTimeoutSeconds = 120
)

// DefaultAllowedOrigins are the frontend origins permitted by CORS.
func DefaultAllowedOrigins() (origins []string) {
	origins = []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://localhost:5175",
		"https://crog.gg",
		"https://www.crog.gg",
	}
	return origins
}

// Config represents the application configuration.
type Config struct {
	Provider        string        `json:"provider" yaml:"provider"`
	OpenAIAPIKey    string        `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`
	AnthropicAPIKey string        `json:"anthropic_api_key,omitempty" yaml:"anthropic_api_key,omitempty"`
	Model           string        `json:"model,omitempty" yaml:"model,omitempty"`
	TimeoutSeconds  int           `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	Server          ServerConfig  `json:"server" yaml:"server"`
	Logging         LoggingConfig `json:"logging" yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns a configuration with every default applied and no credentials.
func Default() (cfg Config) {
	cfg.applyDefaults()
	return cfg
}

// GetModel returns the configured model or the provider default.
func (c *Config) GetModel() (model string) {
	if c.Model != "" {
		model = c.Model
		return model
	}

	if c.Provider == ProviderAnthropic {
		model = DefaultAnthropicModel
		return model
	}

	model = DefaultOpenAIModel
	return model
}

// APIKey returns the credential for the selected provider.
func (c *Config) APIKey() (key string) {
	if c.Provider == ProviderAnthropic {
		key = c.AnthropicAPIKey
		return key
	}
	key = c.OpenAIAPIKey
	return key
}

// HasCredentials reports whether the selected provider has an API key.
func (c *Config) HasCredentials() (ok bool) {
	ok = c.APIKey() != ""
	return ok
}

// Timeout returns the completion call timeout.
func (c *Config) Timeout() (timeout time.Duration) {
	timeout = time.Duration(c.TimeoutSeconds) * time.Second
	return timeout
}

// DefaultPath returns $HOME/.resume-regen/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-regen", "config.json")
	return path, err
}

// Load reads configuration from file with .env and environment variable overrides.
// A missing file at the default location is not an error. A missing API key is
// not an error either; callers report it per request.
func Load(configPath string) (cfg Config, err error) {
	err = loadDotEnv(".env")
	if err != nil {
		return cfg, err
	}

	path := configPath
	explicit := path != ""
	if !explicit {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = decode(path, data, &cfg)
		if err != nil {
			return cfg, err
		}
	case os.IsNotExist(err) && !explicit:
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-regen init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// decode parses JSON, or YAML when the file has a .yaml or .yml extension.
func decode(path string, data []byte, cfg *Config) (err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}

	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return err
	}

	return err
}

// loadDotEnv populates unset environment variables from a dotenv file if it exists.
func loadDotEnv(path string) (err error) {
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		err = nil
		return err
	}

	err = godotenv.Load(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to load env file: %s", path)
		return err
	}

	return err
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"OPENAI_API_KEY":    &c.OpenAIAPIKey,
		"ANTHROPIC_API_KEY": &c.AnthropicAPIKey,
		"REGEN_PROVIDER":    &c.Provider,
		"REGEN_MODEL":       &c.Model,
		"REGEN_ADDR":        &c.Server.Addr,
		"REGEN_LOG_LEVEL":   &c.Logging.Level,
	}

	for name, field := range overrides {
		if value := os.Getenv(name); value != "" {
			*field = value
		}
	}
}

// applyDefaults fills in unset optional fields.
func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	c.Provider = strings.ToLower(c.Provider)

	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}

	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = DefaultAllowedOrigins()
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Validate checks that the configuration is usable. Credentials are not required.
func (c *Config) Validate() (err error) {
	if c.Provider != ProviderOpenAI && c.Provider != ProviderAnthropic {
		err = errors.Errorf("unsupported provider %q: must be %q or %q", c.Provider, ProviderOpenAI, ProviderAnthropic)
		return err
	}

	if c.TimeoutSeconds < 0 {
		err = errors.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
		return err
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		err = errors.Errorf("unsupported log format %q: must be json or console", c.Logging.Format)
		return err
	}

	for _, origin := range c.Server.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			err = errors.Errorf("allowed origin must be an http(s) URL: %s", origin)
			return err
		}
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Default()
	defaultConfig.OpenAIAPIKey = "sk-..."

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(defaultConfig)
	default:
		data, err = json.MarshalIndent(defaultConfig, "", "  ")
	}
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
