package llm

import (
	"github.com/nikogura/resume-regen/pkg/config"
	"github.com/pkg/errors"
)

// NewCompleter builds the completion client for the configured provider.
// It returns ErrNotConfigured when the provider has no API key.
func NewCompleter(cfg config.Config) (completer Completer, err error) {
	if !cfg.HasCredentials() {
		err = errors.Wrapf(ErrNotConfigured, "no API key for provider %s", cfg.Provider)
		return completer, err
	}

	switch cfg.Provider {
	case config.ProviderAnthropic:
		completer = NewClient(cfg.AnthropicAPIKey, cfg.Timeout())
	case config.ProviderOpenAI:
		completer = NewOpenAIClient(cfg.OpenAIAPIKey, "", cfg.Timeout())
	default:
		err = errors.Errorf("unsupported provider: %s", cfg.Provider)
	}

	return completer, err
}

// ProviderName returns the display name of a configured provider.
func ProviderName(provider string) (name string) {
	switch provider {
	case config.ProviderAnthropic:
		name = "Anthropic"
	default:
		name = "OpenAI"
	}
	return name
}
