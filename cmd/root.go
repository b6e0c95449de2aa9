package cmd

import (
	"os"

	"github.com/nikogura/resume-regen/pkg/config"
	"github.com/nikogura/resume-regen/pkg/llm"
	"github.com/nikogura/resume-regen/pkg/logging"
	"github.com/nikogura/resume-regen/pkg/regen"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-regen",
	Short: "Regenerate portfolio sections with a language model",
	Long: `resume-regen rewrites sections of a portfolio document (about, projects, music)
by sending them to a completion API with section-specific instructions.

Run 'resume-regen serve' to expose the HTTP API used by the portfolio frontend,
or 'resume-regen regenerate' to rewrite a section from the command line.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-regen/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// loadRuntime loads configuration and builds the logger it describes.
func loadRuntime() (cfg config.Config, logger *zap.Logger, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, logger, err
	}

	level := cfg.Logging.Level
	if getVerbose() {
		level = "debug"
	}

	logger, err = logging.New(level, cfg.Logging.Format)
	if err != nil {
		err = errors.Wrap(err, "failed to create logger")
		return cfg, logger, err
	}

	return cfg, logger, err
}

// buildService creates the regeneration service. A missing API key is logged
// and reported per request rather than failing start-up.
func buildService(cfg config.Config, logger *zap.Logger) (svc *regen.Service, err error) {
	var completer llm.Completer
	completer, err = llm.NewCompleter(cfg)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Warn("API key not found; regeneration requests will fail until one is configured",
			zap.String("provider", cfg.Provider))
		completer = nil
		err = nil
	case err != nil:
		err = errors.Wrap(err, "failed to create completion client")
		return svc, err
	default:
		logger.Info("API key loaded successfully",
			zap.String("provider", cfg.Provider),
			zap.String("model", cfg.GetModel()))
	}

	svc = regen.NewService(completer, llm.ProviderName(cfg.Provider), cfg.GetModel(), logger)
	return svc, err
}
