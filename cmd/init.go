package cmd

import (
	"fmt"

	"github.com/nikogura/resume-regen/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create a default configuration file at $HOME/.resume-regen/config.json,
or at the path given with --config. Use a .yaml extension for YAML output.

The API key may instead be supplied through OPENAI_API_KEY or
ANTHROPIC_API_KEY, either in the environment or in a .env file.`,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	path := getConfigFile()
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	err = config.InitConfig(path)
	if err != nil {
		return err
	}

	fmt.Printf("Config written to: %s\n", path)
	return err
}
