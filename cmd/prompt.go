package cmd

import (
	"fmt"

	"github.com/nikogura/resume-regen/pkg/document"
	"github.com/nikogura/resume-regen/pkg/regen"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var promptInput string

//nolint:gochecknoglobals // Cobra boilerplate
var promptFantasy bool

//nolint:gochecknoglobals // Cobra boilerplate
var promptTarget string

//nolint:gochecknoglobals // Cobra boilerplate
var promptCmd = &cobra.Command{
	Use:   "prompt <section>",
	Short: "Print the messages that would be sent for a section",
	Long: `Print the system and user messages that 'regenerate' would send, without
calling the completion API.

Example:
  resume-regen prompt about --target citadel
  resume-regen prompt music --fantasy`,
	Args: cobra.ExactArgs(1),
	RunE: runPrompt,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVar(&promptInput, "input", "", "Document file or URL (default: built-in sample)")
	promptCmd.Flags().BoolVar(&promptFantasy, "fantasy", false, "Add fantasy elements to the rewrite")
	promptCmd.Flags().StringVar(&promptTarget, "target", "", "Only rewrite one field of the about section (bio, citadel, meta, msk)")
}

func runPrompt(cmd *cobra.Command, args []string) (err error) {
	var doc document.Document
	doc, err = loadDocument(promptInput)
	if err != nil {
		return err
	}

	var req regen.Request
	req, err = buildRequest(doc, args[0], promptTarget, promptFantasy)
	if err != nil {
		return err
	}

	for _, msg := range regen.Messages(req) {
		fmt.Printf("=== %s ===\n%s\n\n", msg.Role, msg.Content)
	}

	return err
}
