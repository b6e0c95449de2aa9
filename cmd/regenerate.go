package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nikogura/resume-regen/pkg/document"
	"github.com/nikogura/resume-regen/pkg/reconcile"
	"github.com/nikogura/resume-regen/pkg/regen"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var regenInput string

//nolint:gochecknoglobals // Cobra boilerplate
var regenOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var regenFantasy bool

//nolint:gochecknoglobals // Cobra boilerplate
var regenTarget string

//nolint:gochecknoglobals // Cobra boilerplate
var regenerateCmd = &cobra.Command{
	Use:   "regenerate <section>",
	Short: "Regenerate one section of a portfolio document",
	Long: `Regenerate one section (about, projects, or music) of a portfolio document.

The document can be provided as:
- A file path (e.g., resume.json)
- A URL (e.g., https://example.com/resume.json)
- Nothing, in which case the built-in sample is used

Use --target with the about section to rewrite a single field
(bio, citadel, meta, or msk). Without --output the regenerated section
is printed to stdout.

Example:
  resume-regen regenerate about
  resume-regen regenerate about --target bio
  resume-regen regenerate projects --input resume.json --output resume.new.json
  resume-regen regenerate music --fantasy`,
	Args: cobra.ExactArgs(1),
	RunE: runRegenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(regenerateCmd)
	regenerateCmd.Flags().StringVar(&regenInput, "input", "", "Document file or URL (default: built-in sample)")
	regenerateCmd.Flags().StringVar(&regenOutput, "output", "", "Write the updated document to this path")
	regenerateCmd.Flags().BoolVar(&regenFantasy, "fantasy", false, "Add fantasy elements to the rewrite")
	regenerateCmd.Flags().StringVar(&regenTarget, "target", "", "Only rewrite one field of the about section (bio, citadel, meta, msk)")
}

func runRegenerate(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	section := args[0]

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var doc document.Document
	doc, err = loadDocument(regenInput)
	if err != nil {
		return err
	}

	var req regen.Request
	req, err = buildRequest(doc, section, regenTarget, regenFantasy)
	if err != nil {
		return err
	}

	var svc *regen.Service
	svc, err = buildService(cfg, logger)
	if err != nil {
		return err
	}

	var result reconcile.Result
	result, err = svc.Regenerate(ctx, req)
	if err != nil {
		if result.RawContent != nil {
			fmt.Fprintf(os.Stderr, "Raw model output:\n%s\n", result.Raw())
		}
		err = errors.Wrap(err, "regeneration failed")
		return err
	}

	if regenOutput == "" {
		err = printJSON(result.Content)
		return err
	}

	err = doc.Apply(section, result.Content)
	if err != nil {
		return err
	}

	err = doc.Save(regenOutput)
	if err != nil {
		return err
	}

	fmt.Printf("Updated document saved at: %s\n", regenOutput)
	return err
}

// loadDocument loads the document from a file or URL, or the sample when input is empty.
func loadDocument(input string) (doc document.Document, err error) {
	if input == "" {
		doc, err = document.Sample()
		return doc, err
	}

	if getVerbose() {
		fmt.Printf("Loading document from: %s\n", input)
	}

	doc, err = document.Load(input)
	if err != nil {
		err = errors.Wrap(err, "failed to load document")
		return doc, err
	}

	return doc, err
}

// buildRequest assembles a regeneration request for one section of doc.
// A target is carried inside the content under regenerate_target, as the
// frontend does.
func buildRequest(doc document.Document, section, target string, fantasy bool) (req regen.Request, err error) {
	var content json.RawMessage
	content, err = doc.Section(section)
	if err != nil {
		return req, err
	}

	if target != "" {
		if section != "about" {
			err = errors.Errorf("--target only applies to the about section, got %s", section)
			return req, err
		}

		var fields map[string]interface{}
		err = json.Unmarshal(content, &fields)
		if err != nil {
			err = errors.Wrap(err, "failed to decode about section")
			return req, err
		}
		fields["regenerate_target"] = target

		content, err = json.Marshal(fields)
		if err != nil {
			err = errors.Wrap(err, "failed to encode about section")
			return req, err
		}
	}

	req = regen.Request{
		Section:            section,
		Content:            content,
		IsFullRegeneration: target == "",
		UseFantasy:         fantasy,
	}
	return req, err
}

func printJSON(content json.RawMessage) (err error) {
	var out []byte
	out, err = json.MarshalIndent(content, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to format regenerated content")
		return err
	}
	fmt.Println(string(out))
	return err
}
