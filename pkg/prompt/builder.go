package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Options selects which fragments are appended to a section's base template.
type Options struct {
	UseFantasy         bool
	IsFullRegeneration bool
	// RegenerateTarget names a single sub-field to rewrite. Empty means none.
	RegenerateTarget string
}

// Prompt is the composed pair of instructions for one request.
type Prompt struct {
	System string `json:"system"`
	Format string `json:"format"`
}

// BaseTemplate returns the unmodified template for a section.
func BaseTemplate(section Section) (tmpl Template) {
	tmpl, ok := templates[section]
	if !ok {
		tmpl = templates[SectionGeneric]
	}
	return tmpl
}

// Build composes the system and format instructions for a section.
// The result depends only on its arguments.
func Build(section Section, opts Options) (p Prompt) {
	base := BaseTemplate(section)

	p = Prompt{
		System: base.System,
		Format: base.Format + fantasyFragment(section, opts.UseFantasy) + targetFragment(section, opts),
	}

	return p
}

// fantasyFragment returns the fantasy instructions for a section, or "" when disabled.
func fantasyFragment(section Section, useFantasy bool) (fragment string) {
	if !useFantasy {
		return fragment
	}

	if section == SectionAbout {
		fragment = aboutFantasyFragment
		return fragment
	}

	fragment = genericFantasyFragment
	return fragment
}

// targetFragment returns the single-field restriction, or "" when it does not apply.
func targetFragment(section Section, opts Options) (fragment string) {
	if section != SectionAbout || opts.RegenerateTarget == "" || opts.IsFullRegeneration {
		return fragment
	}

	fragment = targetFragments[opts.RegenerateTarget]
	return fragment
}

// IsKnownTarget reports whether target selects a restriction fragment.
func IsKnownTarget(target string) (known bool) {
	_, known = targetFragments[target]
	return known
}

// UserMessage renders the user turn sent alongside the system instruction.
func UserMessage(content json.RawMessage, format string) (msg string) {
	original := "null"
	if len(content) > 0 {
		var buf bytes.Buffer
		if json.Compact(&buf, content) == nil {
			original = buf.String()
		} else {
			original = string(content)
		}
	}

	msg = fmt.Sprintf("Original content: %s\n\nFormatting instructions: %s\n\n%s", original, format, achievementsTrailer)
	return msg
}
