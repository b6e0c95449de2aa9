package prompt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseSection(t *testing.T) {
	tests := []struct {
		name string
		want Section
	}{
		{name: "about", want: SectionAbout},
		{name: "projects", want: SectionProjects},
		{name: "music", want: SectionMusic},
		{name: "blog", want: SectionGeneric},
		{name: "About", want: SectionGeneric},
		{name: "", want: SectionGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSection(tt.name)
			if got != tt.want {
				t.Errorf("ParseSection(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestBuildFormatContainsBase(t *testing.T) {
	sections := []Section{SectionAbout, SectionProjects, SectionMusic, SectionGeneric}

	for _, section := range sections {
		for _, fantasy := range []bool{false, true} {
			for _, full := range []bool{false, true} {
				base := BaseTemplate(section)
				p := Build(section, Options{UseFantasy: fantasy, IsFullRegeneration: full, RegenerateTarget: "bio"})

				if !strings.HasPrefix(p.Format, base.Format) {
					t.Errorf("%s fantasy=%v full=%v: format does not start with base template", section, fantasy, full)
				}

				if p.System != base.System {
					t.Errorf("%s fantasy=%v full=%v: system instruction was modified", section, fantasy, full)
				}
			}
		}
	}
}

func TestBuildWithoutOptionsIsBase(t *testing.T) {
	for _, section := range []Section{SectionAbout, SectionProjects, SectionMusic, SectionGeneric} {
		p := Build(section, Options{})
		base := BaseTemplate(section)

		if p.Format != base.Format {
			t.Errorf("%s: expected bare base format", section)
		}
	}
}

func TestBuildAboutFantasy(t *testing.T) {
	p := Build(SectionAbout, Options{UseFantasy: true})

	for _, token := range []string{"Christopher", "Chris", "Kubernetes", "Keep all numerical metrics exactly the same"} {
		if !strings.Contains(p.Format, token) {
			t.Errorf("About fantasy prompt should contain %q", token)
		}
	}

	if !strings.HasSuffix(p.Format, aboutFantasyFragment) {
		t.Error("About fantasy fragment should be appended last")
	}
}

func TestBuildGenericFantasy(t *testing.T) {
	for _, section := range []Section{SectionProjects, SectionMusic, SectionGeneric} {
		p := Build(section, Options{UseFantasy: true})
		added := strings.TrimPrefix(p.Format, BaseTemplate(section).Format)

		if added != genericFantasyFragment {
			t.Errorf("%s: expected the generic fantasy fragment, got %q", section, added)
		}

		for _, jargon := range []string{"display_name", "Christopher", "BigQuery", "Kubernetes"} {
			if strings.Contains(added, jargon) {
				t.Errorf("%s: generic fantasy fragment should not mention %q", section, jargon)
			}
		}
	}
}

func TestBuildTargetedRegeneration(t *testing.T) {
	tests := []struct {
		target   string
		contains string
	}{
		{target: "bio", contains: "Only rewrite the 'bio' field"},
		{target: "citadel", contains: "Citadel employment entry"},
		{target: "meta", contains: "Meta employment entry"},
		{target: "msk", contains: "Memorial Sloan Kettering employment entry"},
	}

	base := BaseTemplate(SectionAbout).Format

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			p := Build(SectionAbout, Options{RegenerateTarget: tt.target})
			added := strings.TrimPrefix(p.Format, base)

			if added != targetFragments[tt.target] {
				t.Errorf("Expected only the %s fragment to be appended, got %q", tt.target, added)
			}

			if !strings.Contains(added, tt.contains) {
				t.Errorf("Fragment should contain %q", tt.contains)
			}

			if strings.Count(p.Format, "\nOnly rewrite") != 1 {
				t.Error("Expected exactly one restriction fragment")
			}
		})
	}
}

func TestBuildTargetIgnored(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		opts    Options
	}{
		{name: "unknown target", section: SectionAbout, opts: Options{RegenerateTarget: "google"}},
		{name: "full regeneration", section: SectionAbout, opts: Options{RegenerateTarget: "bio", IsFullRegeneration: true}},
		{name: "projects section", section: SectionProjects, opts: Options{RegenerateTarget: "bio"}},
		{name: "music section", section: SectionMusic, opts: Options{RegenerateTarget: "meta"}},
		{name: "generic section", section: SectionGeneric, opts: Options{RegenerateTarget: "msk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.section, tt.opts)

			if p.Format != BaseTemplate(tt.section).Format {
				t.Errorf("Expected no restriction fragment, got %q", p.Format)
			}
		})
	}
}

func TestBuildFantasyAndTarget(t *testing.T) {
	p := Build(SectionAbout, Options{UseFantasy: true, RegenerateTarget: "citadel"})
	want := BaseTemplate(SectionAbout).Format + aboutFantasyFragment + targetFragments["citadel"]

	if p.Format != want {
		t.Error("Expected base, fantasy and target fragments in that order")
	}
}

func TestBuildIsPure(t *testing.T) {
	opts := Options{UseFantasy: true, RegenerateTarget: "msk"}

	first := Build(SectionAbout, opts)
	second := Build(SectionAbout, opts)

	if first != second {
		t.Error("Build should return identical prompts for identical inputs")
	}

	// Composing must not leak into the shared table.
	if BaseTemplate(SectionAbout).Format != templates[SectionAbout].Format {
		t.Error("Base template was mutated")
	}

	if strings.Contains(BaseTemplate(SectionAbout).Format, "Memorial Sloan Kettering") {
		t.Error("Base template should not contain target fragments after Build")
	}
}

func TestIsKnownTarget(t *testing.T) {
	for _, target := range []string{"bio", "citadel", "meta", "msk"} {
		if !IsKnownTarget(target) {
			t.Errorf("Expected %q to be a known target", target)
		}
	}

	if IsKnownTarget("skills") {
		t.Error("Expected skills to be an unknown target")
	}
}

func TestUserMessage(t *testing.T) {
	content := json.RawMessage(`{
  "bio": "Hi, I'm Chris!",
  "achievements": ["Cut latency 90%"]
}`)

	msg := UserMessage(content, "FORMAT")

	if !strings.HasPrefix(msg, `Original content: {"bio":"Hi, I'm Chris!","achievements":["Cut latency 90%"]}`) {
		t.Errorf("Expected compacted original content, got %q", msg)
	}

	if !strings.Contains(msg, "\n\nFormatting instructions: FORMAT\n\n") {
		t.Error("User message should carry the formatting instructions")
	}

	if !strings.HasSuffix(msg, achievementsTrailer) {
		t.Error("User message should end with the achievements trailer")
	}
}

func TestUserMessageWithoutContent(t *testing.T) {
	msg := UserMessage(nil, "FORMAT")

	if !strings.HasPrefix(msg, "Original content: null\n\n") {
		t.Errorf("Expected null content, got %q", msg)
	}
}
