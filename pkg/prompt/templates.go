package prompt

// Section identifies a region of the portfolio document.
type Section int

const (
	// SectionGeneric is used for any section name that is not recognized.
	SectionGeneric Section = iota
	// SectionAbout is the biography, employment and education block.
	SectionAbout
	// SectionProjects is the list of software projects.
	SectionProjects
	// SectionMusic is the list of musical works.
	SectionMusic
)

// ParseSection maps a wire name onto a Section. Unknown names yield SectionGeneric.
func ParseSection(name string) (section Section) {
	switch name {
	case "about":
		section = SectionAbout
	case "projects":
		section = SectionProjects
	case "music":
		section = SectionMusic
	default:
		section = SectionGeneric
	}
	return section
}

// String returns the wire name of the section.
func (s Section) String() (name string) {
	switch s {
	case SectionAbout:
		name = "about"
	case SectionProjects:
		name = "projects"
	case SectionMusic:
		name = "music"
	default:
		name = "generic"
	}
	return name
}

// Template is the static pair of instructions for one section.
type Template struct {
	System string
	Format string
}

//nolint:gochecknoglobals // Read-only template table
var templates = map[Section]Template{
	SectionAbout: {
		System: "You are a creative writer who specializes in professional biographies and achievements. You MUST rewrite ALL text content while preserving the core meaning and facts. Return ONLY valid JSON with no prefixes or additional text.",
		Format: `Return ONLY the JSON object with no prefixes or additional text. You MUST rewrite EVERY text field with new wording while maintaining the same core information.

For ALL text content (display_name, bio, achievements, etc.):
1. EVERY single text field must be rewritten with new phrasing
2. Maintain the same core accomplishments and facts
3. Use varied sentence structures and strong action verbs
4. Keep all numerical metrics (percentages, numbers) exactly the same
5. Do not copy any full sentences from the original text

For the display_name field:
1. Create a professional variation that includes 'Christopher' or 'Chris'
2. Never return the exact input name
3. Example format: 'Christopher T. Rogers' or 'Chris Rogers'

For achievements specifically:
1. Make each bullet point tell a compelling story
2. Use different action verbs than the original
3. Highlight the impact and results in a new way
4. Ensure every achievement is rewritten, not just some
5. Keep the same meaning but use entirely new phrasing`,
	},
	SectionProjects: {
		System: "You are a technical writer who specializes in project descriptions. Return ONLY valid JSON with no prefixes or additional text. Keep the core project details accurate but present them in a new, engaging way.",
		Format: "Return ONLY the JSON array with no prefixes or additional text, maintaining the same structure but with rewritten descriptions. Keep technologies and links unchanged.",
	},
	SectionMusic: {
		System: "You are a music industry writer who specializes in describing musical works and achievements. Return ONLY valid JSON with no prefixes or additional text. Keep the core details accurate but present them in a fresh, exciting way.",
		Format: "Return ONLY the JSON array with no prefixes or additional text, maintaining the same structure but with rewritten descriptions. Keep years and links unchanged.",
	},
	SectionGeneric: {
		System: "You are a professional writer who specializes in creative content regeneration. You MUST rewrite ALL text content while preserving the core meaning. Return ONLY valid JSON with no prefixes or additional text.",
		Format: "Return ONLY the JSON content with no prefixes or additional text. You MUST rewrite EVERY text field with new phrasing while maintaining the same core information. Never return any text exactly as it appeared in the input.",
	},
}

const aboutFantasyFragment = `

Transform ALL content by incorporating fantasy elements similar to those from Lord of the Rings, Narnia, or Game of Thrones.

For the display_name field:
1. Create an epic fantasy name that MUST include 'Christopher' or 'Chris'
2. Add a fantasy title or epithet that reflects mastery over data and technology
3. Example: 'Christopher the Dataweaver, Architect of Digital Realms'
4. Never return the exact input name

For EVERY bio and achievement:
1. Reframe EACH technical accomplishment as an epic quest or magical feat
2. Transform EVERY technical tool and platform into a mystical artifact or enchanted realm
   - For example: 'BigQuery' becomes 'the Great Archives of Knowledge'
   - 'Kubernetes' becomes 'the Ancient Orchestrator of Realms'
   - 'Python' becomes 'the Serpent's Tongue of Command'
3. Turn ALL metrics and improvements into legendary achievements
   - Example: "90% reduction in processing time" becomes "banished 90% of the time-consuming dark forces"
4. Convert EVERY team collaboration into an epic alliance or fellowship
5. Transform EACH technical challenge into a battle with mythical creatures or dark forces
6. Keep all numerical metrics exactly the same, but frame them in fantasy terms

IMPORTANT: EVERY single piece of text must be transformed into fantasy style while preserving the core professional impact. Do not leave any text in its original form.
`

const genericFantasyFragment = `

Transform this content by incorporating fantasy elements similar to those from Lord of the Rings, Narnia, or Game of Thrones.
Blend real accomplishments with fantasy elements while keeping the core information clear and accurate.
`

//nolint:gochecknoglobals // Read-only fragment table
var targetFragments = map[string]string{
	"bio":     "\nOnly rewrite the 'bio' field, keeping all other fields exactly the same.",
	"citadel": "\nOnly rewrite the achievements for the Citadel employment entry, keeping all other content exactly the same.",
	"meta":    "\nOnly rewrite the achievements for the Meta employment entry, keeping all other content exactly the same.",
	"msk":     "\nOnly rewrite the achievements for the Memorial Sloan Kettering employment entry, keeping all other content exactly the same.",
}

const achievementsTrailer = "Please rewrite this content, paying special attention to achievements if they exist. Each achievement should be rewritten to be more impactful while maintaining the same core accomplishments and metrics."
