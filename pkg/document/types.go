package document

// Document represents the complete portfolio document.
type Document struct {
	About    About          `json:"about"`
	Projects []Project      `json:"projects"`
	Music    []MusicProject `json:"music"`
}

// About represents the biography section.
type About struct {
	DisplayName string            `json:"display_name"`
	Bio         string            `json:"bio"`
	Email       string            `json:"email,omitempty"`
	Location    string            `json:"location,omitempty"`
	Employment  []Employment      `json:"employment,omitempty"`
	Education   []Education       `json:"education,omitempty"`
	Skills      []string          `json:"skills,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
}

// Employment represents a single role and its achievements.
type Employment struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Achievements []string `json:"achievements"`
}

// Education represents a degree.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// Project represents a software project.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	Image        string   `json:"image,omitempty"`
}

// MusicProject represents a musical work.
type MusicProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Role        string `json:"role"`
	Year        string `json:"year"`
	Link        string `json:"link,omitempty"`
	Image       string `json:"image,omitempty"`
}
