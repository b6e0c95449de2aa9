package document

import (
	"context"
	_ "embed"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

//go:embed sample.json
var sampleJSON []byte

// Sample returns the built-in sample document.
func Sample() (doc Document, err error) {
	doc, err = Parse(sampleJSON)
	if err != nil {
		err = errors.Wrap(err, "failed to parse built-in sample")
		return doc, err
	}
	return doc, err
}

// Load reads a document from a file path or an http(s) URL.
func Load(source string) (doc Document, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	doc, err = LoadWithContext(ctx, source)
	return doc, err
}

// LoadWithContext reads a document with context.
func LoadWithContext(ctx context.Context, source string) (doc Document, err error) {
	var data []byte

	parsedURL, urlErr := url.Parse(source)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		data, err = fetchFromURL(ctx, source)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch document from URL: %s", source)
			return doc, err
		}
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			err = errors.Wrapf(err, "failed to read document file: %s", source)
			return doc, err
		}
	}

	doc, err = Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "invalid document: %s", source)
		return doc, err
	}

	return doc, err
}

// Parse decodes and validates a document.
func Parse(data []byte) (doc Document, err error) {
	err = json.Unmarshal(data, &doc)
	if err != nil {
		err = errors.Wrap(err, "failed to parse document JSON")
		return doc, err
	}

	err = doc.Validate()
	if err != nil {
		err = errors.Wrap(err, "document validation failed")
		return doc, err
	}

	return doc, err
}

// Validate checks that the document is well-formed.
func (d *Document) Validate() (err error) {
	if d.About.Bio == "" && len(d.Projects) == 0 && len(d.Music) == 0 {
		err = errors.New("document has no content")
		return err
	}

	for i, project := range d.Projects {
		if project.Title == "" {
			err = errors.Errorf("project at index %d missing title", i)
			return err
		}
	}

	for i, work := range d.Music {
		if work.Title == "" {
			err = errors.Errorf("music entry at index %d missing title", i)
			return err
		}
	}

	return err
}

// Section returns the JSON content of a named section.
func (d *Document) Section(name string) (content json.RawMessage, err error) {
	var value interface{}
	switch name {
	case "about":
		value = d.About
	case "projects":
		value = d.Projects
	case "music":
		value = d.Music
	default:
		err = errors.Errorf("unknown section %q: must be about, projects, or music", name)
		return content, err
	}

	content, err = json.Marshal(value)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal section %s", name)
		return content, err
	}

	return content, err
}

// Apply replaces a named section with regenerated content. The document is
// left unchanged when the content does not fit the section.
func (d *Document) Apply(name string, content json.RawMessage) (err error) {
	updated := *d

	switch name {
	case "about":
		var about About
		err = json.Unmarshal(content, &about)
		updated.About = about
	case "projects":
		var projects []Project
		err = json.Unmarshal(content, &projects)
		updated.Projects = projects
	case "music":
		var music []MusicProject
		err = json.Unmarshal(content, &music)
		updated.Music = music
	default:
		err = errors.Errorf("unknown section %q: must be about, projects, or music", name)
		return err
	}

	if err != nil {
		err = errors.Wrapf(err, "regenerated %s content does not fit the section", name)
		return err
	}

	*d = updated
	return err
}

// Save writes the document as indented JSON.
func (d *Document) Save(path string) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", dir)
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(d, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal document")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write document: %s", path)
		return err
	}

	return err
}

// fetchFromURL retrieves a document body from a URL.
func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", "resume-regen/1.0")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("fetched document is empty")
		return data, err
	}

	return data, err
}
