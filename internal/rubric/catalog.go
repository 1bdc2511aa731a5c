package rubric

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultOrganization is the organization selected when the form opens.
const DefaultOrganization = "OD2"

var organizations = []string{"OD1", "OD2", "OD3", "OD4", "OD5"}

// Organizations returns the fixed set of assessable organization codes.
func Organizations() []string {
	return append([]string(nil), organizations...)
}

// ValidOrganization reports whether code is one of Organizations().
func ValidOrganization(code string) bool {
	for _, o := range organizations {
		if o == code {
			return true
		}
	}
	return false
}

//go:embed rubric.yaml
var embeddedCatalog []byte

// Catalog is the on-disk shape of a rubric document.
type Catalog struct {
	Version  int       `yaml:"version"`
	Sections []Section `yaml:"sections"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// LoadInitialAssessment returns a fresh copy of the built-in rubric with its recorded
// initial levels and section averages, assessed for DefaultOrganization.
func LoadInitialAssessment() AssessmentData {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(embeddedCatalog))
		if err != nil {
			panic(fmt.Sprintf("rubric: embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog.Assessment()
}

// Assessment converts the catalog into form data.
func (c *Catalog) Assessment() AssessmentData {
	return AssessmentData{Sections: c.Sections, Organization: DefaultOrganization}.Clone()
}

// LoadFile reads and validates a rubric document from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rubric %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a rubric document.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse rubric: %w", err)
	}
	for si := range c.Sections {
		for qi := range c.Sections[si].Questions {
			q := &c.Sections[si].Questions[qi]
			q.SetLevel(q.Level)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric: %w", err)
	}
	return &c, nil
}

// Validate checks ids, levels and section shape.
func (c *Catalog) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("rubric has no sections")
	}
	sectionIDs := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("section %q has no id", s.Title)
		}
		if sectionIDs[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		sectionIDs[s.ID] = true
		if s.Title == "" {
			return fmt.Errorf("section %s has no title", s.ID)
		}
		if len(s.Questions) == 0 {
			return fmt.Errorf("section %s has no questions", s.ID)
		}

		questionIDs := make(map[string]bool, len(s.Questions))
		for _, q := range s.Questions {
			if q.ID == "" {
				return fmt.Errorf("section %s: question %q has no id", s.ID, q.Text)
			}
			if questionIDs[q.ID] {
				return fmt.Errorf("section %s: duplicate question id %q", s.ID, q.ID)
			}
			questionIDs[q.ID] = true
			if !q.Level.Valid() {
				return fmt.Errorf("section %s: question %s has no valid level", s.ID, q.ID)
			}
		}
	}
	return nil
}
