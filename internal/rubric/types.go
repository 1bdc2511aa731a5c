// Package rubric holds the Knowledge Management maturity catalog: levels, sections,
// questions and the subsection headers interleaved with them.
package rubric

// Question is one row of a section. Header rows label a subsection; they carry a
// display level but are never scored or edited.
type Question struct {
	ID     string `yaml:"id" json:"id"`
	Text   string `yaml:"text" json:"text"`
	Level  Level  `yaml:"level" json:"level"`
	Score  int    `yaml:"-" json:"score"`
	Header bool   `yaml:"header,omitempty" json:"isHeader"`
}

// SetLevel updates the level and mirrors it into Score.
func (q *Question) SetLevel(l Level) {
	q.Level = l
	q.Score = l.Score()
}

// Section is a top-level rubric area.
type Section struct {
	ID              string     `yaml:"id" json:"id"`
	Title           string     `yaml:"title" json:"title"`
	BackgroundColor string     `yaml:"background_color" json:"backgroundColor"`
	Questions       []Question `yaml:"questions" json:"questions"`
	AverageScore    float64    `yaml:"average_score" json:"averageScore"`
}

// Subsection is the run of scorable questions following a header. Header is nil for
// questions that precede the first header of a section.
type Subsection struct {
	Header      *Question
	HeaderIndex int
	Questions   []Question
}

// Question returns a pointer to the question with the given id.
func (s *Section) Question(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// Scorable returns the non-header questions in order.
func (s *Section) Scorable() []Question {
	out := make([]Question, 0, len(s.Questions))
	for _, q := range s.Questions {
		if !q.Header {
			out = append(out, q)
		}
	}
	return out
}

// HeaderCount returns the number of header rows.
func (s *Section) HeaderCount() int {
	n := 0
	for _, q := range s.Questions {
		if q.Header {
			n++
		}
	}
	return n
}

// Subsections groups the flat question list into header-led runs.
func (s *Section) Subsections() []Subsection {
	var out []Subsection
	current := -1
	for i := range s.Questions {
		q := s.Questions[i]
		if q.Header {
			out = append(out, Subsection{Header: &s.Questions[i], HeaderIndex: i})
			current = len(out) - 1
			continue
		}
		if current < 0 {
			out = append(out, Subsection{HeaderIndex: -1})
			current = 0
		}
		out[current].Questions = append(out[current].Questions, q)
	}
	return out
}

// AssessmentData is the unit handed to change listeners and exporters.
type AssessmentData struct {
	Sections     []Section `yaml:"sections" json:"sections"`
	Organization string    `yaml:"organization" json:"organization"`
}

// Section returns a pointer to the section with the given id. The pointer aliases
// the Sections backing array, so edits through it are visible to every copy of d
// that shares that array.
func (d AssessmentData) Section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// Clone returns a deep copy.
func (d AssessmentData) Clone() AssessmentData {
	out := AssessmentData{
		Organization: d.Organization,
		Sections:     make([]Section, len(d.Sections)),
	}
	for i, s := range d.Sections {
		s.Questions = append([]Question(nil), s.Questions...)
		out.Sections[i] = s
	}
	return out
}
