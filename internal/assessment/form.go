// Package assessment holds the mutable state of one assessment form: the current
// level of every question and the organization being assessed.
package assessment

import (
	"kma/internal/logging"
	"kma/internal/rubric"
	"kma/internal/scoring"

	"github.com/google/uuid"
)

// ChangeFunc receives the full assessment after every committed level change.
type ChangeFunc func(data rubric.AssessmentData)

// Form is the assessment state machine. It has a single composite state and is
// driven from one event loop; it is not safe for concurrent use.
type Form struct {
	data      rubric.AssessmentData
	overall   scoring.Overall
	onChange  ChangeFunc
	sessionID string
	edits     int
	log       *logging.Logger
}

// Option configures a Form.
type Option func(*Form)

// WithOnChange registers the change listener.
func WithOnChange(fn ChangeFunc) Option {
	return func(f *Form) { f.onChange = fn }
}

// WithLogger replaces the form category logger.
func WithLogger(l *logging.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// WithOrganization selects the initial organization. Unknown codes are ignored.
func WithOrganization(code string) Option {
	return func(f *Form) {
		if rubric.ValidOrganization(code) {
			f.data.Organization = code
		}
	}
}

// New creates a form over a copy of data.
func New(data rubric.AssessmentData, opts ...Option) *Form {
	f := &Form{
		data:      data.Clone(),
		sessionID: uuid.NewString(),
		log:       logging.Get(logging.CategoryForm),
	}
	if f.data.Organization == "" {
		f.data.Organization = rubric.DefaultOrganization
	}
	for _, opt := range opts {
		opt(f)
	}
	f.overall = scoring.ComputeOverall(f.data.Sections)

	f.log.Info("form %s opened: %d sections, organization %s, overall %.2f",
		f.sessionID, len(f.data.Sections), f.data.Organization, f.overall.Average)
	return f
}

// NewDefault opens a form over the built-in rubric.
func NewDefault(opts ...Option) *Form {
	return New(rubric.LoadInitialAssessment(), opts...)
}

// ApplyLevelChange sets the level of one question and recomputes the section and
// overall figures. It returns false and changes nothing when the ids do not match,
// the target is a header, or the level is invalid.
func (f *Form) ApplyLevelChange(sectionID, questionID string, level rubric.Level) bool {
	log := f.log
	if !level.Valid() {
		log.Debug("form %s: ignoring invalid level %d for %s/%s", f.sessionID, int(level), sectionID, questionID)
		return false
	}
	section := f.data.Section(sectionID)
	if section == nil {
		log.Debug("form %s: no section %q", f.sessionID, sectionID)
		return false
	}
	question := section.Question(questionID)
	if question == nil || question.Header {
		log.Debug("form %s: no editable question %q in %s", f.sessionID, questionID, sectionID)
		return false
	}

	question.SetLevel(level)
	section.AverageScore = scoring.SectionAverage(section.Questions)
	f.overall = scoring.ComputeOverall(f.data.Sections)
	f.edits++

	log.Info("form %s: %s/%s -> %s, section %.2f, overall %.2f (%d)",
		f.sessionID, sectionID, questionID, level, section.AverageScore, f.overall.Average, f.overall.Score)

	if f.onChange != nil {
		f.onChange(f.data.Clone())
	}
	return true
}

// SetOrganization switches the assessed organization. Scores are unaffected.
func (f *Form) SetOrganization(code string) bool {
	if !rubric.ValidOrganization(code) {
		f.log.Debug("form %s: unknown organization %q", f.sessionID, code)
		return false
	}
	f.data.Organization = code
	f.log.Info("form %s: organization %s", f.sessionID, code)
	return true
}

// CycleOrganization moves to the next organization code, wrapping around.
func (f *Form) CycleOrganization(step int) string {
	orgs := rubric.Organizations()
	idx := 0
	for i, o := range orgs {
		if o == f.data.Organization {
			idx = i
			break
		}
	}
	idx = ((idx+step)%len(orgs) + len(orgs)) % len(orgs)
	f.data.Organization = orgs[idx]
	return f.data.Organization
}

// Data returns a copy of the current assessment.
func (f *Form) Data() rubric.AssessmentData {
	return f.data.Clone()
}

// Sections exposes the current sections for read-only rendering.
func (f *Form) Sections() []rubric.Section {
	return f.data.Sections
}

// Overall returns the cross-section score.
func (f *Form) Overall() scoring.Overall {
	return f.overall
}

// Organization returns the assessed organization code.
func (f *Form) Organization() string {
	return f.data.Organization
}

// SessionID identifies this form instance in change events.
func (f *Form) SessionID() string {
	return f.sessionID
}

// Edits counts committed level changes.
func (f *Form) Edits() int {
	return f.edits
}

// Summary scores the current state for display.
func (f *Form) Summary() scoring.Summary {
	return scoring.Summarize(f.data)
}
