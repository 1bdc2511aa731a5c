package scoring

import "kma/internal/rubric"

// SubsectionSummary is the display row for a subsection header.
type SubsectionSummary struct {
	HeaderID    string       `json:"headerId" yaml:"header_id"`
	Title       string       `json:"title" yaml:"title"`
	HeaderIndex int          `json:"headerIndex" yaml:"header_index"`
	Average     float64      `json:"average" yaml:"average"`
	Score       int          `json:"score" yaml:"score"`
	Level       rubric.Level `json:"level" yaml:"level"`
	Questions   int          `json:"questions" yaml:"questions"`
}

// SectionSummary is the display row for a section header.
type SectionSummary struct {
	ID          string              `json:"id" yaml:"id"`
	Title       string              `json:"title" yaml:"title"`
	Average     float64             `json:"average" yaml:"average"`
	Score       int                 `json:"score" yaml:"score"`
	Level       rubric.Level        `json:"level" yaml:"level"`
	Subsections []SubsectionSummary `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// Summary is the full scored view of an assessment.
type Summary struct {
	Organization string           `json:"organization" yaml:"organization"`
	Overall      Overall          `json:"overall" yaml:"overall"`
	Sections     []SectionSummary `json:"sections" yaml:"sections"`
}

// SubsectionSummaries scores every header-led subsection of the section. Level and
// Score use the unrounded mean; Average is rounded for display.
func SubsectionSummaries(section rubric.Section) []SubsectionSummary {
	var out []SubsectionSummary
	for _, sub := range section.Subsections() {
		if sub.Header == nil {
			continue
		}
		raw := mean(sub.Questions)
		out = append(out, SubsectionSummary{
			HeaderID:    sub.Header.ID,
			Title:       sub.Header.Text,
			HeaderIndex: sub.HeaderIndex,
			Average:     Round2(raw),
			Score:       RoundedScore(raw),
			Level:       MapScoreToLevel(raw),
			Questions:   len(sub.Questions),
		})
	}
	return out
}

// SummarizeSection builds the section row from its stored average.
func SummarizeSection(section rubric.Section) SectionSummary {
	return SectionSummary{
		ID:          section.ID,
		Title:       section.Title,
		Average:     section.AverageScore,
		Score:       RoundedScore(section.AverageScore),
		Level:       MapScoreToLevel(section.AverageScore),
		Subsections: SubsectionSummaries(section),
	}
}

// Summarize scores an entire assessment.
func Summarize(data rubric.AssessmentData) Summary {
	s := Summary{
		Organization: data.Organization,
		Overall:      ComputeOverall(data.Sections),
		Sections:     make([]SectionSummary, 0, len(data.Sections)),
	}
	for _, sec := range data.Sections {
		s.Sections = append(s.Sections, SummarizeSection(sec))
	}
	return s
}
