package export

import (
	"fmt"
	"strings"

	"kma/internal/rubric"
	"kma/internal/scoring"
)

// Markdown renders the report as a document with one table per section.
func Markdown(r Report) string {
	var b strings.Builder
	s := r.Summary

	b.WriteString("# Knowledge Management Assessment\n\n")
	fmt.Fprintf(&b, "**Organization:** %s  \n", s.Organization)
	fmt.Fprintf(&b, "**Overall score:** %d (average %.2f, %s)\n\n", s.Overall.Score, s.Overall.Average, s.Overall.Level)
	fmt.Fprintf(&b, "_Levels: %s_\n\n", LevelLegend())

	b.WriteString("| Section | Average | Score | Level |\n")
	b.WriteString("|---|---:|---:|---|\n")
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "| %s | %.2f | %d | %s |\n", escapeCell(sec.Title), sec.Average, sec.Score, sec.Level)
	}

	for i, sec := range r.Assessment.Sections {
		sum := s.Sections[i]
		subs := make(map[int]scoring.SubsectionSummary, len(sum.Subsections))
		for _, sub := range sum.Subsections {
			subs[sub.HeaderIndex] = sub
		}
		fmt.Fprintf(&b, "\n## %s\n\n", sec.Title)
		fmt.Fprintf(&b, "Section average **%.2f** (%s)\n\n", sum.Average, sum.Level)
		b.WriteString("| Question | Level | Score |\n")
		b.WriteString("|---|---|---:|\n")
		for j, q := range sec.Questions {
			if q.Header {
				sub := subs[j]
				fmt.Fprintf(&b, "| **%s** | **%s** | **%.2f** |\n", escapeCell(q.Text), sub.Level, sub.Average)
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %d |\n", escapeCell(q.Text), q.Level, q.Score)
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// LevelLegend lists the levels with their scores, lowest first.
func LevelLegend() string {
	parts := make([]string, 0, len(rubric.Levels()))
	for _, l := range rubric.Levels() {
		parts = append(parts, fmt.Sprintf("%d = %s", l.Score(), l))
	}
	return strings.Join(parts, ", ")
}
