// Package export renders an assessment and its scores for output.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"kma/internal/logging"
	"kma/internal/rubric"
	"kma/internal/scoring"

	"gopkg.in/yaml.v3"
)

// Format selects a rendition.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported renditions.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}
}

// ParseFormat resolves a format name. "md" and "yml" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: %v)", s, Formats())
}

// Report is the export unit: the raw assessment plus its scored summary.
type Report struct {
	Assessment rubric.AssessmentData `json:"assessment" yaml:"assessment"`
	Summary    scoring.Summary       `json:"summary" yaml:"summary"`
}

// NewReport scores data.
func NewReport(data rubric.AssessmentData) Report {
	return Report{Assessment: data, Summary: scoring.Summarize(data)}
}

// Write renders r to w in format f.
func Write(w io.Writer, f Format, r Report) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(r)
		if err == nil {
			err = enc.Close()
		}
	case FormatMarkdown:
		_, err = io.WriteString(w, Markdown(r))
	case FormatHTML:
		err = HTML(w, r)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s export: %w", f, err)
	}
	logging.Get(logging.CategoryExport).Info("%s export: organization %s, overall %.2f",
		f, r.Summary.Organization, r.Summary.Overall.Average)
	return nil
}
