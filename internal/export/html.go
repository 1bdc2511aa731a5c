package export

import (
	"fmt"
	"html/template"
	"io"

	"kma/internal/rubric"
	"kma/internal/scoring"
	"kma/internal/theme"
)

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"avg": func(f float64) string { return fmt.Sprintf("%.2f", f) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Knowledge Management Assessment - {{.Summary.Organization}}</title>
<style>
body { font-family: {{.Theme.PrimaryFontFamily}}; font-size: {{.Theme.BaseFontSize}}px; margin: 2em; }
.banner { background: linear-gradient(90deg, {{.Theme.BannerColorLight}}, {{.Theme.BannerColorMedium}}, {{.Theme.BannerColorDark}}); color: #fff; padding: 1em; font-size: {{.Theme.TitleFontSize}}px; }
.banner .org { color: {{.Theme.BannerHighlight}}; font-weight: bold; }
h2 { font-size: {{.Theme.SectionHeaderFontSize}}px; padding: .4em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5em; }
td, th { border: 1px solid #ccc; padding: .3em .6em; text-align: left; }
tr.sub td { background: {{.Theme.SubheadingBackgroundColor}}; font-weight: bold; }
td.level { color: {{.Theme.AssessmentLevelColor}}; }
td.score { color: {{.Theme.QuestionScoreColor}}; text-align: right; }
</style>
</head>
<body>
<div class="banner">Knowledge Management Assessment &middot; <span class="org">{{.Summary.Organization}}</span></div>
<p>Overall score <strong>{{.Summary.Overall.Score}}</strong> (average {{avg .Summary.Overall.Average}}, {{.Summary.Overall.Level}})</p>
{{range .Sections}}
<h2 style="background: {{.BackgroundColor}}">{{.Title}} &middot; {{avg .Summary.Average}} ({{.Summary.Level}})</h2>
<table>
<tr><th>Question</th><th>Level</th><th>Score</th></tr>
{{range .Rows}}{{if .Header}}<tr class="sub"><td>{{.Text}}</td><td class="level">{{.Level}}</td><td class="score">{{avg .Average}}</td></tr>
{{else}}<tr><td>{{.Text}}</td><td class="level">{{.Level}}</td><td class="score">{{.Score}}</td></tr>
{{end}}{{end}}</table>
{{end}}
</body>
</html>
`))

type htmlRow struct {
	Text    string
	Header  bool
	Level   rubric.Level
	Score   int
	Average float64
}

type htmlSection struct {
	Title           string
	BackgroundColor string
	Summary         scoring.SectionSummary
	Rows            []htmlRow
}

type htmlPage struct {
	Summary  scoring.Summary
	Theme    theme.DisplayProperties
	Sections []htmlSection
}

// HTML renders a standalone page using the default theme.
func HTML(w io.Writer, r Report) error {
	return ThemedHTML(w, r, theme.DefaultDisplayProperties())
}

// ThemedHTML renders a standalone page styled with the given display properties.
// Unset properties fall back to their defaults.
func ThemedHTML(w io.Writer, r Report, props theme.DisplayProperties) error {
	props.FillDefaults()
	p := htmlPage{Summary: r.Summary, Theme: props}
	for i, sec := range r.Assessment.Sections {
		sum := r.Summary.Sections[i]
		subs := make(map[int]scoring.SubsectionSummary, len(sum.Subsections))
		for _, sub := range sum.Subsections {
			subs[sub.HeaderIndex] = sub
		}
		hs := htmlSection{Title: sec.Title, BackgroundColor: sec.BackgroundColor, Summary: sum}
		for j, q := range sec.Questions {
			row := htmlRow{Text: q.Text, Header: q.Header, Level: q.Level, Score: q.Score}
			if q.Header {
				row.Level = subs[j].Level
				row.Average = subs[j].Average
			}
			hs.Rows = append(hs.Rows, row)
		}
		p.Sections = append(p.Sections, hs)
	}
	return page.Execute(w, p)
}
