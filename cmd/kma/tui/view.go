package tui

import (
	"fmt"
	"strings"

	"kma/cmd/kma/ui"
	"kma/internal/export"
	"kma/internal/rubric"
	"kma/internal/scoring"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const appTitle = "Knowledge Management Assessment"

// View renders the toolbar, banner, active view, optional settings panel and footer.
func (m Model) View() string {
	l := m.layout()
	width := l.ContentWidth()

	parts := []string{
		m.renderToolbar(width),
		m.styles.Banner(appTitle, m.form.Organization(), width),
	}
	if m.view == ViewAssessment {
		parts = append(parts, m.renderOverall(width))
	}

	body := m.viewport.View()
	if m.viewState.SettingsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.renderPanel())
	}
	parts = append(parts, body)

	footer := m.help.View(m.keys)
	if s := m.statusLine(); s != "" {
		footer = s + "\n" + footer
	}
	parts = append(parts, m.styles.Footer.Render(footer))

	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderToolbar(width int) string {
	var nav []string
	for v := View(0); v < viewCount; v++ {
		st := m.styles.Toolbar
		if v == m.view {
			st = m.styles.ToolbarActive
		}
		nav = append(nav, st.Render(v.String()))
	}
	left := strings.Join(nav, m.styles.Muted.Render("|"))

	var right []string
	switch {
	case m.probing:
		right = append(right, m.spinner.View()+m.styles.Muted.Render(" checking permissions"))
	case m.viewState.IsAdmin():
		if m.viewState.CanToggleSettings() || m.viewState.SettingsOpen() {
			right = append(right, m.styles.Toolbar.Render("[s] ⚙"))
		}
		glyph := "⤡"
		if m.viewState.IsFullscreen() {
			glyph = "⤢"
		}
		right = append(right, m.styles.Toolbar.Render("[f] "+glyph))
	}
	right = append(right, m.styles.Badge.Render("KMA"))
	rightText := strings.Join(right, " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(rightText)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + rightText
}

func (m Model) renderOverall(width int) string {
	o := m.form.Overall()
	line := fmt.Sprintf("%s %s  %s %s  %s",
		m.styles.Bold.Render("Overall score"),
		m.styles.Score.Render(fmt.Sprintf("%d", o.Score)),
		m.styles.Muted.Render("average"),
		m.styles.Score.Render(formatAverage(o.Average)),
		m.styles.LevelBadge(o.Level),
	)
	org := m.styles.Muted.Render("Organization ") + m.styles.Organization.Render(m.form.Organization()) +
		m.styles.Muted.Render(" (o/O)")
	gap := width - lipgloss.Width(line) - lipgloss.Width(org)
	if gap < 1 {
		gap = 1
	}
	return line + strings.Repeat(" ", gap) + org + "\n" + m.styles.RenderDivider(width)
}

// renderForm draws every section with its subsection headers and questions, and
// records the line of the cursor row.
func (m *Model) renderForm() string {
	l := m.layout()
	width := l.ContentWidth()
	qw := l.QuestionColumnWidth()
	summary := m.form.Summary()

	var sel item
	if m.cursor >= 0 && m.cursor < len(m.items) {
		sel = m.items[m.cursor]
	}

	var lines []string
	for i, sec := range m.form.Sections() {
		sum := summary.Sections[i]
		head := fmt.Sprintf("%s  %s  %s", sec.Title, formatAverage(sec.AverageScore), sum.Level)
		lines = append(lines, m.styles.SectionHeader(sec.BackgroundColor).Width(width).Render(head))

		subs := make(map[int]scoring.SubsectionSummary, len(sum.Subsections))
		for _, sub := range sum.Subsections {
			subs[sub.HeaderIndex] = sub
		}

		for j, q := range sec.Questions {
			if q.Header {
				sub := subs[j]
				lines = append(lines, m.styles.Subheading.Width(width).Render(
					m.row(" "+q.Text, sub.Level.String(), formatAverage(sub.Average), qw)))
				continue
			}
			marker := "  "
			textStyle := m.styles.Body
			if sel.section == i && sel.question == j {
				marker = "▸ "
				textStyle = m.styles.Selected
				m.selected = len(lines)
			}
			text := textStyle.Width(qw).Render(ansi.Truncate(marker+q.Text, qw, "…"))
			level := m.styles.Level.Width(ui.LevelColumnWidth).Render(levelPicker(q.Level))
			score := m.styles.Score.Width(ui.ScoreColumnWidth).Align(lipgloss.Right).Render(fmt.Sprintf("%d", q.Score))
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, text, " ", level, " ", score))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) row(text, level, score string, qw int) string {
	return fmt.Sprintf("%-*s %-*s %*s",
		qw, ansi.Truncate(text, qw, "…"),
		ui.LevelColumnWidth, level,
		ui.ScoreColumnWidth, score)
}

func levelPicker(l rubric.Level) string {
	return "‹ " + l.String() + " ›"
}

func (m Model) markdown(doc string) string {
	if m.renderer == nil {
		return doc
	}
	out, err := m.renderer.Render(doc)
	if err != nil {
		m.log.Warn("markdown render failed: %v", err)
		return doc
	}
	return out
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString("# Home\n\n")
	b.WriteString("Welcome to the Knowledge Management Assessment tool.\n\n")
	fmt.Fprintf(&b, "Assessing organization **%s**. ", m.form.Organization())
	b.WriteString("Rate each question on the maturity scale; section and overall scores update as you go.\n\n")
	fmt.Fprintf(&b, "_Levels: %s_\n\n", export.LevelLegend())
	b.WriteString("| View | Purpose |\n|---|---|\n")
	b.WriteString("| Comparison View | Current section averages against the recorded baseline |\n")
	b.WriteString("| Take Assessment | The rubric form |\n")
	b.WriteString("| Admin View | Host environment and permissions |\n")
	return m.markdown(b.String())
}

func (m Model) renderComparison() string {
	baseline := m.baseline
	current := m.form.Summary()

	tbl := ui.NewSimpleTable("Comparison View", "Section", "Baseline", "Current", "Change", "Level")
	tbl.RightAlign[1], tbl.RightAlign[2], tbl.RightAlign[3] = true, true, true
	for i, sec := range current.Sections {
		base := 0.0
		if b := baseline.Section(sec.ID); b != nil {
			base = b.AverageScore
		}
		tbl.AddRow(sec.Title, formatAverage(base), formatAverage(sec.Average),
			signed(scoring.Round2(sec.Average-base)), current.Sections[i].Level.String())
	}

	base := scoring.ComputeOverall(baseline.Sections)
	tbl.AddRow("Overall", formatAverage(base.Average), formatAverage(current.Overall.Average),
		signed(scoring.Round2(current.Overall.Average-base.Average)), current.Overall.Level.String())

	return tbl.View(m.styles) + "\n" + m.styles.Muted.Render("Compare assessment results against the recorded baseline.")
}

func signed(delta float64) string {
	if delta > 0 {
		return "+" + formatAverage(delta)
	}
	return formatAverage(delta)
}

func (m Model) renderAdmin() string {
	var b strings.Builder
	b.WriteString("# Admin View\n\n")
	b.WriteString("Administrative tools and settings for the Knowledge Management Assessment.\n\n")
	if m.probing {
		b.WriteString("_Checking host environment and permissions..._\n")
		return m.markdown(b.String())
	}

	login := m.login
	if login == "" {
		login = "unknown"
	}
	fmt.Fprintf(&b, "- **Environment:** %s\n", m.probe.Environment)
	fmt.Fprintf(&b, "- **Message:** %s\n", m.probe.Environment.Message())
	fmt.Fprintf(&b, "- **User:** %s\n", login)
	fmt.Fprintf(&b, "- **Administrator:** %t\n", m.probe.IsAdmin)
	fmt.Fprintf(&b, "- **Fullscreen:** %t\n", m.viewState.IsFullscreen())
	fmt.Fprintf(&b, "- **Session:** `%s` (%d edits)\n", m.form.SessionID(), m.form.Edits())
	if m.store != nil {
		fmt.Fprintf(&b, "- **Settings file:** `%s`\n", m.store.Path())
	}
	if m.probe.EnvironmentErr != nil {
		fmt.Fprintf(&b, "\n> Environment probe failed: %v\n", m.probe.EnvironmentErr)
	}
	if m.probe.PermissionErr != nil {
		fmt.Fprintf(&b, "\n> Permission probe failed: %v\n", m.probe.PermissionErr)
	}
	return m.markdown(b.String())
}
