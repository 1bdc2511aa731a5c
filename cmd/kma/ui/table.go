package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// SimpleTable is a static table rendered with lipgloss/table.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	// RightAlign marks numeric columns by index.
	RightAlign map[int]bool
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers ...string) *SimpleTable {
	return &SimpleTable{
		Title:      title,
		Headers:    headers,
		Rows:       make([][]string, 0),
		RightAlign: map[int]bool{},
	}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles. An empty table renders as "".
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	headerStyle := styles.Subheading.Padding(0, 1)
	cellStyle := styles.Body.Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Divider).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := cellStyle
			if row == table.HeaderRow {
				st = headerStyle
			}
			if t.RightAlign[col] {
				st = st.Align(lipgloss.Right)
			}
			return st
		})

	out := tbl.Render()
	if t.Title != "" {
		out = styles.Bold.Render(t.Title) + "\n" + out
	}
	return out
}
