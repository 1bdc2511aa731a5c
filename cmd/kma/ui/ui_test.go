package ui

import (
	"strings"
	"testing"

	"kma/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStylesFillsDefaults(t *testing.T) {
	s := NewStyles(theme.DisplayProperties{QuestionScoreColor: "#123456"})
	assert.Equal(t, "#123456", s.Props.QuestionScoreColor)
	assert.Equal(t, theme.DefaultBannerColorLight, s.Props.BannerColorLight)
	assert.Equal(t, lipgloss.Color("#123456"), s.Score.GetForeground())
}

func TestContrastText(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#1f2937"), ContrastText(theme.DefaultSubheadingBackgroundColor))
	assert.Equal(t, lipgloss.Color("#ffffff"), ContrastText(theme.DefaultBannerColorDark))
	assert.Equal(t, lipgloss.Color("#ffffff"), ContrastText("not a color"))
}

func TestGradient(t *testing.T) {
	props := theme.DefaultDisplayProperties()
	g := Gradient(props, 5)
	require.Len(t, g, 5)
	assert.Equal(t, lipgloss.Color(theme.DefaultBannerColorLight), g[0])
	assert.Equal(t, lipgloss.Color(theme.DefaultBannerColorMedium), g[2])
	assert.Equal(t, lipgloss.Color(theme.DefaultBannerColorDark), g[4])

	assert.Nil(t, Gradient(props, 0))
	assert.Len(t, Gradient(props, 1), 1)
}

func TestBanner(t *testing.T) {
	s := DefaultStyles()
	out := s.Banner("Knowledge Management Assessment", "OD2", 60)
	assert.Equal(t, 60, lipgloss.Width(out))

	narrow := s.Banner("Knowledge Management Assessment", "OD2", 5)
	assert.Greater(t, lipgloss.Width(narrow), 5, "never truncates the title")
}

func TestGradientFallsBackOnBadStops(t *testing.T) {
	props := theme.DisplayProperties{BannerColorLight: "blue", BannerColorMedium: "green", BannerColorDark: "red"}
	g := Gradient(props, 5)
	require.Len(t, g, 5)
	assert.Equal(t, lipgloss.Color(theme.DefaultBannerColorLight), g[0])
	assert.Equal(t, lipgloss.Color(theme.DefaultBannerColorDark), g[4])

	s := NewStyles(props)
	var out string
	require.NotPanics(t, func() { out = s.Banner("Knowledge Management Assessment", "OD2", 80) })
	assert.Equal(t, 80, lipgloss.Width(out))
}

func TestSectionHeaderFallsBackOnBadColor(t *testing.T) {
	s := DefaultStyles()
	assert.Equal(t, lipgloss.Color(theme.DefaultBannerColorLight), s.SectionHeader("blue").GetBackground())
	assert.Equal(t, lipgloss.Color("#112233"), s.SectionHeader("#112233").GetBackground())
}

func TestRenderDivider(t *testing.T) {
	s := DefaultStyles()
	assert.Equal(t, "", s.RenderDivider(0))
	assert.Equal(t, 12, lipgloss.Width(s.RenderDivider(12)))
}

func TestLayoutConfig(t *testing.T) {
	tests := []struct {
		name string
		l    LayoutConfig
		want int
	}{
		{"fullscreen uses terminal", LayoutConfig{TerminalWidth: 160, Fullscreen: true, EmbeddedWidth: 100}, 158},
		{"fullscreen capped", LayoutConfig{TerminalWidth: 160, Fullscreen: true, MaxWidth: 120}, 118},
		{"embedded capped", LayoutConfig{TerminalWidth: 160, EmbeddedWidth: 100}, 98},
		{"embedded narrow terminal", LayoutConfig{TerminalWidth: 80, EmbeddedWidth: 100}, 78},
		{"settings panel", LayoutConfig{TerminalWidth: 160, EmbeddedWidth: 100, SettingsOpen: true}, 100 - SettingsPanelWidth - 1 - ContentPaddingH},
		{"minimum", LayoutConfig{TerminalWidth: 10}, MinContentWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.l.ContentWidth())
		})
	}

	assert.Equal(t, 3, LayoutConfig{TerminalHeight: 2}.ContentHeight())
	assert.Equal(t, 40-ChromeHeight, LayoutConfig{TerminalHeight: 40}.ContentHeight())
}

func TestSimpleTable(t *testing.T) {
	s := DefaultStyles()
	tbl := NewSimpleTable("Comparison", "Section", "Current")
	assert.Equal(t, "", tbl.View(s))

	tbl.AddRow("Strategy & Governance", "4.71")
	tbl.RightAlign[1] = true
	out := tbl.View(s)
	assert.True(t, strings.HasPrefix(out, s.Bold.Render("Comparison")))
	assert.Contains(t, out, "Strategy & Governance")
	assert.Contains(t, out, "4.71")
}
