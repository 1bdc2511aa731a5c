package ui

// Layout constants for the form and its panels
const (
	// Chrome around the scrolling form
	ToolbarHeight    = 1
	BannerHeight     = 1
	OverallHeight    = 2
	FooterHeight     = 2
	ChromeHeight     = ToolbarHeight + BannerHeight + OverallHeight + FooterHeight
	ContentPaddingH  = 2
	PanelBorderWidth = 2
	PanelPaddingH    = 1

	// Width below which the question column is truncated harder
	MinContentWidth = 40

	// Settings panel width when shown beside the form
	SettingsPanelWidth = 44

	// Fixed width of the level and score columns
	LevelColumnWidth = 14
	ScoreColumnWidth = 6
)

// LayoutConfig provides computed layout dimensions for the current view mode.
// Fullscreen widens the content to the terminal (or MaxWidth); embedded mode
// caps it at EmbeddedWidth.
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	Fullscreen     bool
	MaxWidth       int
	EmbeddedWidth  int
	SettingsOpen   bool
}

// ContentWidth returns the usable width for the form body.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth
	limit := l.EmbeddedWidth
	if l.Fullscreen {
		limit = l.MaxWidth
	}
	if limit > 0 && limit < w {
		w = limit
	}
	if l.SettingsOpen && !l.Fullscreen {
		w -= SettingsPanelWidth + 1
	}
	w -= ContentPaddingH
	if w < MinContentWidth {
		w = MinContentWidth
	}
	return w
}

// ContentHeight returns the usable height for the scrolling form body.
func (l LayoutConfig) ContentHeight() int {
	h := l.TerminalHeight - ChromeHeight
	if h < 3 {
		h = 3
	}
	return h
}

// QuestionColumnWidth is what remains for question text after the level and
// score columns.
func (l LayoutConfig) QuestionColumnWidth() int {
	w := l.ContentWidth() - LevelColumnWidth - ScoreColumnWidth - 4
	if w < 10 {
		w = 10
	}
	return w
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	return panelWidth - PanelBorderWidth - (PanelPaddingH * 2)
}
