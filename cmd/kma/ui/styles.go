// Package ui provides the lipgloss styles and layout rules for the kma terminal form.
// Every color comes from the administrator-editable display properties.
package ui

import (
	"strings"

	"kma/internal/rubric"
	"kma/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Fixed status colors. These are not part of the editable theme.
var (
	Success     = lipgloss.Color("#16a34a")
	Warning     = lipgloss.Color("#d97706")
	Destructive = lipgloss.Color("#dc2626")
	Muted       = lipgloss.Color("#6b7280")
	Border      = lipgloss.Color("#d1d5db")
)

// Styles contains all the styles for the form.
type Styles struct {
	Props theme.DisplayProperties

	// Layout
	Toolbar       lipgloss.Style
	ToolbarActive lipgloss.Style
	Footer        lipgloss.Style
	Content       lipgloss.Style

	// Text
	Title        lipgloss.Style
	Organization lipgloss.Style
	Body         lipgloss.Style
	Muted        lipgloss.Style
	Bold         lipgloss.Style

	// Form
	Subheading lipgloss.Style
	Question   lipgloss.Style
	Selected   lipgloss.Style
	Level      lipgloss.Style
	Score      lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Panel   lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles builds styles from display properties. Unset properties use their defaults.
func NewStyles(props theme.DisplayProperties) Styles {
	props.FillDefaults()
	primary := lipgloss.Color(props.OrganizationColorPrimary)
	subheading := lipgloss.Color(props.SubheadingBackgroundColor)

	return Styles{
		Props: props,

		Toolbar: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1),

		ToolbarActive: lipgloss.NewStyle().
			Background(lipgloss.Color(props.BannerColorMedium)).
			Foreground(ContrastText(props.BannerColorMedium)).
			Padding(0, 1).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(ContrastText(props.BannerColorMedium)).
			Bold(true),

		Organization: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(Muted),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Subheading: lipgloss.NewStyle().
			Background(subheading).
			Foreground(ContrastText(props.SubheadingBackgroundColor)).
			Bold(true),

		Question: lipgloss.NewStyle().
			PaddingLeft(2),

		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Level: lipgloss.NewStyle().
			Foreground(lipgloss.Color(props.AssessmentLevelColor)),

		Score: lipgloss.NewStyle().
			Foreground(lipgloss.Color(props.QuestionScoreColor)).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Spinner: lipgloss.NewStyle().
			Foreground(primary),

		Divider: lipgloss.NewStyle().
			Foreground(Border),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(props.OrganizationColorSecondary)).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Background(lipgloss.Color(props.OrganizationColorSecondary)).
			Foreground(ContrastText(props.OrganizationColorSecondary)).
			Padding(0, 1).
			Bold(true),
	}
}

// DefaultStyles returns styles built from the default display properties.
func DefaultStyles() Styles {
	return NewStyles(theme.DefaultDisplayProperties())
}

// SectionHeader styles a section title bar on the section's own background color.
func (s Styles) SectionHeader(bg string) lipgloss.Style {
	if !theme.ValidateHexColor(bg) {
		bg = s.Props.BannerColorLight
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(ContrastText(bg)).
		Bold(true).
		Padding(0, 1)
}

// LevelBadge renders a level label in the level color.
func (s Styles) LevelBadge(l rubric.Level) string {
	return s.Level.Render(l.String())
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// ContrastText picks black or white text for a hex background.
func ContrastText(bg string) lipgloss.Color {
	c, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color("#ffffff")
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return lipgloss.Color("#1f2937")
	}
	return lipgloss.Color("#ffffff")
}

// Gradient returns n colors blended light to medium to dark in Lab space. A stop
// that is not a valid hex color is replaced by its default.
func Gradient(props theme.DisplayProperties, n int) []lipgloss.Color {
	props.FillDefaults()
	if n < 1 {
		return nil
	}
	stops := make([]colorful.Color, 0, 3)
	for _, pair := range [][2]string{
		{props.BannerColorLight, theme.DefaultBannerColorLight},
		{props.BannerColorMedium, theme.DefaultBannerColorMedium},
		{props.BannerColorDark, theme.DefaultBannerColorDark},
	} {
		c, err := colorful.Hex(pair[0])
		if err != nil {
			c, _ = colorful.Hex(pair[1])
		}
		stops = append(stops, c)
	}

	out := make([]lipgloss.Color, n)
	for i := range out {
		if n == 1 {
			out[i] = lipgloss.Color(stops[0].Hex())
			continue
		}
		pos := float64(i) / float64(n-1) * float64(len(stops)-1)
		seg := int(pos)
		if seg >= len(stops)-1 {
			seg = len(stops) - 2
		}
		out[i] = lipgloss.Color(stops[seg].BlendLab(stops[seg+1], pos-float64(seg)).Clamped().Hex())
	}
	return out
}

// Banner renders the title bar: a gradient background spanning width with the
// organization code in the highlight color.
func (s Styles) Banner(title, organization string, width int) string {
	text := " " + title + "  "
	org := organization + " "
	if width < lipgloss.Width(text)+lipgloss.Width(org) {
		width = lipgloss.Width(text) + lipgloss.Width(org)
	}
	pad := width - lipgloss.Width(text) - lipgloss.Width(org)
	line := []rune(text + strings.Repeat(" ", pad) + org)
	colors := Gradient(s.Props, len(line))
	highlightFrom := len(line) - len([]rune(org))

	var b strings.Builder
	for i, r := range line {
		st := lipgloss.NewStyle().Background(colors[i])
		if i >= highlightFrom && r != ' ' {
			st = st.Foreground(lipgloss.Color(s.Props.BannerHighlight)).Bold(true)
		} else {
			st = st.Foreground(ContrastText(string(colors[i]))).Bold(true)
		}
		b.WriteString(st.Render(string(r)))
	}
	return b.String()
}
