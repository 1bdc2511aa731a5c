package theme

import (
	"errors"
	"regexp"

	"kma/internal/logging"
)

// ColorHint is shown next to freeform input that is not a hex color.
const ColorHint = "Please enter a valid hex color (e.g., #FF5733)"

// ErrInvalidColor is returned for values that are not #RRGGBB.
var ErrInvalidColor = errors.New("invalid hex color, expected #RRGGBB")

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHexColor reports whether s is a six-digit hex color with a leading '#'.
func ValidateHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// Palette is the preset grid offered by every color picker.
var Palette = []string{
	// Blues (banner colors)
	"#4a90e2", "#357abd", "#1e5f99", "#2c5aa0",
	// Greens (organization colors)
	"#4EA72E", "#4a7c59", "#5CB83A", "#3d6b47",
	// Common colors
	"#ff4444", "#ff8800", "#ffcc00", "#88cc00",
	"#00cc88", "#0088cc", "#4400cc", "#cc0088",
	"#666666", "#999999", "#cccccc", "#ffffff",
	"#333333", "#000000", "#8B4513", "#800080",
}

// PaletteColumns is the width of the preset grid.
const PaletteColumns = 8

// ColorPicker edits one color property. The pending color only moves to a valid
// value; freeform input that does not parse leaves it where it was.
type ColorPicker struct {
	Label       string
	Description string

	current  string
	pending  string
	input    string
	onChange func(string)
}

// NewColorPicker opens a picker on the current value.
func NewColorPicker(label, current string, onChange func(string)) *ColorPicker {
	return &ColorPicker{
		Label:    label,
		current:  current,
		pending:  current,
		input:    current,
		onChange: onChange,
	}
}

// Current is the committed value.
func (c *ColorPicker) Current() string { return c.current }

// Pending is the value Apply would commit.
func (c *ColorPicker) Pending() string { return c.pending }

// Input is the freeform text as typed.
func (c *ColorPicker) Input() string { return c.input }

// SetInput records freeform text and adopts it as pending when it is valid.
func (c *ColorPicker) SetInput(s string) {
	c.input = s
	if ValidateHexColor(s) {
		c.pending = s
	}
}

// InlineError returns the hint to display under the input, or "".
func (c *ColorPicker) InlineError() string {
	if ValidateHexColor(c.input) {
		return ""
	}
	return ColorHint
}

// Select picks a palette color.
func (c *ColorPicker) Select(color string) {
	c.pending = color
	c.input = color
}

// SelectPreset picks the palette entry at index i.
func (c *ColorPicker) SelectPreset(i int) bool {
	if i < 0 || i >= len(Palette) {
		return false
	}
	c.Select(Palette[i])
	return true
}

// PendingIndex returns the palette index of the pending color, or -1.
func (c *ColorPicker) PendingIndex() int {
	for i, p := range Palette {
		if p == c.pending {
			return i
		}
	}
	return -1
}

// CanApply reports whether the pending value is a valid color.
func (c *ColorPicker) CanApply() bool {
	return ValidateHexColor(c.pending)
}

// Apply commits the pending value and notifies the listener.
func (c *ColorPicker) Apply() bool {
	if !c.CanApply() {
		logging.Get(logging.CategoryTheme).Warn("%s: refusing to apply %q", c.Label, c.pending)
		return false
	}
	c.current = c.pending
	c.input = c.pending
	logging.Get(logging.CategoryTheme).Info("%s -> %s", c.Label, c.current)
	if c.onChange != nil {
		c.onChange(c.current)
	}
	return true
}

// Cancel discards pending edits.
func (c *ColorPicker) Cancel() {
	c.pending = c.current
	c.input = c.current
}
