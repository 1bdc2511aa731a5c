package theme

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"kma/internal/logging"
)

// FontOption is one preset of a font picker.
type FontOption struct {
	Value string
	Text  string
}

// FontFamilies are the preset CSS font stacks.
var FontFamilies = []FontOption{
	{"Segoe UI, Tahoma, Geneva, Verdana, sans-serif", "Segoe UI (Default)"},
	{"Arial, Helvetica, sans-serif", "Arial"},
	{"Helvetica, Arial, sans-serif", "Helvetica"},
	{"Times New Roman, Times, serif", "Times New Roman"},
	{"Georgia, Times, serif", "Georgia"},
	{"Courier New, Courier, monospace", "Courier New"},
	{"Verdana, Geneva, sans-serif", "Verdana"},
	{"Trebuchet MS, Helvetica, sans-serif", "Trebuchet MS"},
	{"Impact, Charcoal, sans-serif", "Impact"},
	{"Palatino, Palatino Linotype, serif", "Palatino"},
}

// ErrEmptyFontFamily is returned for blank font family input.
var ErrEmptyFontFamily = errors.New("font family must not be empty")

// ParseFontFamily trims s and rejects blank input.
func ParseFontFamily(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyFontFamily
	}
	return s, nil
}

// Advisory font size bounds. Values outside them are accepted with a warning.
const (
	MinRecommendedFontSize = 8
	MaxRecommendedFontSize = 72
)

// FontSizeHint is shown for input that does not parse as a size.
const FontSizeHint = "Please enter a valid font size (e.g., 12.5)"

// ErrInvalidFontSize is returned for sizes that are not finite positive numbers.
var ErrInvalidFontSize = errors.New("font size must be a positive number")

// ParseFontSize accepts a finite decimal greater than zero.
func ParseFontSize(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidFontSize
	}
	return v, nil
}

// FontSizeWarning returns the advisory message for a parsed size, or "".
func FontSizeWarning(size float64) string {
	switch {
	case size < MinRecommendedFontSize:
		return "Font size should be at least 8px for readability"
	case size > MaxRecommendedFontSize:
		return "Font size should not exceed 72px"
	default:
		return ""
	}
}

// FontSizes returns the preset sizes for a size type. Unknown types get the base list.
func FontSizes(st SizeType) []FontOption {
	switch st {
	case SizeTitle:
		return []FontOption{
			{"16", "16px - Small Title"},
			{"18", "18px - Medium Title"},
			{"20", "20px - Large Title"},
			{"20.7", "20.7px - Current Default"},
			{"22", "22px - Extra Large"},
			{"24", "24px - Huge Title"},
			{"26", "26px - Banner Title"},
			{"28", "28px - Hero Title"},
			{"32", "32px - Display Title"},
			{"36", "36px - Massive Title"},
		}
	case SizeHeader:
		return []FontOption{
			{"12", "12px - Small Header"},
			{"13", "13px - Compact Header"},
			{"14", "14px - Standard Header"},
			{"15", "15px - Medium Header"},
			{"15.18", "15.18px - Current Default"},
			{"16", "16px - Large Header"},
			{"17", "17px - Prominent Header"},
			{"18", "18px - Bold Header"},
			{"20", "20px - Major Header"},
			{"22", "22px - Section Title"},
		}
	default:
		return []FontOption{
			{"10", "10px - Tiny Text"},
			{"11", "11px - Small Text"},
			{"12", "12px - Standard Text"},
			{"12.65", "12.65px - Current Default"},
			{"13", "13px - Medium Text"},
			{"14", "14px - Large Text"},
			{"15", "15px - Readable Text"},
			{"16", "16px - Comfortable Text"},
			{"17", "17px - Prominent Text"},
			{"18", "18px - Bold Text"},
		}
	}
}

// FontFamilyPicker edits the font stack. Choosing a preset or entering non-blank
// text commits immediately.
type FontFamilyPicker struct {
	Label    string
	current  string
	onChange func(string)
}

// NewFontFamilyPicker opens a picker on the current value.
func NewFontFamilyPicker(label, current string, onChange func(string)) *FontFamilyPicker {
	return &FontFamilyPicker{Label: label, current: current, onChange: onChange}
}

// Current is the committed value.
func (p *FontFamilyPicker) Current() string { return p.current }

// Options lists the presets.
func (p *FontFamilyPicker) Options() []FontOption { return FontFamilies }

// SelectPreset commits the preset at index i.
func (p *FontFamilyPicker) SelectPreset(i int) bool {
	if i < 0 || i >= len(FontFamilies) {
		return false
	}
	p.commit(FontFamilies[i].Value)
	return true
}

// Enter commits freeform text. Blank input is ignored.
func (p *FontFamilyPicker) Enter(s string) bool {
	family, err := ParseFontFamily(s)
	if err != nil {
		return false
	}
	p.commit(family)
	return true
}

func (p *FontFamilyPicker) commit(v string) {
	p.current = v
	logging.Get(logging.CategoryTheme).Info("%s -> %s", p.Label, v)
	if p.onChange != nil {
		p.onChange(v)
	}
}

// FontSizePicker edits one font size.
type FontSizePicker struct {
	Label    string
	SizeType SizeType
	current  float64
	warning  string
	onChange func(float64)
}

// NewFontSizePicker opens a picker on the current value.
func NewFontSizePicker(label string, st SizeType, current float64, onChange func(float64)) *FontSizePicker {
	return &FontSizePicker{Label: label, SizeType: st, current: current, onChange: onChange}
}

// Current is the committed value.
func (p *FontSizePicker) Current() float64 { return p.current }

// Options lists the presets for the picker's size type.
func (p *FontSizePicker) Options() []FontOption { return FontSizes(p.SizeType) }

// Warning is the advisory message for the last committed size.
func (p *FontSizePicker) Warning() string { return p.warning }

// SelectPreset commits the preset at index i.
func (p *FontSizePicker) SelectPreset(i int) bool {
	opts := p.Options()
	if i < 0 || i >= len(opts) {
		return false
	}
	return p.Enter(opts[i].Value) == nil
}

// Enter parses and commits freeform input. Invalid input leaves the value unchanged.
func (p *FontSizePicker) Enter(s string) error {
	size, err := ParseFontSize(s)
	if err != nil {
		logging.Get(logging.CategoryTheme).Debug("%s: rejected %q", p.Label, s)
		return err
	}
	p.current = size
	p.warning = FontSizeWarning(size)
	logging.Get(logging.CategoryTheme).Info("%s -> %s", p.Label, FormatFontSize(size))
	if p.onChange != nil {
		p.onChange(size)
	}
	return nil
}
