// Package theme holds the display properties an administrator can edit and the
// picker editors that validate each edit before it is committed.
package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default display values.
const (
	DefaultBannerColorLight           = "#4a90e2"
	DefaultBannerColorMedium          = "#357abd"
	DefaultBannerColorDark            = "#1e5f99"
	DefaultBannerHighlight            = "#4EA72E"
	DefaultOrganizationColorPrimary   = "#4EA72E"
	DefaultOrganizationColorSecondary = "#4a7c59"
	DefaultAssessmentLevelColor       = "#4a7c59"
	DefaultQuestionScoreColor         = "#2c5aa0"
	DefaultSubheadingBackgroundColor  = "#e6f3ff"
	DefaultPrimaryFontFamily          = "Segoe UI, Tahoma, Geneva, Verdana, sans-serif"
	DefaultBaseFontSize               = 12.65
	DefaultTitleFontSize              = 20.7
	DefaultSectionHeaderFontSize      = 15.18
)

// DisplayProperties is the theming bag read by the form. A zero field means unset.
type DisplayProperties struct {
	BannerColorLight           string  `yaml:"banner_color_light,omitempty" json:"bannerColorLight"`
	BannerColorMedium          string  `yaml:"banner_color_medium,omitempty" json:"bannerColorMedium"`
	BannerColorDark            string  `yaml:"banner_color_dark,omitempty" json:"bannerColorDark"`
	BannerHighlight            string  `yaml:"banner_highlight,omitempty" json:"bannerHighlight"`
	OrganizationColorPrimary   string  `yaml:"organization_color_primary,omitempty" json:"organizationColorPrimary"`
	OrganizationColorSecondary string  `yaml:"organization_color_secondary,omitempty" json:"organizationColorSecondary"`
	AssessmentLevelColor       string  `yaml:"assessment_level_color,omitempty" json:"assessmentLevelColor"`
	QuestionScoreColor         string  `yaml:"question_score_color,omitempty" json:"questionScoreColor"`
	SubheadingBackgroundColor  string  `yaml:"subheading_background_color,omitempty" json:"subheadingBackgroundColor"`
	PrimaryFontFamily          string  `yaml:"primary_font_family,omitempty" json:"primaryFontFamily"`
	BaseFontSize               float64 `yaml:"base_font_size,omitempty" json:"baseFontSize"`
	TitleFontSize              float64 `yaml:"title_font_size,omitempty" json:"titleFontSize"`
	SectionHeaderFontSize      float64 `yaml:"section_header_font_size,omitempty" json:"sectionHeaderFontSize"`
}

// DefaultDisplayProperties returns every property at its default.
func DefaultDisplayProperties() DisplayProperties {
	var p DisplayProperties
	p.FillDefaults()
	return p
}

// FillDefaults sets every unset property to its default and reports whether
// anything changed. Running it twice is a no-op the second time.
func (p *DisplayProperties) FillDefaults() bool {
	changed := false
	for _, prop := range properties {
		switch prop.Kind {
		case KindFontSize:
			f := p.sizeField(prop.Key)
			if *f == 0 {
				*f = prop.defaultSize
				changed = true
			}
		default:
			s := p.stringField(prop.Key)
			if *s == "" {
				*s = prop.Default
				changed = true
			}
		}
	}
	return changed
}

// Sanitize restores every set property that fails its picker rule to the default
// and returns the keys it restored. Unset values are left for FillDefaults.
func (p *DisplayProperties) Sanitize() []string {
	var restored []string
	for _, prop := range properties {
		switch prop.Kind {
		case KindFontSize:
			f := p.sizeField(prop.Key)
			if *f != 0 && (math.IsNaN(*f) || math.IsInf(*f, 0) || *f < 0) {
				*f = prop.defaultSize
				restored = append(restored, prop.Key)
			}
		case KindFontFamily:
			s := p.stringField(prop.Key)
			if *s != "" && strings.TrimSpace(*s) == "" {
				*s = prop.Default
				restored = append(restored, prop.Key)
			}
		default:
			s := p.stringField(prop.Key)
			if *s != "" && !ValidateHexColor(*s) {
				*s = prop.Default
				restored = append(restored, prop.Key)
			}
		}
	}
	return restored
}

// Kind classifies a property by the picker that edits it.
type Kind int

const (
	KindColor Kind = iota
	KindFontFamily
	KindFontSize
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindFontFamily:
		return "font family"
	case KindFontSize:
		return "font size"
	default:
		return "unknown"
	}
}

// SizeType selects the preset list offered by a font size picker.
type SizeType string

const (
	SizeBase   SizeType = "base"
	SizeTitle  SizeType = "title"
	SizeHeader SizeType = "header"
)

// Property describes one editable field of the admin settings panel.
type Property struct {
	Key         string
	Label       string
	Description string
	Kind        Kind
	SizeType    SizeType
	Default     string

	defaultSize float64
}

func colorProp(key, label, desc, def string) Property {
	return Property{Key: key, Label: label, Description: desc, Kind: KindColor, Default: def}
}

func sizeProp(key, label, desc string, st SizeType, def float64) Property {
	return Property{
		Key: key, Label: label, Description: desc, Kind: KindFontSize, SizeType: st,
		Default: FormatFontSize(def), defaultSize: def,
	}
}

var properties = []Property{
	colorProp("bannerColorLight", "Banner Color (Light)", "Light blue color for banner gradients", DefaultBannerColorLight),
	colorProp("bannerColorMedium", "Banner Color (Medium)", "Medium blue color for banner gradients", DefaultBannerColorMedium),
	colorProp("bannerColorDark", "Banner Color (Dark)", "Dark blue color for banner gradients", DefaultBannerColorDark),
	colorProp("bannerHighlight", "Banner Highlight Color", "Bright green color for banner highlights", DefaultBannerHighlight),
	colorProp("organizationColorPrimary", "Organization Color (Primary)", "Primary green color for organization elements", DefaultOrganizationColorPrimary),
	colorProp("organizationColorSecondary", "Organization Color (Secondary)", "Secondary green color for organization elements", DefaultOrganizationColorSecondary),
	colorProp("assessmentLevelColor", "Assessment Level Color", "Green color for assessment level indicators", DefaultAssessmentLevelColor),
	colorProp("questionScoreColor", "Question Score Color", "Blue color for question score displays", DefaultQuestionScoreColor),
	colorProp("subheadingBackgroundColor", "Subheading Background Color", "Light blue/grey background color for subheading rows", DefaultSubheadingBackgroundColor),
	{
		Key: "primaryFontFamily", Label: "Primary Font Family", Kind: KindFontFamily,
		Description: "Select a font family or type your own CSS font stack",
		Default:     DefaultPrimaryFontFamily,
	},
	sizeProp("baseFontSize", "Base Font Size", "Font size for regular text and form elements", SizeBase, DefaultBaseFontSize),
	sizeProp("titleFontSize", "Title Font Size", "Font size for main titles and headings", SizeTitle, DefaultTitleFontSize),
	sizeProp("sectionHeaderFontSize", "Section Header Font Size", "Font size for section headers and subheadings", SizeHeader, DefaultSectionHeaderFontSize),
}

// Properties lists the editable properties in panel order.
func Properties() []Property {
	out := make([]Property, len(properties))
	copy(out, properties)
	return out
}

// Lookup finds a property descriptor by key.
func Lookup(key string) (Property, bool) {
	for _, p := range properties {
		if p.Key == key {
			return p, true
		}
	}
	return Property{}, false
}

func (p *DisplayProperties) stringField(key string) *string {
	switch key {
	case "bannerColorLight":
		return &p.BannerColorLight
	case "bannerColorMedium":
		return &p.BannerColorMedium
	case "bannerColorDark":
		return &p.BannerColorDark
	case "bannerHighlight":
		return &p.BannerHighlight
	case "organizationColorPrimary":
		return &p.OrganizationColorPrimary
	case "organizationColorSecondary":
		return &p.OrganizationColorSecondary
	case "assessmentLevelColor":
		return &p.AssessmentLevelColor
	case "questionScoreColor":
		return &p.QuestionScoreColor
	case "subheadingBackgroundColor":
		return &p.SubheadingBackgroundColor
	case "primaryFontFamily":
		return &p.PrimaryFontFamily
	}
	return nil
}

func (p *DisplayProperties) sizeField(key string) *float64 {
	switch key {
	case "baseFontSize":
		return &p.BaseFontSize
	case "titleFontSize":
		return &p.TitleFontSize
	case "sectionHeaderFontSize":
		return &p.SectionHeaderFontSize
	}
	return nil
}

// Get returns the value of a property formatted as text.
func (p DisplayProperties) Get(key string) (string, error) {
	prop, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("unknown display property %q", key)
	}
	if prop.Kind == KindFontSize {
		return FormatFontSize(*p.sizeField(key)), nil
	}
	return *p.stringField(key), nil
}

// Set validates value with the same rules as the matching picker and stores it.
// On error the property keeps its previous value.
func (p *DisplayProperties) Set(key, value string) error {
	prop, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown display property %q", key)
	}
	switch prop.Kind {
	case KindColor:
		if !ValidateHexColor(value) {
			return fmt.Errorf("%s: %w", prop.Label, ErrInvalidColor)
		}
		*p.stringField(key) = value
	case KindFontFamily:
		family, err := ParseFontFamily(value)
		if err != nil {
			return fmt.Errorf("%s: %w", prop.Label, err)
		}
		*p.stringField(key) = family
	case KindFontSize:
		size, err := ParseFontSize(value)
		if err != nil {
			return fmt.Errorf("%s: %w", prop.Label, err)
		}
		*p.sizeField(key) = size
	}
	return nil
}

// Reset restores one property to its default.
func (p *DisplayProperties) Reset(key string) error {
	prop, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown display property %q", key)
	}
	if prop.Kind == KindFontSize {
		*p.sizeField(key) = prop.defaultSize
	} else {
		*p.stringField(key) = prop.Default
	}
	return nil
}

// FormatFontSize renders a size without trailing zeros ("12.65", "16").
func FormatFontSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}
