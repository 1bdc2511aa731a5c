package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDisplayProperties(t *testing.T) {
	p := DefaultDisplayProperties()
	assert.Equal(t, "#4a90e2", p.BannerColorLight)
	assert.Equal(t, "#357abd", p.BannerColorMedium)
	assert.Equal(t, "#1e5f99", p.BannerColorDark)
	assert.Equal(t, "#4EA72E", p.BannerHighlight)
	assert.Equal(t, "#4EA72E", p.OrganizationColorPrimary)
	assert.Equal(t, "#4a7c59", p.OrganizationColorSecondary)
	assert.Equal(t, "#4a7c59", p.AssessmentLevelColor)
	assert.Equal(t, "#2c5aa0", p.QuestionScoreColor)
	assert.Equal(t, "#e6f3ff", p.SubheadingBackgroundColor)
	assert.Equal(t, "Segoe UI, Tahoma, Geneva, Verdana, sans-serif", p.PrimaryFontFamily)
	assert.Equal(t, 12.65, p.BaseFontSize)
	assert.Equal(t, 20.7, p.TitleFontSize)
	assert.Equal(t, 15.18, p.SectionHeaderFontSize)
}

func TestFillDefaults_Idempotent(t *testing.T) {
	p := DisplayProperties{BannerColorLight: "#000000", TitleFontSize: 30}

	assert.True(t, p.FillDefaults())
	assert.Equal(t, "#000000", p.BannerColorLight, "set values are kept")
	assert.Equal(t, 30.0, p.TitleFontSize)
	assert.Equal(t, 12.65, p.BaseFontSize)
	once := p

	assert.False(t, p.FillDefaults())
	assert.Equal(t, once, p)
}

func TestSanitize(t *testing.T) {
	p := DisplayProperties{
		BannerColorLight:  "blue",
		BannerColorMedium: "#112233",
		PrimaryFontFamily: "   ",
		BaseFontSize:      -5,
		TitleFontSize:     30,
	}

	restored := p.Sanitize()
	assert.ElementsMatch(t, []string{"bannerColorLight", "primaryFontFamily", "baseFontSize"}, restored)
	assert.Equal(t, DefaultBannerColorLight, p.BannerColorLight)
	assert.Equal(t, "#112233", p.BannerColorMedium)
	assert.Equal(t, DefaultPrimaryFontFamily, p.PrimaryFontFamily)
	assert.Equal(t, DefaultBaseFontSize, p.BaseFontSize)
	assert.Equal(t, 30.0, p.TitleFontSize)
	assert.Empty(t, p.BannerColorDark, "unset values are left for FillDefaults")

	assert.Empty(t, p.Sanitize())
}

func TestProperties(t *testing.T) {
	props := Properties()
	require.Len(t, props, 13)

	kinds := map[Kind]int{}
	for _, p := range props {
		kinds[p.Kind]++
		assert.NotEmpty(t, p.Label, p.Key)
		assert.NotEmpty(t, p.Description, p.Key)
	}
	assert.Equal(t, 9, kinds[KindColor])
	assert.Equal(t, 1, kinds[KindFontFamily])
	assert.Equal(t, 3, kinds[KindFontSize])

	hdr, ok := Lookup("sectionHeaderFontSize")
	require.True(t, ok)
	assert.Equal(t, SizeHeader, hdr.SizeType)
	assert.Equal(t, "15.18", hdr.Default)

	_, ok = Lookup("bannerColour")
	assert.False(t, ok)
}

func TestValidateHexColor(t *testing.T) {
	for _, ok := range []string{"#4a90e2", "#FFFFFF", "#000000", "#aBc123"} {
		assert.True(t, ValidateHexColor(ok), ok)
	}
	for _, bad := range []string{"#4a90e", "blue", "#4a90e22", "4a90e2", "", "#GGGGGG", " #4a90e2"} {
		assert.False(t, ValidateHexColor(bad), bad)
	}
}

func TestParseFontSize(t *testing.T) {
	v, err := ParseFontSize("12.65")
	require.NoError(t, err)
	assert.Equal(t, 12.65, v)

	v, err = ParseFontSize(" 100 ")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v, "bounds are advisory")

	for _, bad := range []string{"-5", "0", "abc", "", "NaN", "Inf", "12abc"} {
		_, err := ParseFontSize(bad)
		assert.ErrorIs(t, err, ErrInvalidFontSize, bad)
	}
}

func TestFontSizeWarning(t *testing.T) {
	assert.Contains(t, FontSizeWarning(6), "at least 8px")
	assert.Contains(t, FontSizeWarning(80), "72px")
	assert.Empty(t, FontSizeWarning(12.65))
}

func TestFontSizes(t *testing.T) {
	for _, st := range []SizeType{SizeBase, SizeTitle, SizeHeader} {
		opts := FontSizes(st)
		assert.Len(t, opts, 10, st)
		for _, o := range opts {
			_, err := ParseFontSize(o.Value)
			assert.NoError(t, err, o.Value)
		}
	}
	assert.Equal(t, "12.65", FontSizes(SizeBase)[3].Value)
	assert.Equal(t, "20.7", FontSizes(SizeTitle)[3].Value)
	assert.Equal(t, "15.18", FontSizes(SizeHeader)[4].Value)
	assert.Equal(t, FontSizes(SizeBase), FontSizes("bogus"))
}

func TestColorPicker(t *testing.T) {
	var applied []string
	c := NewColorPicker("Banner Color (Light)", "#4a90e2", func(v string) { applied = append(applied, v) })

	c.SetInput("#12")
	assert.Equal(t, ColorHint, c.InlineError())
	assert.Equal(t, "#4a90e2", c.Pending(), "invalid input keeps the previous pending value")
	assert.True(t, c.CanApply())

	c.SetInput("#123456")
	assert.Empty(t, c.InlineError())
	assert.Equal(t, "#123456", c.Pending())

	c.Cancel()
	assert.Equal(t, "#4a90e2", c.Pending())
	assert.Equal(t, "#4a90e2", c.Input())
	assert.Empty(t, applied)

	require.True(t, c.SelectPreset(21))
	assert.Equal(t, "#000000", c.Pending())
	assert.Equal(t, 21, c.PendingIndex())
	assert.False(t, c.SelectPreset(len(Palette)))

	require.True(t, c.Apply())
	assert.Equal(t, "#000000", c.Current())
	assert.Equal(t, []string{"#000000"}, applied)
}

func TestColorPicker_ApplyRefusesInvalidPending(t *testing.T) {
	called := false
	c := NewColorPicker("x", "not-a-color", func(string) { called = true })
	assert.False(t, c.CanApply())
	assert.False(t, c.Apply())
	assert.False(t, called)
}

func TestPalette(t *testing.T) {
	require.Len(t, Palette, 24)
	for _, p := range Palette {
		assert.True(t, ValidateHexColor(p), p)
	}
}

func TestFontFamilyPicker(t *testing.T) {
	var got []string
	p := NewFontFamilyPicker("Primary Font Family", DefaultPrimaryFontFamily, func(v string) { got = append(got, v) })

	require.Len(t, p.Options(), 10)
	assert.False(t, p.Enter("   "))
	assert.Equal(t, DefaultPrimaryFontFamily, p.Current())

	assert.True(t, p.SelectPreset(4))
	assert.Equal(t, "Georgia, Times, serif", p.Current())

	assert.True(t, p.Enter(" Fira Sans, sans-serif "))
	assert.Equal(t, "Fira Sans, sans-serif", p.Current())
	assert.Equal(t, []string{"Georgia, Times, serif", "Fira Sans, sans-serif"}, got)

	assert.False(t, p.SelectPreset(-1))
}

func TestFontSizePicker(t *testing.T) {
	var got []float64
	p := NewFontSizePicker("Title Font Size", SizeTitle, DefaultTitleFontSize, func(v float64) { got = append(got, v) })

	for _, bad := range []string{"-5", "abc", ""} {
		assert.Error(t, p.Enter(bad))
		assert.Equal(t, 20.7, p.Current())
	}
	assert.Empty(t, got)

	require.NoError(t, p.Enter("96"))
	assert.Equal(t, 96.0, p.Current())
	assert.NotEmpty(t, p.Warning())

	assert.True(t, p.SelectPreset(0))
	assert.Equal(t, 16.0, p.Current())
	assert.Empty(t, p.Warning())
	assert.Equal(t, []float64{96, 16}, got)
}

func TestDisplayProperties_SetGetReset(t *testing.T) {
	p := DefaultDisplayProperties()

	require.NoError(t, p.Set("bannerColorDark", "#ABCDEF"))
	assert.Equal(t, "#ABCDEF", p.BannerColorDark)

	err := p.Set("bannerColorDark", "navy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidColor))
	assert.Equal(t, "#ABCDEF", p.BannerColorDark)

	require.NoError(t, p.Set("baseFontSize", "14.5"))
	v, err := p.Get("baseFontSize")
	require.NoError(t, err)
	assert.Equal(t, "14.5", v)

	assert.ErrorIs(t, p.Set("baseFontSize", "-1"), ErrInvalidFontSize)
	assert.Equal(t, 14.5, p.BaseFontSize)

	assert.ErrorIs(t, p.Set("primaryFontFamily", " "), ErrEmptyFontFamily)
	require.NoError(t, p.Set("primaryFontFamily", "Verdana"))
	assert.Equal(t, "Verdana", p.PrimaryFontFamily)

	assert.Error(t, p.Set("nope", "x"))
	_, err = p.Get("nope")
	assert.Error(t, err)

	require.NoError(t, p.Reset("baseFontSize"))
	require.NoError(t, p.Reset("bannerColorDark"))
	assert.Equal(t, 12.65, p.BaseFontSize)
	assert.Equal(t, DefaultBannerColorDark, p.BannerColorDark)
	assert.Error(t, p.Reset("nope"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "color", KindColor.String())
	assert.Equal(t, "font size", KindFontSize.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
