package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kma/internal/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestEnsureDefaults_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	s := NewStore(path)

	changed, err := s.EnsureDefaults()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, theme.DefaultDisplayProperties(), s.Display())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestEnsureDefaults_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := NewStore(path)

	_, err := s.EnsureDefaults()
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)

	again := NewStore(path)
	changed, err := again.EnsureDefaults()
	require.NoError(t, err)
	assert.False(t, changed, "a complete file is not rewritten")

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	info2, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), info2.ModTime())
}

func TestEnsureDefaults_KeepsSetValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "description: Quarterly review\ndisplay:\n  banner_color_light: '#000000'\n  base_font_size: 14\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s := NewStore(path)
	changed, err := s.EnsureDefaults()
	require.NoError(t, err)
	assert.True(t, changed)

	got := s.Settings()
	assert.Equal(t, "Quarterly review", got.Description)
	assert.Equal(t, "#000000", got.Display.BannerColorLight)
	assert.Equal(t, 14.0, got.Display.BaseFontSize)
	assert.Equal(t, theme.DefaultBannerColorMedium, got.Display.BannerColorMedium)
}

func TestEnsureDefaults_RestoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "display:\n  banner_color_light: blue\n  banner_color_medium: green\n  banner_color_dark: '#000000'\n  base_font_size: -5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s := NewStore(path)
	_, err := s.EnsureDefaults()
	require.NoError(t, err)

	got := s.Display()
	assert.Equal(t, theme.DefaultBannerColorLight, got.BannerColorLight)
	assert.Equal(t, theme.DefaultBannerColorMedium, got.BannerColorMedium)
	assert.Equal(t, "#000000", got.BannerColorDark)
	assert.Equal(t, theme.DefaultBaseFontSize, got.BaseFontSize)
}

func TestLoad_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [oops"), 0644))

	s := NewStore(path)
	err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings")

	_, err = s.EnsureDefaults()
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := NewStore(path)
	_, err := s.EnsureDefaults()
	require.NoError(t, err)

	require.NoError(t, s.SetDisplay("questionScoreColor", "#112233"))
	require.NoError(t, s.SetDisplay("titleFontSize", "24"))
	require.NoError(t, s.SetDescription("KM maturity"))

	loaded := NewStore(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, s.Settings(), loaded.Settings())
	assert.Equal(t, "#112233", loaded.Display().QuestionScoreColor)
	assert.Equal(t, 24.0, loaded.Display().TitleFontSize)
}

func TestSetDisplay_InvalidLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := NewStore(path)
	_, err := s.EnsureDefaults()
	require.NoError(t, err)
	before, _ := os.ReadFile(path)

	assert.ErrorIs(t, s.SetDisplay("bannerHighlight", "green"), theme.ErrInvalidColor)
	assert.ErrorIs(t, s.SetDisplay("baseFontSize", "abc"), theme.ErrInvalidFontSize)

	after, _ := os.ReadFile(path)
	assert.Equal(t, before, after)
	assert.Equal(t, theme.DefaultBannerHighlight, s.Display().BannerHighlight)
}

func TestResetDisplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := NewStore(path)
	require.NoError(t, s.SetDisplay("bannerHighlight", "#000000"))
	require.NoError(t, s.ResetDisplay())
	assert.Equal(t, theme.DefaultDisplayProperties(), s.Display())
}

func TestResetProperty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "settings.yaml"))
	_, err := s.EnsureDefaults()
	require.NoError(t, err)
	require.NoError(t, s.SetDisplay("bannerHighlight", "#000000"))
	require.NoError(t, s.SetDisplay("titleFontSize", "30"))

	require.NoError(t, s.ResetProperty("titleFontSize"))
	assert.Equal(t, theme.DefaultTitleFontSize, s.Display().TitleFontSize)
	assert.Equal(t, "#000000", s.Display().BannerHighlight)

	assert.Error(t, s.ResetProperty("nope"))
}

func TestWatcher_ReloadsExternalEdits(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := NewStore(path)
	_, err := s.EnsureDefaults()
	require.NoError(t, err)

	reloaded := make(chan Settings, 4)
	w, err := NewWatcher(s, func(st Settings) { reloaded <- st })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	external := NewStore(path)
	require.NoError(t, external.Load())
	require.NoError(t, external.SetDisplay("bannerColorDark", "#010203"))

	select {
	case st := <-reloaded:
		assert.Equal(t, "#010203", st.Display.BannerColorDark)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	assert.Equal(t, "#010203", s.Display().BannerColorDark)
	assert.GreaterOrEqual(t, w.Stats().Reloads, 1)
}

func TestWatcher_RestoresInvalidHandEdits(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := NewStore(path)
	_, err := s.EnsureDefaults()
	require.NoError(t, err)

	reloaded := make(chan Settings, 4)
	w, err := NewWatcher(s, func(st Settings) { reloaded <- st })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	edit := "display:\n  banner_color_light: blue\n  banner_color_dark: '#010203'\n  title_font_size: -1\n"
	require.NoError(t, os.WriteFile(path, []byte(edit), 0644))

	select {
	case st := <-reloaded:
		assert.Equal(t, "#010203", st.Display.BannerColorDark)
		assert.Equal(t, theme.DefaultBannerColorLight, st.Display.BannerColorLight)
		assert.Equal(t, theme.DefaultTitleFontSize, st.Display.TitleFontSize)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	assert.Equal(t, theme.DefaultBannerColorLight, s.Display().BannerColorLight)
}

func TestWatcher_IgnoresIdenticalAndBrokenContent(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	s := NewStore(path)
	_, err := s.EnsureDefaults()
	require.NoError(t, err)

	reloaded := make(chan Settings, 4)
	w, err := NewWatcher(s, func(st Settings) { reloaded <- st })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, s.Save())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0644))

	select {
	case <-reloaded:
		t.Fatal("unchanged content must not trigger a reload")
	case <-time.After(600 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("display: [broken"), 0644))
	select {
	case <-reloaded:
		t.Fatal("unparseable content must not trigger a reload")
	case <-time.After(600 * time.Millisecond):
	}
	assert.Equal(t, theme.DefaultDisplayProperties(), s.Display())

	w.Stop()
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(NewStore(filepath.Join(t.TempDir(), "s.yaml")), nil)
	require.NoError(t, err)
	w.Stop()
	assert.NoError(t, w.Start(context.Background()), "start after stop is a no-op")
}
