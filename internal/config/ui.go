package config

// UIConfig holds terminal interface configuration.
type UIConfig struct {
	// StartFullscreen opens the form on the alternate screen.
	StartFullscreen bool `json:"start_fullscreen" yaml:"start_fullscreen"`

	// Organization preselects the assessed organization (OD1..OD5).
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`

	// MaxWidth caps the fullscreen content width (0 = terminal width).
	MaxWidth int `json:"max_width,omitempty" yaml:"max_width,omitempty"`

	// EmbeddedWidth caps the content width outside fullscreen.
	EmbeddedWidth int `json:"embedded_width" yaml:"embedded_width"`

	// MarkdownStyle is the glamour style for the Home and Admin views: dark, light,
	// ascii, notty or auto. auto queries the terminal background.
	MarkdownStyle string `json:"markdown_style,omitempty" yaml:"markdown_style,omitempty"`
}

// ValidMarkdownStyles lists the accepted markdown styles.
var ValidMarkdownStyles = []string{"auto", "dark", "light", "ascii", "notty"}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		StartFullscreen: true,
		EmbeddedWidth:   100,
		MarkdownStyle:   "dark",
	}
}
