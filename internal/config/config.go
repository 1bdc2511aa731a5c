package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"kma/internal/rubric"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all kma configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Rubric catalog override
	Rubric RubricConfig `yaml:"rubric"`

	// Display settings store
	Settings SettingsConfig `yaml:"settings"`

	// Host context used by the environment and permission probes
	Host HostConfig `yaml:"host"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// RubricConfig points at an alternative catalog file. Empty means the built-in rubric.
type RubricConfig struct {
	Path string `yaml:"path"`
}

// SettingsConfig configures the display settings store.
type SettingsConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// HostConfig describes the embedding host.
type HostConfig struct {
	// Name is the host application reported by the Teams context: Office, Outlook,
	// Teams or TeamsModern. Ignored without a Teams context.
	Name string `yaml:"name"`

	// TeamsContext is set when the form runs inside Teams, office.com or Outlook.
	TeamsContext bool `yaml:"teams_context"`

	ServedFromLocalhost bool `yaml:"served_from_localhost"`

	// Permissions lists the ACL flags the user holds on the host site.
	Permissions []string `yaml:"permissions"`

	// LoginName overrides the OS user for the admin heuristic.
	LoginName   string `yaml:"login_name"`
	DisplayName string `yaml:"display_name"`
}

// Permission flags that grant access to the settings panel.
const (
	PermManageWeb            = "manageWeb"
	PermManagePermissions    = "managePermissions"
	PermAddAndCustomizePages = "addAndCustomizePages"
	PermFullMask             = "fullMask"
)

// KnownPermissions lists the recognized ACL flags.
var KnownPermissions = []string{PermManageWeb, PermManagePermissions, PermAddAndCustomizePages, PermFullMask}

// KnownHosts lists the recognized host application names.
var KnownHosts = []string{"Office", "Outlook", "Teams", "TeamsModern"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "kma",
		Version: "1.0.0",

		Settings: SettingsConfig{
			Path:  filepath.Join(".kma", "settings.yaml"),
			Watch: true,
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the config path inside the workspace.
func DefaultConfigPath(workspace string) string {
	return filepath.Join(workspace, ".kma", "config.yaml")
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing file
// is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("KMA_HOST"); v != "" {
		c.Host.Name = v
	}
	if v := os.Getenv("KMA_TEAMS_CONTEXT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid KMA_TEAMS_CONTEXT %q: %w", v, err)
		}
		c.Host.TeamsContext = b
	}
	if v := os.Getenv("KMA_SERVED_FROM_LOCALHOST"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid KMA_SERVED_FROM_LOCALHOST %q: %w", v, err)
		}
		c.Host.ServedFromLocalhost = b
	}
	if v, ok := os.LookupEnv("KMA_PERMISSIONS"); ok {
		c.Host.Permissions = splitList(v)
	}
	if v := os.Getenv("KMA_LOGIN"); v != "" {
		c.Host.LoginName = v
	}
	if v := os.Getenv("KMA_SETTINGS"); v != "" {
		c.Settings.Path = v
	}
	if v := os.Getenv("KMA_RUBRIC"); v != "" {
		c.Rubric.Path = v
	}
	if v := os.Getenv("KMA_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid KMA_DEBUG %q: %w", v, err)
		}
		c.Logging.DebugMode = b
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasPermission reports whether the host grants the named ACL flag.
func (h HostConfig) HasPermission(name string) bool {
	for _, p := range h.Permissions {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Host.Name != "" && !contains(KnownHosts, c.Host.Name) {
		return fmt.Errorf("invalid host name: %s (valid: %v)", c.Host.Name, KnownHosts)
	}
	for _, p := range c.Host.Permissions {
		if !containsFold(KnownPermissions, p) {
			return fmt.Errorf("invalid host permission: %s (valid: %v)", p, KnownPermissions)
		}
	}
	if c.UI.Organization != "" && !rubric.ValidOrganization(c.UI.Organization) {
		return fmt.Errorf("invalid organization: %s (valid: %v)", c.UI.Organization, rubric.Organizations())
	}
	if c.UI.MaxWidth < 0 || c.UI.EmbeddedWidth < 0 {
		return fmt.Errorf("ui widths must not be negative")
	}
	if c.UI.MarkdownStyle != "" && !contains(ValidMarkdownStyles, c.UI.MarkdownStyle) {
		return fmt.Errorf("invalid markdown style: %s (valid: %v)", c.UI.MarkdownStyle, ValidMarkdownStyles)
	}
	if c.Logging.Level != "" && !contains(ValidLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
