// Package settings persists the host-owned configuration bag: the display
// properties and a free-text description.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"kma/internal/logging"
	"kma/internal/theme"

	"gopkg.in/yaml.v3"
)

// Settings is the persisted property bag.
type Settings struct {
	Description string                  `yaml:"description" json:"description"`
	Display     theme.DisplayProperties `yaml:"display" json:"display"`
}

// Store loads and saves Settings at a fixed path.
type Store struct {
	mu       sync.RWMutex
	path     string
	settings Settings
	exists   bool
}

// NewStore creates a store for the given file. Nothing is read until Load.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads settings from disk. A missing file yields empty settings.
func (s *Store) Load() error {
	loaded, exists, err := read(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = loaded
	s.exists = exists
	s.mu.Unlock()
	return nil
}

func read(path string) (Settings, bool, error) {
	var out Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, false, nil
		}
		return out, false, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, true, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if restored := out.Display.Sanitize(); len(restored) > 0 {
		logging.Get(logging.CategorySettings).Warn("invalid values in %s restored to defaults: %v", path, restored)
	}
	return out, true, nil
}

// EnsureDefaults loads the file, fills every unset display property and writes
// the file back only when something was filled or the file did not exist.
func (s *Store) EnsureDefaults() (bool, error) {
	if err := s.Load(); err != nil {
		return false, err
	}
	s.mu.Lock()
	changed := s.settings.Display.FillDefaults() || !s.exists
	s.mu.Unlock()
	if !changed {
		logging.Get(logging.CategorySettings).Debug("settings %s already complete", s.path)
		return false, nil
	}
	if err := s.Save(); err != nil {
		return false, err
	}
	logging.Settings("filled default display properties in %s", s.path)
	return true, nil
}

// Save writes the current settings to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	s.exists = true
	return nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Display returns the current display properties.
func (s *Store) Display() theme.DisplayProperties {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Display
}

// replace swaps in settings read elsewhere and reports whether they differ.
func (s *Store) replace(next Settings) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next == s.settings {
		return false
	}
	s.settings = next
	s.exists = true
	return true
}

// Update applies fn to a copy of the settings and saves the result. When fn
// returns an error nothing is changed.
func (s *Store) Update(fn func(*Settings) error) error {
	s.mu.RLock()
	next := s.settings
	s.mu.RUnlock()

	if err := fn(&next); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()
	return s.Save()
}

// SetDisplay validates and stores one display property.
func (s *Store) SetDisplay(key, value string) error {
	err := s.Update(func(st *Settings) error {
		return st.Display.Set(key, value)
	})
	if err != nil {
		return err
	}
	logging.Settings("%s set to %s", key, value)
	return nil
}

// SetDescription stores the free-text description.
func (s *Store) SetDescription(desc string) error {
	return s.Update(func(st *Settings) error {
		st.Description = desc
		return nil
	})
}

// ResetProperty restores one display property to its default.
func (s *Store) ResetProperty(key string) error {
	err := s.Update(func(st *Settings) error {
		return st.Display.Reset(key)
	})
	if err != nil {
		return err
	}
	logging.Settings("%s reset to default", key)
	return nil
}

// ResetDisplay restores every display property to its default.
func (s *Store) ResetDisplay() error {
	err := s.Update(func(st *Settings) error {
		st.Display = theme.DefaultDisplayProperties()
		return nil
	})
	if err != nil {
		return err
	}
	logging.Settings("display properties reset to defaults")
	return nil
}
