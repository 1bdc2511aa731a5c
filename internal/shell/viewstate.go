package shell

import "kma/internal/logging"

// ViewState holds the shell-owned view flags. Layout code only reads
// IsFullscreen to widen its width constraints.
type ViewState struct {
	fullscreen   bool
	settingsOpen bool
	admin        bool
}

// NewViewState starts in fullscreen when fullscreen is true.
func NewViewState(admin, fullscreen bool) *ViewState {
	return &ViewState{admin: admin, fullscreen: fullscreen}
}

// IsFullscreen reports the fullscreen flag.
func (v *ViewState) IsFullscreen() bool { return v.fullscreen }

// IsAdmin reports whether the admin controls are shown.
func (v *ViewState) IsAdmin() bool { return v.admin }

// SettingsOpen reports whether the settings panel is shown.
func (v *ViewState) SettingsOpen() bool { return v.settingsOpen }

// SetAdmin records the permission probe result. Losing admin closes the panel.
func (v *ViewState) SetAdmin(admin bool) {
	v.admin = admin
	if !admin {
		v.settingsOpen = false
	}
}

// CanToggleFullscreen reports whether the fullscreen control is offered.
func (v *ViewState) CanToggleFullscreen() bool { return v.admin }

// CanToggleSettings reports whether the settings control is offered: admins only,
// and only outside fullscreen.
func (v *ViewState) CanToggleSettings() bool { return v.admin && !v.fullscreen }

// ToggleFullscreen flips fullscreen when allowed and reports whether it did.
func (v *ViewState) ToggleFullscreen() bool {
	if !v.CanToggleFullscreen() {
		return false
	}
	v.fullscreen = !v.fullscreen
	logging.ShellDebug("fullscreen: %t", v.fullscreen)
	return true
}

// ToggleSettings opens or closes the settings panel when allowed.
func (v *ViewState) ToggleSettings() bool {
	if !v.CanToggleSettings() && !v.settingsOpen {
		return false
	}
	v.settingsOpen = !v.settingsOpen
	logging.ShellDebug("settings panel: %t", v.settingsOpen)
	return true
}
