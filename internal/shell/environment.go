// Package shell adapts the embedding host to the form: it classifies the host
// environment, decides whether the user is an administrator, and owns the
// fullscreen and settings-panel toggles.
package shell

import (
	"context"
	"os/user"
	"strings"

	"kma/internal/config"
)

// Environment identifies the host the form runs in.
type Environment string

const (
	EnvOffice     Environment = "Office"
	EnvOutlook    Environment = "Outlook"
	EnvTeams      Environment = "Teams"
	EnvSharePoint Environment = "SharePoint"
	EnvUnknown    Environment = "Unknown"
)

// EnvironmentInfo is the classified host plus whether it is a development host.
type EnvironmentInfo struct {
	Env   Environment `json:"environment" yaml:"environment"`
	Local bool        `json:"local" yaml:"local"`
}

// UnknownEnvironment is the fallback when the probe fails.
var UnknownEnvironment = EnvironmentInfo{Env: EnvUnknown}

func (e EnvironmentInfo) String() string {
	if e.Local && e.Env != EnvUnknown {
		return string(e.Env) + " (local)"
	}
	return string(e.Env)
}

// Message is the display string for the environment.
func (e EnvironmentInfo) Message() string {
	switch e.Env {
	case EnvOffice:
		if e.Local {
			return "The app is running on your local environment in office.com"
		}
		return "The app is running in office.com"
	case EnvOutlook:
		if e.Local {
			return "The app is running on your local environment in Outlook"
		}
		return "The app is running in Outlook"
	case EnvTeams:
		if e.Local {
			return "The app is running on your local environment as Microsoft Teams app"
		}
		return "The app is running in Microsoft Teams"
	case EnvSharePoint:
		if e.Local {
			return "The app is running on your local environment as SharePoint web part"
		}
		return "The app is running on SharePoint page"
	default:
		return "The app is running in an unknown environment"
	}
}

// ClassifyEnvironment maps host context to an environment. Without a Teams
// context the host is SharePoint; with one, the host application name decides.
func ClassifyEnvironment(h config.HostConfig) EnvironmentInfo {
	if !h.TeamsContext {
		return EnvironmentInfo{Env: EnvSharePoint, Local: h.ServedFromLocalhost}
	}
	switch h.Name {
	case "Office":
		return EnvironmentInfo{Env: EnvOffice, Local: h.ServedFromLocalhost}
	case "Outlook":
		return EnvironmentInfo{Env: EnvOutlook, Local: h.ServedFromLocalhost}
	case "Teams", "TeamsModern":
		return EnvironmentInfo{Env: EnvTeams, Local: h.ServedFromLocalhost}
	default:
		return UnknownEnvironment
	}
}

// EnvironmentProbe classifies the host once at startup.
type EnvironmentProbe interface {
	Environment(ctx context.Context) (EnvironmentInfo, error)
}

// PermissionProbe decides whether the current user may edit settings.
type PermissionProbe interface {
	IsAdmin(ctx context.Context) (bool, error)
}

// IsAdmin applies the host rule: any of the manage/customize/full-control ACL
// flags, or a login name containing "admin" in any case.
func IsAdmin(h config.HostConfig, loginName string) bool {
	for _, p := range config.KnownPermissions {
		if h.HasPermission(p) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(loginName), "admin")
}

// HostProbe answers both probes from host configuration.
type HostProbe struct {
	Host config.HostConfig

	// CurrentUser resolves the login when Host.LoginName is empty.
	CurrentUser func() (string, error)
}

// NewHostProbe creates a probe that falls back to the OS user for the login name.
func NewHostProbe(h config.HostConfig) *HostProbe {
	return &HostProbe{Host: h, CurrentUser: osUser}
}

func osUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// Environment implements EnvironmentProbe.
func (p *HostProbe) Environment(ctx context.Context) (EnvironmentInfo, error) {
	if err := ctx.Err(); err != nil {
		return UnknownEnvironment, err
	}
	return ClassifyEnvironment(p.Host), nil
}

// LoginName returns the configured login or the OS user.
func (p *HostProbe) LoginName() (string, error) {
	if p.Host.LoginName != "" {
		return p.Host.LoginName, nil
	}
	if p.CurrentUser == nil {
		return "", nil
	}
	return p.CurrentUser()
}

// IsAdmin implements PermissionProbe.
func (p *HostProbe) IsAdmin(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	login, err := p.LoginName()
	if err != nil {
		return false, err
	}
	return IsAdmin(p.Host, login), nil
}
