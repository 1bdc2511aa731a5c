package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kma/cmd/kma/tui"
	"kma/internal/assessment"
	"kma/internal/logging"
	"kma/internal/rubric"
	"kma/internal/settings"
	"kma/internal/shell"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// openSettings returns the settings store with defaults written before first render.
func (a *app) openSettings() (*settings.Store, error) {
	store := settings.NewStore(a.resolve(a.cfg.Settings.Path))
	if _, err := store.EnsureDefaults(); err != nil {
		return nil, fmt.Errorf("failed to prepare display settings: %w", err)
	}
	return store, nil
}

// newForm opens the assessment form and logs every committed change.
func (a *app) newForm(data rubric.AssessmentData) *assessment.Form {
	log := logging.Get(logging.CategoryForm).With("workspace", a.workspace)
	var form *assessment.Form
	form = assessment.New(data,
		assessment.WithLogger(log),
		assessment.WithOrganization(a.cfg.UI.Organization),
		assessment.WithOnChange(func(d rubric.AssessmentData) {
			log.With("session", form.SessionID()).Info("assessment data changed: organization %s, %d sections",
				d.Organization, len(d.Sections))
		}),
	)
	return form
}

func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := a.loadAssessment()
	if err != nil {
		return err
	}
	store, err := a.openSettings()
	if err != nil {
		return err
	}

	probe := shell.NewHostProbe(a.cfg.Host)
	login, err := probe.LoginName()
	if err != nil {
		logging.Shell("login name unavailable: %v", err)
	}

	opts := tui.Options{
		Context:     ctx,
		Form:        a.newForm(data),
		Store:       store,
		Environment: probe,
		Permissions: probe,
		LoginName:   login,
		UI:          a.cfg.UI,
	}

	if a.cfg.Settings.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		reloads := make(chan settings.Settings)
		w, err := settings.NewWatcher(store, func(s settings.Settings) {
			select {
			case reloads <- s:
			case <-watchCtx.Done():
			}
		})
		if err != nil {
			return fmt.Errorf("failed to create settings watcher: %w", err)
		}
		if err := w.Start(watchCtx); err != nil {
			w.Stop()
			return fmt.Errorf("failed to watch settings: %w", err)
		}
		defer w.Stop()
		defer cancel()
		opts.Reloads = reloads
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.cfg.UI.StartFullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.New(opts), progOpts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("assessment form failed: %w", err)
	}
	return nil
}
