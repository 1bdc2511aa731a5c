// Package tui implements the interactive assessment form: a bubbletea model with
// the Home, Comparison, Take Assessment and Admin views, the fullscreen toggle and
// the administrator settings panel.
package tui

import (
	"context"
	"fmt"

	"kma/cmd/kma/ui"
	"kma/internal/assessment"
	"kma/internal/config"
	"kma/internal/logging"
	"kma/internal/rubric"
	"kma/internal/settings"
	"kma/internal/shell"
	"kma/internal/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// View is a toolbar destination.
type View int

const (
	ViewHome View = iota
	ViewComparison
	ViewAssessment
	ViewAdmin

	viewCount
)

var viewNames = [...]string{"Home", "Comparison View", "Take Assessment", "Admin View"}

func (v View) String() string {
	if v < 0 || v >= viewCount {
		return "Unknown"
	}
	return viewNames[v]
}

// Options wires the model to its collaborators. Every field is optional.
type Options struct {
	Context context.Context
	Form    *assessment.Form

	// Store persists display properties edited in the settings panel. Without
	// a store edits only last for the session.
	Store *settings.Store

	// Reloads delivers settings re-read after external edits.
	Reloads <-chan settings.Settings

	Environment shell.EnvironmentProbe
	Permissions shell.PermissionProbe
	LoginName   string

	UI config.UIConfig
}

type probeResultMsg shell.ProbeResult

type settingsReloadedMsg settings.Settings

// item addresses one editable question.
type item struct {
	section  int
	question int
}

// Model is the bubbletea model for the form.
type Model struct {
	ctx       context.Context
	form      *assessment.Form
	store     *settings.Store
	reloads   <-chan settings.Settings
	envProbe  shell.EnvironmentProbe
	permProbe shell.PermissionProbe
	login     string
	uiCfg     config.UIConfig
	log       *logging.Logger

	baseline rubric.AssessmentData

	view      View
	viewState *shell.ViewState
	probing   bool
	probe     shell.ProbeResult

	props    theme.DisplayProperties
	styles   ui.Styles
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	wrap     int // word wrap the renderer was built for

	items    []item
	cursor   int
	selected int // rendered line of the cursor row

	panel  *settingsPanel
	status string

	width  int
	height int
}

// New builds the model. The view starts on Take Assessment; the admin flag is
// false until the startup probes report.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	form := opts.Form
	if form == nil {
		form = assessment.NewDefault()
	}
	props := theme.DefaultDisplayProperties()
	if opts.Store != nil {
		props = opts.Store.Display()
		props.FillDefaults()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		form:      form,
		baseline:  form.Data(),
		store:     opts.Store,
		reloads:   opts.Reloads,
		envProbe:  opts.Environment,
		permProbe: opts.Permissions,
		login:     opts.LoginName,
		uiCfg:     opts.UI,
		log:       logging.Get(logging.CategoryUI),
		view:      ViewAssessment,
		viewState: shell.NewViewState(false, opts.UI.StartFullscreen),
		probing:   true,
		probe:     shell.ProbeResult{Environment: shell.UnknownEnvironment},
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		viewport:  viewport.New(80, 20),
		panel:     newSettingsPanel(),
		width:     80,
		height:    24,
	}
	m.items = editableItems(form.Sections())
	m.applyProps(props)
	m.resize()
	return m
}

func editableItems(sections []rubric.Section) []item {
	var items []item
	for i, sec := range sections {
		for j, q := range sec.Questions {
			if !q.Header {
				items = append(items, item{section: i, question: j})
			}
		}
	}
	return items
}

// Init starts the probes, the spinner and the settings listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runProbes(),
		m.waitForReload(),
	)
}

func (m Model) runProbes() tea.Cmd {
	ctx, env, perms := m.ctx, m.envProbe, m.permProbe
	return func() tea.Msg {
		return probeResultMsg(shell.RunProbes(ctx, env, perms))
	}
}

func (m Model) waitForReload() tea.Cmd {
	ch := m.reloads
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return settingsReloadedMsg(s)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.resize()
		return m, nil

	case probeResultMsg:
		m.probing = false
		m.probe = shell.ProbeResult(msg)
		m.viewState.SetAdmin(m.probe.IsAdmin)
		m.log.Info("probes: environment=%s admin=%t", m.probe.Environment, m.probe.IsAdmin)
		m.resize()
		return m, nil

	case settingsReloadedMsg:
		m.applyProps(msg.Display)
		m.status = "Display settings reloaded"
		m.refresh()
		return m, m.waitForReload()

	case spinner.TickMsg:
		if m.probing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.viewState.SettingsOpen() && m.panel.editing {
		return m.updateEditor(msg)
	}
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.NextView):
		m.switchView(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevView):
		m.switchView(-1)
		return m, nil

	case key.Matches(msg, m.keys.Fullscreen):
		return m.toggleFullscreen()

	case key.Matches(msg, m.keys.Settings):
		m.toggleSettings()
		return m, nil
	}

	if m.viewState.SettingsOpen() {
		return m.updatePanel(msg)
	}
	if m.view != ViewAssessment {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PrevLevel):
		m.stepLevel(-1)
	case key.Matches(msg, m.keys.NextLevel):
		m.stepLevel(1)
	case key.Matches(msg, m.keys.SetLevel):
		if l, ok := rubric.LevelFromScore(int(msg.Runes[0] - '0')); ok {
			m.setLevel(l)
		}
	case key.Matches(msg, m.keys.NextOrg):
		m.form.CycleOrganization(1)
		m.refresh()
	case key.Matches(msg, m.keys.PrevOrg):
		m.form.CycleOrganization(-1)
		m.refresh()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) switchView(step int) {
	m.view = View((int(m.view) + step + int(viewCount)) % int(viewCount))
	m.viewport.GotoTop()
	m.refresh()
}

func (m Model) toggleFullscreen() (tea.Model, tea.Cmd) {
	if !m.viewState.ToggleFullscreen() {
		m.status = "Fullscreen can only be toggled by site administrators"
		return m, nil
	}
	if m.viewState.IsFullscreen() && m.viewState.SettingsOpen() {
		m.viewState.ToggleSettings()
		m.panel.close()
	}
	m.resize()
	if m.viewState.IsFullscreen() {
		return m, tea.EnterAltScreen
	}
	return m, tea.ExitAltScreen
}

func (m *Model) toggleSettings() {
	if !m.viewState.ToggleSettings() {
		switch {
		case !m.viewState.IsAdmin():
			m.status = "Settings are available to site administrators"
		default:
			m.status = "Exit fullscreen to open settings"
		}
		return
	}
	if !m.viewState.SettingsOpen() {
		m.panel.close()
	}
	m.resize()
}

func (m *Model) moveCursor(step int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor += step
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	m.refresh()
}

func (m *Model) current() (rubric.Section, rubric.Question, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return rubric.Section{}, rubric.Question{}, false
	}
	it := m.items[m.cursor]
	sec := m.form.Sections()[it.section]
	return sec, sec.Questions[it.question], true
}

func (m *Model) stepLevel(step int) {
	_, q, ok := m.current()
	if !ok {
		return
	}
	next := q.Level.Next()
	if step < 0 {
		next = q.Level.Prev()
	}
	m.setLevel(next)
}

func (m *Model) setLevel(l rubric.Level) {
	sec, q, ok := m.current()
	if !ok {
		return
	}
	if m.form.ApplyLevelChange(sec.ID, q.ID, l) {
		m.refresh()
	}
}

// applyProps rebuilds styles after a display property change.
func (m *Model) applyProps(props theme.DisplayProperties) {
	props.FillDefaults()
	m.props = props
	m.styles = ui.NewStyles(props)
	m.spinner.Style = m.styles.Spinner
}

func (m Model) layout() ui.LayoutConfig {
	return ui.LayoutConfig{
		TerminalWidth:  m.width,
		TerminalHeight: m.height,
		Fullscreen:     m.viewState.IsFullscreen(),
		MaxWidth:       m.uiCfg.MaxWidth,
		EmbeddedWidth:  m.uiCfg.EmbeddedWidth,
		SettingsOpen:   m.viewState.SettingsOpen(),
	}
}

// resize recomputes viewport dimensions and re-renders the body.
func (m *Model) resize() {
	l := m.layout()
	m.viewport.Width = l.ContentWidth()
	h := l.ContentHeight()
	if m.help.ShowAll {
		h -= len(m.keys.FullHelp()) + 1
	}
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h
	m.help.Width = l.ContentWidth()

	if wrap := l.ContentWidth() - 2; m.renderer == nil || wrap != m.wrap {
		m.renderer = m.newRenderer(wrap)
		m.wrap = wrap
	}
	m.refresh()
}

// newRenderer builds the markdown renderer. Only the auto style queries the
// terminal, so it is opt-in.
func (m *Model) newRenderer(wrap int) *glamour.TermRenderer {
	style := glamour.WithStandardStyle(m.uiCfg.MarkdownStyle)
	switch m.uiCfg.MarkdownStyle {
	case "":
		style = glamour.WithStandardStyle("dark")
	case "auto":
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wrap))
	if err != nil {
		m.log.Warn("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

// refresh re-renders the active view into the viewport and keeps the cursor row visible.
func (m *Model) refresh() {
	switch m.view {
	case ViewHome:
		m.viewport.SetContent(m.renderHome())
	case ViewComparison:
		m.viewport.SetContent(m.renderComparison())
	case ViewAdmin:
		m.viewport.SetContent(m.renderAdmin())
	default:
		m.viewport.SetContent(m.renderForm())
		m.scrollToSelected()
	}
}

func (m *Model) scrollToSelected() {
	switch {
	case m.selected < m.viewport.YOffset:
		m.viewport.SetYOffset(m.selected)
	case m.selected >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
	}
}

// Form returns the underlying form state.
func (m Model) Form() *assessment.Form { return m.form }

// ActiveView returns the current toolbar view.
func (m Model) ActiveView() View { return m.view }

// ViewState returns the shell view flags.
func (m Model) ViewState() *shell.ViewState { return m.viewState }

// Status returns the transient status line.
func (m Model) Status() string { return m.status }

// DisplayProperties returns the properties the styles were built from.
func (m Model) DisplayProperties() theme.DisplayProperties { return m.props }

func (m Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	return m.styles.Warning.Render(m.status)
}

func formatAverage(avg float64) string {
	return fmt.Sprintf("%.2f", avg)
}
