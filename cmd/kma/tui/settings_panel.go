package tui

import (
	"fmt"
	"strings"

	"kma/cmd/kma/ui"
	"kma/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// settingsPanel lists the display properties and hosts one picker at a time.
type settingsPanel struct {
	props  []theme.Property
	cursor int

	editing bool
	input   textinput.Model
	preset  int
	color   *theme.ColorPicker
	family  *theme.FontFamilyPicker
	size    *theme.FontSizePicker

	// committed is set by a picker callback; the model persists it.
	committed *string

	err     string
	warning string
}

func newSettingsPanel() *settingsPanel {
	ti := textinput.New()
	ti.CharLimit = 120
	return &settingsPanel{props: theme.Properties(), input: ti, preset: -1}
}

func (p *settingsPanel) selected() theme.Property {
	return p.props[p.cursor]
}

func (p *settingsPanel) close() {
	p.editing = false
	p.color, p.family, p.size = nil, nil, nil
	p.committed = nil
	p.err, p.warning = "", ""
	p.input.Blur()
}

// open starts a picker on the selected property's current value.
func (p *settingsPanel) open(props theme.DisplayProperties) {
	prop := p.selected()
	current, _ := props.Get(prop.Key)
	p.close()
	p.editing = true
	p.preset = -1

	commit := func(v string) { p.committed = &v }
	switch prop.Kind {
	case theme.KindColor:
		p.color = theme.NewColorPicker(prop.Label, current, commit)
		p.color.Description = prop.Description
		p.preset = p.color.PendingIndex()
	case theme.KindFontFamily:
		p.family = theme.NewFontFamilyPicker(prop.Label, current, commit)
	case theme.KindFontSize:
		size := props.BaseFontSize
		switch prop.SizeType {
		case theme.SizeTitle:
			size = props.TitleFontSize
		case theme.SizeHeader:
			size = props.SectionHeaderFontSize
		}
		p.size = theme.NewFontSizePicker(prop.Label, prop.SizeType, size, func(f float64) {
			commit(theme.FormatFontSize(f))
		})
	}
	p.input.SetValue(current)
	p.input.CursorEnd()
	p.input.Focus()
}

func (p *settingsPanel) presetCount() int {
	switch {
	case p.color != nil:
		return len(theme.Palette)
	case p.family != nil:
		return len(p.family.Options())
	case p.size != nil:
		return len(p.size.Options())
	}
	return 0
}

// cyclePreset moves through the preset list. Colors become pending; font presets
// are copied into the input for confirmation.
func (p *settingsPanel) cyclePreset(step int) {
	n := p.presetCount()
	if n == 0 {
		return
	}
	p.preset = ((p.preset+step)%n + n) % n
	switch {
	case p.color != nil:
		p.color.SelectPreset(p.preset)
		p.input.SetValue(p.color.Input())
	case p.family != nil:
		p.input.SetValue(p.family.Options()[p.preset].Value)
	case p.size != nil:
		p.input.SetValue(p.size.Options()[p.preset].Value)
	}
	p.input.CursorEnd()
	p.err = ""
}

func (p *settingsPanel) presetLabel() string {
	if p.preset < 0 {
		return ""
	}
	switch {
	case p.family != nil:
		return p.family.Options()[p.preset].Text
	case p.size != nil:
		return p.size.Options()[p.preset].Text
	}
	return ""
}

// confirm runs the picker's commit for the typed value. It returns false when
// the picker refused the value.
func (p *settingsPanel) confirm() bool {
	p.err, p.warning = "", ""
	value := p.input.Value()
	switch {
	case p.color != nil:
		p.color.SetInput(value)
		if !p.color.CanApply() || p.color.InlineError() != "" {
			p.err = theme.ColorHint
			return false
		}
		return p.color.Apply()
	case p.family != nil:
		return p.family.Enter(value)
	case p.size != nil:
		if err := p.size.Enter(value); err != nil {
			p.err = theme.FontSizeHint
			return false
		}
		p.warning = p.size.Warning()
		return true
	}
	return false
}

// updatePanel handles navigation while the panel is open and no picker is active.
func (m Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panel
	switch {
	case key.Matches(msg, m.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		p.warning = ""
	case key.Matches(msg, m.keys.Down):
		if p.cursor < len(p.props)-1 {
			p.cursor++
		}
		p.warning = ""
	case key.Matches(msg, m.keys.Edit):
		p.open(m.props)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Reset):
		prop := p.selected()
		if err := m.resetProperty(prop.Key); err != nil {
			p.err = err.Error()
		} else {
			m.status = prop.Label + " reset to default"
		}
	case key.Matches(msg, m.keys.Cancel):
		m.viewState.ToggleSettings()
		p.close()
		m.resize()
	}
	return m, nil
}

// updateEditor routes keys to the active picker.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panel
	switch msg.Type {
	case tea.KeyEsc:
		if p.color != nil {
			p.color.Cancel()
		}
		p.close()
		return m, nil
	case tea.KeyUp:
		p.cyclePreset(-1)
		return m, nil
	case tea.KeyDown:
		p.cyclePreset(1)
		return m, nil
	case tea.KeyEnter:
		if !p.confirm() {
			return m, nil
		}
		if p.committed != nil {
			prop := p.selected()
			if err := m.setProperty(prop.Key, *p.committed); err != nil {
				p.err = err.Error()
				p.committed = nil
				return m, nil
			}
			m.status = fmt.Sprintf("%s set to %s", prop.Label, *p.committed)
		}
		warning := p.warning
		p.close()
		p.warning = warning
		return m, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.color != nil {
		p.color.SetInput(p.input.Value())
		p.preset = p.color.PendingIndex()
	}
	return m, cmd
}

// setProperty persists one display property and restyles the form.
func (m *Model) setProperty(k, value string) error {
	if m.store != nil {
		if err := m.store.SetDisplay(k, value); err != nil {
			return err
		}
		m.applyProps(m.store.Display())
	} else {
		next := m.props
		if err := next.Set(k, value); err != nil {
			return err
		}
		m.applyProps(next)
	}
	m.refresh()
	return nil
}

func (m *Model) resetProperty(k string) error {
	if m.store != nil {
		if err := m.store.ResetProperty(k); err != nil {
			return err
		}
		m.applyProps(m.store.Display())
	} else {
		next := m.props
		if err := next.Reset(k); err != nil {
			return err
		}
		m.applyProps(next)
	}
	m.refresh()
	return nil
}

func (m Model) renderPanel() string {
	p := m.panel
	s := m.styles
	width := ui.PanelContentWidth(ui.SettingsPanelWidth)

	var lines []string
	lines = append(lines, s.Bold.Render("Display Settings"), "")

	if p.editing {
		prop := p.selected()
		lines = append(lines, s.Organization.Render(prop.Label))
		lines = append(lines, s.Muted.Width(width).Render(prop.Description), "")
		lines = append(lines, p.input.View())
		switch {
		case p.color != nil:
			lines = append(lines, "Pending "+swatch(p.color.Pending())+" "+p.color.Pending())
			if e := p.color.InlineError(); e != "" && p.input.Value() != "" {
				lines = append(lines, s.Error.Width(width).Render(e))
			}
		case p.size != nil:
			lines = append(lines, s.Muted.Render(fmt.Sprintf("Recommended %d-%dpx", theme.MinRecommendedFontSize, theme.MaxRecommendedFontSize)))
		}
		if label := p.presetLabel(); label != "" {
			lines = append(lines, s.Muted.Render("Preset: "+label))
		}
		if p.err != "" {
			lines = append(lines, s.Error.Width(width).Render(p.err))
		}
		lines = append(lines, "", s.Muted.Render("↑/↓ presets · enter apply · esc cancel"))
		return s.Panel.Width(width).Render(strings.Join(lines, "\n"))
	}

	for i, prop := range p.props {
		value, _ := m.props.Get(prop.Key)
		marker := "  "
		label := prop.Label
		if i == p.cursor {
			marker = "▸ "
			label = s.Selected.Render(label)
		}
		lines = append(lines, marker+label)
		switch prop.Kind {
		case theme.KindColor:
			value = swatch(value) + " " + s.Muted.Render(value)
		case theme.KindFontSize:
			value = s.Muted.Render(value + "px")
		default:
			value = s.Muted.Render(value)
		}
		lines = append(lines, "    "+ansi.Truncate(value, width-4, "…"))
	}
	if p.warning != "" {
		lines = append(lines, "", s.Warning.Width(width).Render(p.warning))
	}
	if p.err != "" {
		lines = append(lines, "", s.Error.Width(width).Render(p.err))
	}
	lines = append(lines, "", s.Muted.Render("enter edit · r reset · esc close"))
	return s.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func swatch(hex string) string {
	if !theme.ValidateHexColor(hex) {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
