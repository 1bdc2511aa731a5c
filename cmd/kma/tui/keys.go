package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevLevel  key.Binding
	NextLevel  key.Binding
	SetLevel   key.Binding
	NextOrg    key.Binding
	PrevOrg    key.Binding
	NextView   key.Binding
	PrevView   key.Binding
	Fullscreen key.Binding
	Settings   key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Settings panel
	Edit   key.Binding
	Cancel key.Binding
	Reset  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous question"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next question"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "lower level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "raise level"),
		),
		SetLevel: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "set level"),
		),
		NextOrg: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "next organization"),
		),
		PrevOrg: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "previous organization"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous view"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle fullscreen"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit / apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset to default"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevLevel, k.NextLevel, k.NextView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevLevel, k.NextLevel, k.SetLevel},
		{k.NextOrg, k.PrevOrg, k.NextView, k.PrevView},
		{k.Fullscreen, k.Settings, k.Edit, k.Cancel, k.Reset},
		{k.Help, k.Quit},
	}
}
