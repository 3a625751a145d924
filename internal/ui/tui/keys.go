package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Tab         key.Binding
	Enter       key.Binding
	Back        key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Filter      key.Binding
	Background  key.Binding
	Folders     key.Binding
	Toggle      key.Binding
	CopyName    key.Binding
	CopyRel     key.Binding
	CopyFull    key.Binding
	Open        key.Binding
	Reveal      key.Binding
	Rescan      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle group"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "esc"),
			key.WithHelp("esc/⌫", "back"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "collapse all"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Background: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "background"),
		),
		Folders: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "project folders"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "toggle"),
		),
		CopyName: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy name"),
		),
		CopyRel: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy relative path"),
		),
		CopyFull: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy full path"),
		),
		Open: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "open in app"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "reveal in file manager"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns a brief help string
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Filter, k.Quit}
}

// FullHelp returns all help bindings
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Top, k.Bottom, k.Tab},
		{k.Enter, k.ExpandAll, k.CollapseAll},
		{k.Filter, k.Background, k.Folders},
		{k.CopyName, k.CopyRel, k.CopyFull},
		{k.Open, k.Reveal, k.Rescan},
		{k.Help, k.Quit},
	}
}
