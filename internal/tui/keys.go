package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Add      key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Pause    key.Binding
	Panic    key.Binding
	Panel    key.Binding
	CloseTab key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Add:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^n", "new file")),
	Rename:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "rename")),
	Delete:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("^x", "delete")),
	Pause:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("^p", "pause")),
	Panic:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "boss!")),
	Panel:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("^o", "panel")),
	CloseTab: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("^w", "close tab")),
}

func (k keyMap) short(explorer bool) []key.Binding {
	if explorer {
		return []key.Binding{k.Focus, k.Up, k.Down, k.Open, k.Add, k.Rename, k.Delete, k.Pause, k.Panic}
	}
	return []key.Binding{k.Focus, k.Add, k.Rename, k.Delete, k.Pause, k.Panic, k.Quit}
}
