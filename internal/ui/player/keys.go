package player

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the player bindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Submit   key.Binding
	Restart  key.Binding
	NewExam  key.Binding
	Quit     key.Binding
	complete bool
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "try again")),
		NewExam: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "load new exam")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	if k.complete {
		return []key.Binding{k.Restart, k.NewExam, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Submit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
