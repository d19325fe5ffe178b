package modal

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings shared by the built-in dialogs.
type KeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
}

// DefaultKeyMap is used by every built-in dialog.
var DefaultKeyMap = KeyMap{
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:      key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev")),
	Up:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
}

func hints(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		h := b.Help()
		if i > 0 {
			out += " • "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
