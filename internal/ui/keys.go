package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	Dismiss    key.Binding
	Up         key.Binding
	Down       key.Binding
	ToggleUnit key.Binding
	PastDays   key.Binding
	Locate     key.Binding
	Reload     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close suggestions")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous suggestion")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next suggestion")),
		ToggleUnit: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "°C/°F")),
		PastDays:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "past days")),
		Locate:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "my location")),
		Reload:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
	}
}

// helpLine lists the bindings shown under the dashboard
func (k keyMap) helpLine() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.ToggleUnit, k.PastDays, k.Locate, k.Reload, k.Quit}
}
