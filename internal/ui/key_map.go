package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	mark     key.Binding
	batch    key.Binding
	verify   key.Binding
	favorite key.Binding
	ordered  key.Binding
	delete   key.Binding
	back     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		mark:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		batch:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "batch mode")),
		verify:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "verify covers")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		ordered:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "ordered")),
		delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.mark},
		{k.batch, k.verify, k.favorite},
		{k.ordered, k.delete, k.quit},
	}
}
