package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	back     key.Binding
	yes      key.Binding
	no       key.Binding
	refresh  key.Binding
	toggle   key.Binding
	connect  key.Binding
	posts    key.Binding
	generate key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		toggle:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle automation")),
		connect:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect/disconnect")),
		posts:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "posts")),
		generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate post")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.refresh, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.back},
		{k.refresh, k.toggle, k.connect},
		{k.posts, k.generate, k.quit},
	}
}
