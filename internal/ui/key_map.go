package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	next     key.Binding
	prev     key.Binding
	search   key.Binding
	sort     key.Binding
	simulate key.Binding
	refresh  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "complete")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		sort:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "sort")),
		simulate: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "simulate focus")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.search, k.sort, k.back},
		{k.simulate, k.refresh},
		{k.next, k.prev, k.quit},
	}
}
