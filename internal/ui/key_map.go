package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next     key.Binding
	prev     key.Binding
	like     key.Binding
	comments key.Binding
	post     key.Binding
	back     key.Binding
	tab      key.Binding
	enter    key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next video")),
		prev:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		like:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		comments: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comments")),
		post:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "post comment")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch field")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.like},
		{k.comments, k.post, k.back},
		{k.quit},
	}
}
