package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keyMap holds the application bindings; scrolling keys come from the viewport
type keyMap struct {
	scroll viewport.KeyMap

	Top    key.Binding
	Bottom key.Binding
	Reload key.Binding
	Pager  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap(scroll viewport.KeyMap) keyMap {
	return keyMap{
		scroll: scroll,
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Pager: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "open in pager"),
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

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.scroll.Down, k.scroll.Up, k.Pager, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.scroll.Down, k.scroll.Up, k.scroll.PageDown, k.scroll.PageUp},
		{k.scroll.HalfPageDown, k.scroll.HalfPageUp, k.Top, k.Bottom},
		{k.Reload, k.Pager, k.Help, k.Quit},
	}
}
