//go:build !gui

package main

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the reader key bindings.
type keyMap struct {
	PlayPause key.Binding
	Stop      key.Binding
	Restart   key.Binding

	SkipBack, SkipForward      key.Binding
	PrevSentence, NextSentence key.Binding
	SpeedUp, SpeedDown         key.Binding

	NextTab, PrevTab key.Binding
	NewTab, CloseTab key.Binding

	FontBigger, FontSmaller, CycleFont key.Binding
	ApplyDefaults                      key.Binding

	TOC  key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Stop:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),

		SkipBack:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "back 5 words")),
		SkipForward:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "ahead 5 words")),
		PrevSentence: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev sentence")),
		NextSentence: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next sentence")),
		SpeedUp:      key.NewBinding(key.WithKeys("up", "+", "="), key.WithHelp("↑", "faster")),
		SpeedDown:    key.NewBinding(key.WithKeys("down", "-"), key.WithHelp("↓", "slower")),

		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		NewTab:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new tab")),
		CloseTab: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),

		FontBigger:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "bigger font")),
		FontSmaller: key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "smaller font")),
		CycleFont:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next font")),

		// Homepage only.
		ApplyDefaults: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply defaults to all tabs")),

		TOC:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "contents")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp satisfies help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.SkipBack, k.SkipForward, k.SpeedUp, k.SpeedDown, k.NewTab, k.NextTab, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Stop, k.Restart},
		{k.SkipBack, k.SkipForward, k.PrevSentence, k.NextSentence},
		{k.SpeedUp, k.SpeedDown, k.FontBigger, k.FontSmaller, k.CycleFont},
		{k.NextTab, k.PrevTab, k.NewTab, k.CloseTab},
		{k.TOC, k.Help, k.Quit},
	}
}
