package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Hit     key.Binding
	Stand   key.Binding
	Split   key.Binding
	Deal    key.Binding
	Clear   key.Binding
	BetUp   key.Binding
	BetDown key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Hit:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stand")),
		Split:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "split")),
		Deal:    key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "new round")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear table")),
		BetUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise bet")),
		BetDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "lower bet")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Stand, k.Split, k.Deal, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hit, k.Stand, k.Split},
		{k.Deal, k.Clear},
		{k.BetUp, k.BetDown},
		{k.Help, k.Quit},
	}
}
