package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typeracer/internal/session"
)

type keyMap struct {
	Quit    key.Binding
	Restart key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		Restart: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "retry")),
	}
}

// KeysFromMsg translates a Bubble Tea key message into session keys.
// Pasted text yields one key per rune.
func KeysFromMsg(msg tea.KeyMsg) []session.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]session.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, session.Char(r))
		}
		return keys
	case tea.KeySpace:
		return []session.Key{session.Char(' ')}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []session.Key{session.Backspace()}
	case tea.KeyEsc, tea.KeyCtrlC:
		return []session.Key{session.Cancel()}
	default:
		return []session.Key{session.Other()}
	}
}
