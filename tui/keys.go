package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/racer/types"
)

// keyMap holds the bindings the game reacts to besides plain characters.
type keyMap struct {
	Quit      key.Binding
	Backspace key.Binding
}

func newKeyMap(quit []string) keyMap {
	if len(quit) == 0 {
		quit = []string{"ctrl+c", "esc"}
	}
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys(quit...), key.WithHelp(quit[0], "quit")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete")),
	}
}

// translate converts a key message to engine key events. Pasted text is
// dropped; every character has to be typed.
func (km keyMap) translate(msg tea.KeyMsg) []types.KeyEvent {
	switch {
	case key.Matches(msg, km.Quit):
		return []types.KeyEvent{{Kind: types.KeyQuit}}
	case key.Matches(msg, km.Backspace):
		return []types.KeyEvent{{Kind: types.KeyBackspace}}
	case msg.Paste:
		return []types.KeyEvent{{Kind: types.KeyOther}}
	case msg.Type == tea.KeySpace:
		return []types.KeyEvent{{Kind: types.KeyRune, Rune: ' '}}
	case msg.Type == tea.KeyRunes && !msg.Alt:
		evs := make([]types.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, types.KeyEvent{Kind: types.KeyRune, Rune: r})
		}
		return evs
	}
	return []types.KeyEvent{{Kind: types.KeyOther}}
}
