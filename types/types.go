// Package types defines the shared data structures for the racer game.
// It holds only type definitions and constants.
package types

// KeyKind classifies a key event.
type KeyKind int

const (
	KeyOther     KeyKind = iota // any key the game does not act on
	KeyRune                     // printable character in Rune
	KeyBackspace                // backspace / delete-backward
	KeyQuit                     // explicit stop request (ctrl+c, esc, ...)
	KeyResize                   // terminal resized to Height x Width
)

// KeyEvent is one input event read from the terminal.
type KeyEvent struct {
	Kind   KeyKind
	Rune   rune
	Height int // KeyResize only
	Width  int // KeyResize only
}

// Region names one of the three stacked display areas.
type Region int

const (
	RegionTrack  Region = iota // top third: player status
	RegionPrompt               // middle third: wrapped prompt text
	RegionEntry                // bottom third: live input
)

// Style is the visual style of a painted character.
type Style int

const (
	StyleNormal    Style = iota
	StyleHighlight       // current word in the prompt
	StyleCorrect         // typed character matches the text
	StyleIncorrect       // typed character does not match
	StyleStatus          // track region text
)

// Outcome is what a single keystroke did to the session.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCharAccepted
	OutcomeBackspaceAccepted
	OutcomeWordAdvanced
	OutcomeFinished
	OutcomeQuit
	OutcomeResized
)

// Event is emitted by the engine after a keystroke has been applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of handling one key event.
type Result struct {
	Outcome Outcome
	Events  []Event
}

// EventHandler receives engine events of one type ("*" for all).
type EventHandler struct {
	EventType string
	Handle    func(Event)
}

// Colors maps styles to terminal colors: ANSI palette numbers ("34")
// or hex ("#ff8800"). Missing entries fall back to defaults.
type Colors struct {
	Correct   string
	Incorrect string
	Highlight string
	Status    string
}

// Settings holds the player-facing configuration loaded from Lua.
type Settings struct {
	Name     string
	Sound    bool
	MaxInput int      // 0 = entry region width
	QuitKeys []string // key names as bubbletea reports them ("ctrl+c", "esc")
	Colors   Colors
}
