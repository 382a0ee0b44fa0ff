// Package state holds the mutable session state of one typing game.
// The engine owns a single State and is the only writer.
package state

import "github.com/nathoo/racer/engine/layout"

// DefaultMaxInput bounds the input buffer when no entry width is known.
const DefaultMaxInput = 256

// State is the complete mutable session state.
type State struct {
	Text       string       // prompt text, read-only
	Lines      layout.Table // wrap of Text at the prompt width
	WordOffset int          // start of the word being typed
	Input      []rune       // typed characters of the current word
	Top        int          // first prompt line shown
	Finished   bool
}

// New creates a fresh session over text.
func New(text string) *State {
	return &State{
		Text:  text,
		Input: make([]rune, 0, 32),
	}
}

// CurrentWord returns the word the player must type next.
func CurrentWord(s *State) string {
	n := layout.WordLength(s.Text, s.WordOffset)
	return s.Text[s.WordOffset : s.WordOffset+n]
}

// AtEnd reports whether the word offset has reached the end of the text.
func AtEnd(s *State) bool {
	return s.WordOffset >= len(s.Text)
}

// NextWordOffset returns the offset just past the current word's
// terminating space, or the text length for the last word.
func NextWordOffset(s *State) int {
	next := s.WordOffset + layout.WordLength(s.Text, s.WordOffset) + 1
	if next > len(s.Text) {
		return len(s.Text)
	}
	return next
}

// ResetInput empties the input buffer.
func ResetInput(s *State) {
	s.Input = s.Input[:0]
}

// WordCount returns the number of words in the text.
func WordCount(text string) int {
	n := 0
	inWord := false
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}
