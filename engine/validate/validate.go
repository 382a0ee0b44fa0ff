// Package validate checks typed input against the prompt text.
// All checks fail closed when they would read past the end of the text.
package validate

// Allowed reports whether r is accepted as typed input: ASCII letters,
// a few punctuation marks, and space.
func Allowed(r rune) bool {
	switch {
	case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z':
		return true
	}
	switch r {
	case '\'', '"', '.', ',', '-', '!', '?', ' ':
		return true
	}
	return false
}

// CharMatches reports whether typed equals the text character at
// wordOffset+inputIndex.
func CharMatches(text string, wordOffset, inputIndex int, typed rune) bool {
	i := wordOffset + inputIndex
	if wordOffset < 0 || inputIndex < 0 || i >= len(text) {
		return false
	}
	return rune(text[i]) == typed
}

// IsPrefixMatch reports whether input equals the len(input) characters of
// text starting at wordOffset. Empty input always matches.
func IsPrefixMatch(text string, wordOffset int, input []rune) bool {
	if len(input) == 0 {
		return true
	}
	if wordOffset < 0 || wordOffset+len(input) > len(text) {
		return false
	}
	for i, r := range input {
		if rune(text[wordOffset+i]) != r {
			return false
		}
	}
	return true
}

// WordComplete reports whether input is exactly the word starting at
// wordOffset, i.e. a prefix match that reaches the next space or the end
// of text.
func WordComplete(text string, wordOffset int, input []rune) bool {
	if !IsPrefixMatch(text, wordOffset, input) {
		return false
	}
	end := wordOffset + len(input)
	return end == len(text) || text[end] == ' '
}
