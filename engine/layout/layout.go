// Package layout computes word-wrapped line tables over a fixed text and
// maps text offsets back to display positions.
package layout

import (
	"errors"
	"sort"
)

var (
	// ErrInvalidWidth is returned by Wrap for a width below 1.
	ErrInvalidWidth = errors.New("wrap width must be positive")

	// ErrOffsetOutOfRange is returned by Locate for an offset outside the text.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrWrapOverflow marks a line that had no space to break on and was
	// hard-broken at the width instead.
	ErrWrapOverflow = errors.New("no space within wrap width")
)

// Table holds the start offset of every wrapped line followed by a
// sentinel equal to the text length.
type Table struct {
	starts []int
	hard   []int // line indices that ended in a hard break
}

// Lines returns the number of display lines.
func (t Table) Lines() int {
	if len(t.starts) == 0 {
		return 0
	}
	return len(t.starts) - 1
}

// Len returns the sentinel, i.e. the length of the wrapped text.
func (t Table) Len() int {
	if len(t.starts) == 0 {
		return 0
	}
	return t.starts[len(t.starts)-1]
}

// Line returns the [start, end) span of line i.
func (t Table) Line(i int) (start, end int) {
	return t.starts[i], t.starts[i+1]
}

// Starts returns a copy of the line starts including the sentinel.
func (t Table) Starts() []int {
	out := make([]int, len(t.starts))
	copy(out, t.starts)
	return out
}

// HardBreaks returns the indices of lines that were broken mid-word.
func (t Table) HardBreaks() []int {
	return t.hard
}

// Wrap splits text into lines no wider than width, breaking after spaces.
// Wrapping stops once more than height lines are recorded; height <= 0
// means no limit. The unwrapped tail becomes the last line.
//
// A line with no space in its first width characters is hard-broken at
// width and recorded in HardBreaks.
func Wrap(text string, width, height int) (Table, error) {
	if width <= 0 {
		return Table{}, ErrInvalidWidth
	}

	n := len(text)
	t := Table{starts: make([]int, 0, n/width+2)}
	offset := 0

	for n-offset >= width && (height <= 0 || len(t.starts) <= height) {
		// rule: last character in the line must be a space
		last := offset + width - 1
		for last >= offset && text[last] != ' ' {
			last--
		}
		t.starts = append(t.starts, offset)
		if last < offset {
			t.hard = append(t.hard, len(t.starts)-1)
			offset += width
		} else {
			offset = last + 1
		}
	}

	if offset < n || len(t.starts) == 0 {
		t.starts = append(t.starts, offset)
	}
	t.starts = append(t.starts, n)
	return t, nil
}

// Locate returns the display line and column of a text offset.
func Locate(t Table, offset int) (line, col int, err error) {
	if len(t.starts) == 0 || offset < 0 || offset > t.Len() {
		return 0, 0, ErrOffsetOutOfRange
	}
	lines := t.starts[:len(t.starts)-1]
	// first line starting after offset, minus one
	line = sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return line, offset - lines[line], nil
}

// WordLength counts the characters from offset up to the next space or
// the end of text. It is zero when offset is a space or out of range.
func WordLength(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	n := 0
	for offset+n < len(text) && text[offset+n] != ' ' {
		n++
	}
	return n
}
