// Package stats tracks typing speed and accuracy for one session.
package stats

import "time"

// Tracker accumulates keystroke and word counts. The clock starts on the
// first recorded keystroke.
type Tracker struct {
	now     func() time.Time
	start   time.Time
	end     time.Time
	correct int
	wrong   int
	words   int
	chars   int // characters of completed words, spaces included
}

// New creates a tracker using now as its clock (time.Now if nil).
func New(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now}
}

// Keystroke records one typed character.
func (t *Tracker) Keystroke(correct bool) {
	if t.start.IsZero() {
		t.start = t.now()
	}
	if correct {
		t.correct++
	} else {
		t.wrong++
	}
}

// Word records a completed word of n characters plus its separator.
func (t *Tracker) Word(n int) {
	t.words++
	t.chars += n + 1
}

// Stop freezes the clock.
func (t *Tracker) Stop() {
	if t.end.IsZero() && !t.start.IsZero() {
		t.end = t.now()
	}
}

// Words returns the number of completed words.
func (t *Tracker) Words() int {
	return t.words
}

// Elapsed returns the time since the first keystroke.
func (t *Tracker) Elapsed() time.Duration {
	if t.start.IsZero() {
		return 0
	}
	if !t.end.IsZero() {
		return t.end.Sub(t.start)
	}
	return t.now().Sub(t.start)
}

// WPM returns words per minute using the five-characters-per-word
// convention over completed words.
func (t *Tracker) WPM() float64 {
	mins := t.Elapsed().Minutes()
	if mins <= 0 {
		return 0
	}
	return float64(t.chars) / 5 / mins
}

// Accuracy returns the percentage of keystrokes that matched the text.
func (t *Tracker) Accuracy() float64 {
	total := t.correct + t.wrong
	if total == 0 {
		return 100
	}
	return float64(t.correct) * 100 / float64(total)
}
