package stats

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTracker_NoInput(t *testing.T) {
	tr := New(nil)
	if tr.WPM() != 0 {
		t.Errorf("WPM() = %v, want 0", tr.WPM())
	}
	if tr.Accuracy() != 100 {
		t.Errorf("Accuracy() = %v, want 100", tr.Accuracy())
	}
	if tr.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0", tr.Elapsed())
	}
}

func TestTracker_WPM(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr := New(clk.now)

	tr.Keystroke(true)
	// 10 words of 4 letters + separator = 50 chars = 10 standard words
	for i := 0; i < 10; i++ {
		tr.Word(4)
	}
	clk.t = clk.t.Add(30 * time.Second)

	if got := tr.WPM(); math.Abs(got-20) > 1e-9 {
		t.Errorf("WPM() = %v, want 20", got)
	}
	if tr.Words() != 10 {
		t.Errorf("Words() = %d, want 10", tr.Words())
	}
}

func TestTracker_StopFreezesClock(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr := New(clk.now)
	tr.Keystroke(true)
	clk.t = clk.t.Add(time.Minute)
	tr.Stop()
	clk.t = clk.t.Add(time.Hour)

	if tr.Elapsed() != time.Minute {
		t.Errorf("Elapsed() = %v, want 1m", tr.Elapsed())
	}
}

func TestTracker_Accuracy(t *testing.T) {
	tr := New(nil)
	tr.Keystroke(true)
	tr.Keystroke(true)
	tr.Keystroke(true)
	tr.Keystroke(false)
	if got := tr.Accuracy(); got != 75 {
		t.Errorf("Accuracy() = %v, want 75", got)
	}
}
