package screen

import (
	"testing"

	"github.com/nathoo/racer/types"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		height, width int
		track         Rect
		prompt        Rect
		entry         Rect
	}{
		{24, 80, Rect{0, 0, 8, 80}, Rect{8, 0, 8, 80}, Rect{16, 0, 8, 80}},
		{25, 80, Rect{0, 0, 8, 80}, Rect{8, 0, 8, 80}, Rect{16, 0, 9, 80}},
		{2, 10, Rect{0, 0, 0, 10}, Rect{0, 0, 0, 10}, Rect{0, 0, 2, 10}},
		{0, 0, Rect{}, Rect{}, Rect{}},
	}
	for _, tt := range tests {
		got := Partition(tt.height, tt.width)
		if got[types.RegionTrack] != tt.track || got[types.RegionPrompt] != tt.prompt || got[types.RegionEntry] != tt.entry {
			t.Errorf("Partition(%d, %d) = %+v", tt.height, tt.width, got)
		}
	}
}

func TestGrid_PaintIsBufferedUntilCommit(t *testing.T) {
	g := NewGrid(3, 5)
	g.PaintChar(types.RegionEntry, 'x', types.StyleCorrect)

	if c := g.Cell(2, 0); c.R != ' ' {
		t.Errorf("uncommitted paint visible: %q", c.R)
	}
	g.Commit()
	if c := g.Cell(2, 0); c.R != 'x' || c.Style != types.StyleCorrect {
		t.Errorf("Cell(2,0) = %+v after commit", c)
	}
}

func TestGrid_PaintWrapsAndClips(t *testing.T) {
	g := NewGrid(6, 3) // two rows per region
	for _, r := range "abcdefgh" {
		g.PaintChar(types.RegionPrompt, r, types.StyleNormal)
	}
	g.Commit()

	got := g.Text(types.RegionPrompt)
	if got[0] != "abc" || got[1] != "def" {
		t.Errorf("prompt = %q, want [abc def]", got)
	}
	if entry := g.Text(types.RegionEntry); entry[0] != "" {
		t.Errorf("paint leaked into entry region: %q", entry)
	}
}

func TestGrid_DeleteLastChar(t *testing.T) {
	g := NewGrid(3, 10)
	for _, r := range "quick" {
		g.PaintChar(types.RegionEntry, r, types.StyleNormal)
	}
	g.DeleteLastChar(types.RegionEntry)
	g.DeleteLastChar(types.RegionEntry)
	g.MoveCursor(types.RegionEntry, 0, 3)
	g.Commit()

	if got := g.Text(types.RegionEntry)[0]; got != "qui" {
		t.Errorf("entry = %q, want %q", got, "qui")
	}
	if row, col := g.Cursor(); row != 2 || col != 3 {
		t.Errorf("cursor = (%d, %d), want (2, 3)", row, col)
	}
}

func TestGrid_DeleteLastCharAtOriginIsNoop(t *testing.T) {
	g := NewGrid(3, 10)
	g.DeleteLastChar(types.RegionEntry)
	g.PaintChar(types.RegionEntry, 'a', types.StyleNormal)
	g.Commit()
	if got := g.Text(types.RegionEntry)[0]; got != "a" {
		t.Errorf("entry = %q, want %q", got, "a")
	}
}

func TestGrid_ClearHomesCursor(t *testing.T) {
	g := NewGrid(3, 10)
	for _, r := range "abc" {
		g.PaintChar(types.RegionTrack, r, types.StyleStatus)
	}
	g.Clear(types.RegionTrack)
	g.PaintChar(types.RegionTrack, 'z', types.StyleStatus)
	g.Commit()
	if got := g.Text(types.RegionTrack)[0]; got != "z" {
		t.Errorf("track = %q, want %q", got, "z")
	}
}

func TestGrid_ResizeClears(t *testing.T) {
	g := NewGrid(3, 10)
	g.PaintChar(types.RegionTrack, 'a', types.StyleNormal)
	g.Commit()
	g.Resize(6, 4)

	if h, w := g.Dimensions(); h != 6 || w != 4 {
		t.Errorf("Dimensions() = %dx%d, want 6x4", h, w)
	}
	if rows, cols := g.Size(types.RegionPrompt); rows != 2 || cols != 4 {
		t.Errorf("prompt size = %dx%d, want 2x4", rows, cols)
	}
	if c := g.Cell(0, 0); c.R != ' ' {
		t.Errorf("Cell(0,0) = %q after resize", c.R)
	}
}

func TestGrid_OutOfRangeCell(t *testing.T) {
	g := NewGrid(3, 3)
	if c := g.Cell(-1, 99); c.R != ' ' {
		t.Errorf("out of range Cell = %+v", c)
	}
	if s := g.Styles(types.RegionTrack, 5); s != nil {
		t.Errorf("out of range Styles = %v", s)
	}
}
