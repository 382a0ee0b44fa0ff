// Package screen partitions the terminal into the game's three regions and
// provides Grid, an in-memory double-buffered surface the front ends render.
package screen

import "github.com/nathoo/racer/types"

// Rect is a region's position and size in terminal cells.
type Rect struct {
	Row, Col   int
	Rows, Cols int
}

// Contains reports whether the region-relative cell (row, col) is inside r.
func (r Rect) Contains(row, col int) bool {
	return row >= 0 && row < r.Rows && col >= 0 && col < r.Cols
}

// Partition stacks the track, prompt and entry regions vertically: the
// first two get a third of the height each, the entry region the rest.
func Partition(height, width int) [3]Rect {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	q := height / 3
	var rects [3]Rect
	rects[types.RegionTrack] = Rect{Row: 0, Col: 0, Rows: q, Cols: width}
	rects[types.RegionPrompt] = Rect{Row: q, Col: 0, Rows: q, Cols: width}
	rects[types.RegionEntry] = Rect{Row: 2 * q, Col: 0, Rows: height - 2*q, Cols: width}
	return rects
}
