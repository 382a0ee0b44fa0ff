package screen

import (
	"strings"

	"github.com/nathoo/racer/types"
)

// Cell is one painted terminal cell.
type Cell struct {
	R     rune
	Style types.Style
}

var blank = Cell{R: ' '}

type cursor struct {
	row, col int
}

// Grid is an in-memory surface. Paint calls go to a back buffer and only
// become visible through Cell/Text after Commit.
type Grid struct {
	height, width int
	rects         [3]Rect
	back, front   [][]Cell
	cursors       [3]cursor
	focus         types.Region // region of the last MoveCursor
	shown         cursor       // absolute cursor at last Commit
	commits       int
}

// NewGrid creates a grid of the given size.
func NewGrid(height, width int) *Grid {
	g := &Grid{}
	g.Resize(height, width)
	return g
}

// Resize reallocates both buffers and repartitions the regions. All
// content is cleared.
func (g *Grid) Resize(height, width int) {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	g.height, g.width = height, width
	g.rects = Partition(height, width)
	g.back = newBuffer(height, width)
	g.front = newBuffer(height, width)
	g.cursors = [3]cursor{}
}

func newBuffer(height, width int) [][]Cell {
	buf := make([][]Cell, height)
	for i := range buf {
		row := make([]Cell, width)
		for j := range row {
			row[j] = blank
		}
		buf[i] = row
	}
	return buf
}

// Size returns the rows and columns of a region.
func (g *Grid) Size(r types.Region) (rows, cols int) {
	rect := g.rects[r]
	return rect.Rows, rect.Cols
}

// Rect returns the placement of a region.
func (g *Grid) Rect(r types.Region) Rect {
	return g.rects[r]
}

// Clear blanks a region and homes its cursor.
func (g *Grid) Clear(r types.Region) {
	rect := g.rects[r]
	for row := 0; row < rect.Rows; row++ {
		line := g.back[rect.Row+row]
		for col := 0; col < rect.Cols; col++ {
			line[rect.Col+col] = blank
		}
	}
	g.cursors[r] = cursor{}
}

// PaintChar writes c at the region cursor and advances it, wrapping to
// the next row at the right edge. Writes outside the region are dropped.
func (g *Grid) PaintChar(r types.Region, c rune, style types.Style) {
	rect := g.rects[r]
	cur := &g.cursors[r]
	if rect.Cols > 0 && cur.col >= rect.Cols {
		cur.row++
		cur.col = 0
	}
	if rect.Contains(cur.row, cur.col) {
		g.back[rect.Row+cur.row][rect.Col+cur.col] = Cell{R: c, Style: style}
	}
	cur.col++
}

// DeleteLastChar removes the character before the region cursor, shifting
// the rest of the row left, and moves the cursor back one cell.
func (g *Grid) DeleteLastChar(r types.Region) {
	rect := g.rects[r]
	cur := &g.cursors[r]
	if cur.col == 0 {
		if cur.row == 0 {
			return
		}
		cur.row--
		cur.col = rect.Cols
	}
	cur.col--
	if !rect.Contains(cur.row, cur.col) {
		return
	}
	line := g.back[rect.Row+cur.row][rect.Col : rect.Col+rect.Cols]
	copy(line[cur.col:], line[cur.col+1:])
	line[len(line)-1] = blank
}

// MoveCursor places the region cursor and makes r the focused region.
func (g *Grid) MoveCursor(r types.Region, row, col int) {
	g.cursors[r] = cursor{row: row, col: col}
	g.focus = r
}

// Commit publishes the back buffer.
func (g *Grid) Commit() {
	for i := range g.back {
		copy(g.front[i], g.back[i])
	}
	rect := g.rects[g.focus]
	cur := g.cursors[g.focus]
	g.shown = cursor{row: rect.Row + cur.row, col: rect.Col + cur.col}
	g.commits++
}

// Commits returns how many frames have been committed.
func (g *Grid) Commits() int {
	return g.commits
}

// Dimensions returns the grid height and width.
func (g *Grid) Dimensions() (height, width int) {
	return g.height, g.width
}

// Cell returns a committed cell in absolute coordinates.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return blank
	}
	return g.front[row][col]
}

// Cursor returns the committed cursor position in absolute coordinates.
func (g *Grid) Cursor() (row, col int) {
	return g.shown.row, g.shown.col
}

// Text returns the committed rows of a region with trailing blanks trimmed.
func (g *Grid) Text(r types.Region) []string {
	rect := g.rects[r]
	lines := make([]string, rect.Rows)
	for row := 0; row < rect.Rows; row++ {
		var sb strings.Builder
		for col := 0; col < rect.Cols; col++ {
			sb.WriteRune(g.front[rect.Row+row][rect.Col+col].R)
		}
		lines[row] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// Styles returns the committed styles of one region row.
func (g *Grid) Styles(r types.Region, row int) []types.Style {
	rect := g.rects[r]
	if row < 0 || row >= rect.Rows {
		return nil
	}
	out := make([]types.Style, rect.Cols)
	for col := range out {
		out[col] = g.front[rect.Row+row][rect.Col+col].Style
	}
	return out
}
