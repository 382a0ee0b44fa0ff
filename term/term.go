// Package term drives the game on a real terminal through tcell. Screen
// is both the engine's Surface and its blocking KeySource.
package term

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/nathoo/racer/screen"
	"github.com/nathoo/racer/types"
)

type cursor struct {
	row, col int
}

// Screen paints regions onto a tcell screen. tcell buffers SetContent
// until Show, which gives Commit its batching.
type Screen struct {
	scr     tcell.Screen
	rects   [3]screen.Rect
	cursors [3]cursor
	focus   types.Region
	styles  map[types.Style]tcell.Style
	quit    quitKeys

	once      sync.Once
	closeOnce sync.Once
	events    chan tcell.Event
	done      chan struct{}
}

// quitKeys is the set of keys that stop the game, resolved from the
// configured names ("ctrl+c", "esc", "q") to tcell key codes and runes.
type quitKeys struct {
	keys  map[tcell.Key]bool
	runes map[rune]bool
}

// keyCodes maps normalized key names to tcell key codes.
var keyCodes = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[normalizeKey(name)] = k
	}
	m["escape"] = tcell.KeyEscape
	return m
}()

// normalizeKey lowercases a key name and spells modifiers with '+', so
// tcell's "Ctrl-C" and the settings file's "ctrl+c" compare equal.
func normalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "+")
}

func newQuitKeys(names []string) quitKeys {
	q := quitKeys{keys: map[tcell.Key]bool{}, runes: map[rune]bool{}}
	for _, name := range names {
		if k, ok := keyCodes[normalizeKey(name)]; ok {
			q.keys[k] = true
			continue
		}
		if rs := []rune(name); len(rs) == 1 {
			q.runes[rs[0]] = true
		}
	}
	return q
}

func (q quitKeys) matches(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune {
		return ev.Modifiers() == tcell.ModNone && q.runes[ev.Rune()]
	}
	return q.keys[ev.Key()]
}

// New initializes the terminal. Call Close to restore it.
func New(set types.Settings) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewWithScreen(scr, set)
}

// NewWithScreen initializes scr and wraps it.
func NewWithScreen(scr tcell.Screen, set types.Settings) (*Screen, error) {
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	s := &Screen{
		scr:    scr,
		styles: styles(set.Colors),
		quit:   newQuitKeys(set.QuitKeys),
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
	}
	w, h := scr.Size()
	s.rects = screen.Partition(h, w)
	return s, nil
}

// Close restores the terminal and stops the event reader.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.scr.Fini()
	})
}

// Dimensions returns the terminal height and width.
func (s *Screen) Dimensions() (height, width int) {
	w, h := s.scr.Size()
	return h, w
}

// Resize repartitions the regions and clears the screen.
func (s *Screen) Resize(height, width int) {
	s.rects = screen.Partition(height, width)
	s.cursors = [3]cursor{}
	s.scr.Clear()
}

// Size returns the rows and columns of a region.
func (s *Screen) Size(r types.Region) (rows, cols int) {
	return s.rects[r].Rows, s.rects[r].Cols
}

// Clear blanks a region and homes its cursor.
func (s *Screen) Clear(r types.Region) {
	rect := s.rects[r]
	for row := 0; row < rect.Rows; row++ {
		for col := 0; col < rect.Cols; col++ {
			s.scr.SetContent(rect.Col+col, rect.Row+row, ' ', nil, tcell.StyleDefault)
		}
	}
	s.cursors[r] = cursor{}
}

// PaintChar writes c at the region cursor and advances it.
func (s *Screen) PaintChar(r types.Region, c rune, style types.Style) {
	rect := s.rects[r]
	cur := &s.cursors[r]
	if rect.Cols > 0 && cur.col >= rect.Cols {
		cur.row++
		cur.col = 0
	}
	if rect.Contains(cur.row, cur.col) {
		s.scr.SetContent(rect.Col+cur.col, rect.Row+cur.row, c, nil, s.styles[style])
	}
	cur.col++
}

// DeleteLastChar removes the character before the cursor and shifts the
// rest of the row left.
func (s *Screen) DeleteLastChar(r types.Region) {
	rect := s.rects[r]
	cur := &s.cursors[r]
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
	y := rect.Row + cur.row
	for col := cur.col; col < rect.Cols-1; col++ {
		mainc, combc, st, _ := s.scr.GetContent(rect.Col+col+1, y)
		s.scr.SetContent(rect.Col+col, y, mainc, combc, st)
	}
	s.scr.SetContent(rect.Col+rect.Cols-1, y, ' ', nil, tcell.StyleDefault)
}

// MoveCursor places the region cursor; the focused region owns the
// visible terminal cursor.
func (s *Screen) MoveCursor(r types.Region, row, col int) {
	s.cursors[r] = cursor{row: row, col: col}
	s.focus = r
}

// Commit shows everything painted since the last Commit.
func (s *Screen) Commit() {
	rect := s.rects[s.focus]
	cur := s.cursors[s.focus]
	s.scr.ShowCursor(rect.Col+cur.col, rect.Row+cur.row)
	s.scr.Show()
}

// ReadKey blocks for the next key or resize event.
func (s *Screen) ReadKey(ctx context.Context) (types.KeyEvent, error) {
	s.once.Do(func() {
		go func() {
			for {
				ev := s.scr.PollEvent()
				if ev == nil {
					close(s.events)
					return
				}
				select {
				case s.events <- ev:
				case <-s.done:
					return
				}
			}
		}()
	})

	for {
		select {
		case <-ctx.Done():
			return types.KeyEvent{}, ctx.Err()
		case <-s.done:
			return types.KeyEvent{}, io.EOF
		case ev, ok := <-s.events:
			if !ok {
				return types.KeyEvent{}, io.EOF
			}
			if key, ok := s.translate(ev); ok {
				return key, nil
			}
		}
	}
}

// translate maps a tcell event to a key event. Mouse, paste and other
// events are dropped.
func (s *Screen) translate(ev tcell.Event) (types.KeyEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return types.KeyEvent{Kind: types.KeyResize, Height: h, Width: w}, true
	case *tcell.EventKey:
		if s.quit.matches(ev) {
			return types.KeyEvent{Kind: types.KeyQuit}, true
		}
		switch ev.Key() {
		case tcell.KeyRune:
			return types.KeyEvent{Kind: types.KeyRune, Rune: ev.Rune()}, true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return types.KeyEvent{Kind: types.KeyBackspace}, true
		default:
			return types.KeyEvent{Kind: types.KeyOther}, true
		}
	}
	return types.KeyEvent{}, false
}

// styles builds the tcell style for every game style.
func styles(c types.Colors) map[types.Style]tcell.Style {
	base := tcell.StyleDefault
	highlight := base.Reverse(true)
	if c.Highlight != "" {
		highlight = highlight.Foreground(color(c.Highlight))
	}
	return map[types.Style]tcell.Style{
		types.StyleNormal:    base,
		types.StyleHighlight: highlight,
		types.StyleCorrect:   base.Foreground(color(c.Correct)),
		types.StyleIncorrect: base.Foreground(color(c.Incorrect)),
		types.StyleStatus:    base.Background(color(c.Status)).Foreground(tcell.ColorWhite).Bold(true),
	}
}

// color converts a palette number ("34") or hex/name ("#ff0000") to a
// tcell color. Empty means the terminal default.
func color(s string) tcell.Color {
	if s == "" {
		return tcell.ColorDefault
	}
	if n, err := strconv.Atoi(s); err == nil {
		return tcell.PaletteColor(n)
	}
	return tcell.GetColor(s)
}
