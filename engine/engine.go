// Package engine provides the keystroke state machine that wires together
// layout, validation and statistics into a single typing session, and
// paints the session onto a Surface.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nathoo/racer/engine/events"
	"github.com/nathoo/racer/engine/layout"
	"github.com/nathoo/racer/engine/state"
	"github.com/nathoo/racer/engine/stats"
	"github.com/nathoo/racer/engine/validate"
	"github.com/nathoo/racer/types"
)

// ErrEmptyInputBackspace is logged when backspace is pressed with nothing
// typed for the current word.
var ErrEmptyInputBackspace = errors.New("backspace on empty input")

// Surface is the display the engine paints onto. Paint calls may be
// buffered until Commit.
type Surface interface {
	Resize(height, width int)
	Size(r types.Region) (rows, cols int)
	Clear(r types.Region)
	PaintChar(r types.Region, c rune, style types.Style)
	DeleteLastChar(r types.Region)
	MoveCursor(r types.Region, row, col int)
	Commit()
}

// KeySource delivers key events. ReadKey blocks until an event arrives,
// the source is exhausted (io.EOF) or ctx is done.
type KeySource interface {
	ReadKey(ctx context.Context) (types.KeyEvent, error)
}

// Engine holds the session state and the collaborators that observe it.
type Engine struct {
	State *state.State
	Stats *stats.Tracker

	name     string
	log      zerolog.Logger
	maxInput int
	handlers []types.EventHandler
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock sets the clock used for typing statistics.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Stats = stats.New(now) }
}

// WithName sets the player name shown in the track region.
func WithName(name string) Option {
	return func(e *Engine) { e.name = name }
}

// WithMaxInput caps the input buffer. Zero uses the entry region width.
func WithMaxInput(n int) Option {
	return func(e *Engine) { e.maxInput = n }
}

// WithHandlers subscribes event handlers.
func WithHandlers(hs ...types.EventHandler) Option {
	return func(e *Engine) { e.handlers = append(e.handlers, hs...) }
}

// New creates an engine over text.
func New(text string, opts ...Option) *Engine {
	e := &Engine{
		State: state.New(text),
		Stats: stats.New(nil),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if state.AtEnd(e.State) {
		e.State.Finished = true
	}
	return e
}

// Start wraps the text to the surface and paints the first frame.
func (e *Engine) Start(s Surface) {
	e.rewrap(s)
	e.paintAll(s)
	s.Commit()
}

// Resize resizes the surface, rewraps the prompt and repaints everything.
func (e *Engine) Resize(s Surface, height, width int) {
	s.Resize(height, width)
	e.log.Debug().Int("height", height).Int("width", width).Msg("resize")
	e.Start(s)
}

// HandleKey applies one key event to the session and repaints what changed.
func (e *Engine) HandleKey(s Surface, ev types.KeyEvent) types.Result {
	var result types.Result

	switch ev.Kind {
	case types.KeyQuit:
		result.Outcome = types.OutcomeQuit
		return result

	case types.KeyResize:
		e.Resize(s, ev.Height, ev.Width)
		result.Outcome = types.OutcomeResized
		return result

	case types.KeyBackspace:
		result = e.backspace(s)

	case types.KeyRune:
		if !validate.Allowed(ev.Rune) || e.State.Finished {
			return result
		}
		if ev.Rune == ' ' && validate.WordComplete(e.State.Text, e.State.WordOffset, e.State.Input) {
			result = e.advance(s)
		} else {
			result = e.addChar(s, ev.Rune)
		}

	default:
		return result
	}

	events.Dispatch(result.Events, e.handlers)
	return result
}

// Run is the blocking session loop: read a key, apply it, repeat. It
// returns nil on quit or when keys is exhausted, and ctx.Err() when ctx
// is cancelled.
func (e *Engine) Run(ctx context.Context, s Surface, keys KeySource) error {
	e.Start(s)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := keys.ReadKey(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if e.HandleKey(s, ev).Outcome == types.OutcomeQuit {
			e.log.Info().Int("words", e.Stats.Words()).Msg("quit")
			return nil
		}
	}
}

func (e *Engine) addChar(s Surface, r rune) types.Result {
	st := e.State
	if len(st.Input) >= e.inputLimit(s) {
		e.log.Debug().Int("len", len(st.Input)).Msg("input full, key ignored")
		return types.Result{}
	}

	idx := len(st.Input)
	correct := validate.CharMatches(st.Text, st.WordOffset, idx, r)
	st.Input = append(st.Input, r)
	e.Stats.Keystroke(correct)

	style, typ := types.StyleCorrect, events.CharCorrect
	if !correct {
		style, typ = types.StyleIncorrect, events.CharIncorrect
	}
	s.PaintChar(types.RegionEntry, r, style)
	e.paintTrack(s)
	e.placeCursor(s)
	s.Commit()

	return types.Result{
		Outcome: types.OutcomeCharAccepted,
		Events: []types.Event{{Type: typ, Data: map[string]any{
			"rune":  r,
			"index": idx,
		}}},
	}
}

func (e *Engine) backspace(s Surface) types.Result {
	st := e.State
	if len(st.Input) == 0 {
		e.log.Debug().Err(ErrEmptyInputBackspace).Msg("key ignored")
		return types.Result{}
	}

	st.Input = st.Input[:len(st.Input)-1]
	s.DeleteLastChar(types.RegionEntry)
	e.placeCursor(s)
	s.Commit()

	return types.Result{
		Outcome: types.OutcomeBackspaceAccepted,
		Events:  []types.Event{{Type: events.Backspace, Data: map[string]any{"len": len(st.Input)}}},
	}
}

func (e *Engine) advance(s Surface) types.Result {
	st := e.State
	word := state.CurrentWord(st)
	from := st.WordOffset

	e.paintWord(s, types.StyleNormal)
	if word != "" {
		e.Stats.Word(len(word))
	}
	st.WordOffset = state.NextWordOffset(st)
	state.ResetInput(st)
	s.Clear(types.RegionEntry)

	result := types.Result{
		Outcome: types.OutcomeWordAdvanced,
		Events: []types.Event{{Type: events.WordAdvanced, Data: map[string]any{
			"word": word,
			"from": from,
			"to":   st.WordOffset,
		}}},
	}

	if state.AtEnd(st) {
		st.Finished = true
		e.Stats.Stop()
		result.Outcome = types.OutcomeFinished
		result.Events = append(result.Events, types.Event{Type: events.TextFinished, Data: map[string]any{
			"words":    e.Stats.Words(),
			"wpm":      e.Stats.WPM(),
			"accuracy": e.Stats.Accuracy(),
		}})
		e.log.Info().
			Int("words", e.Stats.Words()).
			Float64("wpm", e.Stats.WPM()).
			Float64("accuracy", e.Stats.Accuracy()).
			Msg("text finished")
	} else if e.scroll(s) {
		e.paintPrompt(s)
	} else {
		e.paintWord(s, types.StyleHighlight)
	}

	e.paintTrack(s)
	e.placeCursor(s)
	s.Commit()
	return result
}

// inputLimit is the most characters the entry region accepts.
func (e *Engine) inputLimit(s Surface) int {
	if e.maxInput > 0 {
		return e.maxInput
	}
	if _, cols := s.Size(types.RegionEntry); cols > 1 {
		return cols - 1
	}
	return state.DefaultMaxInput
}

// rewrap recomputes the line table for the prompt region width.
func (e *Engine) rewrap(s Surface) {
	_, cols := s.Size(types.RegionPrompt)
	if cols < 1 {
		cols = 1
	}
	tbl, err := layout.Wrap(e.State.Text, cols, 0)
	if err != nil {
		e.log.Error().Err(err).Int("width", cols).Msg("wrap failed")
		return
	}
	if hb := tbl.HardBreaks(); len(hb) > 0 {
		e.log.Warn().Err(layout.ErrWrapOverflow).Ints("lines", hb).Int("width", cols).Msg("hard line breaks")
	}
	e.State.Lines = tbl
	e.State.Top = 0
	e.scroll(s)
}

// scroll moves the prompt view so the current word's line is visible.
// Reports whether the view moved.
func (e *Engine) scroll(s Surface) bool {
	rows, _ := s.Size(types.RegionPrompt)
	if rows < 1 {
		return false
	}
	line, _, err := layout.Locate(e.State.Lines, e.State.WordOffset)
	if err != nil {
		e.log.Error().Err(err).Int("offset", e.State.WordOffset).Msg("locate word")
		return false
	}
	if line >= e.State.Top && line < e.State.Top+rows {
		return false
	}
	e.State.Top = line
	return true
}

func (e *Engine) paintAll(s Surface) {
	e.paintPrompt(s)
	e.paintEntry(s)
	e.paintTrack(s)
	e.placeCursor(s)
}

// paintPrompt draws the visible prompt lines and highlights the current word.
func (e *Engine) paintPrompt(s Surface) {
	s.Clear(types.RegionPrompt)
	rows, _ := s.Size(types.RegionPrompt)
	tbl := e.State.Lines
	for i := e.State.Top; i < e.State.Top+rows && i < tbl.Lines(); i++ {
		start, end := tbl.Line(i)
		s.MoveCursor(types.RegionPrompt, i-e.State.Top, 0)
		e.paintString(s, types.RegionPrompt, e.State.Text[start:end], types.StyleNormal)
	}
	e.paintWord(s, types.StyleHighlight)
}

// paintWord repaints the current word in the prompt with style.
func (e *Engine) paintWord(s Surface, style types.Style) {
	st := e.State
	if state.AtEnd(st) {
		return
	}
	line, col, err := layout.Locate(st.Lines, st.WordOffset)
	if err != nil {
		e.log.Error().Err(err).Int("offset", st.WordOffset).Msg("locate word")
		return
	}
	rows, _ := s.Size(types.RegionPrompt)
	if line < st.Top || line >= st.Top+rows {
		return
	}
	s.MoveCursor(types.RegionPrompt, line-st.Top, col)
	e.paintString(s, types.RegionPrompt, state.CurrentWord(st), style)
}

// paintEntry redraws the typed input with per-character feedback.
func (e *Engine) paintEntry(s Surface) {
	st := e.State
	s.Clear(types.RegionEntry)
	for i, r := range st.Input {
		style := types.StyleIncorrect
		if validate.CharMatches(st.Text, st.WordOffset, i, r) {
			style = types.StyleCorrect
		}
		s.PaintChar(types.RegionEntry, r, style)
	}
}

// paintTrack draws the status line: player, progress, speed, accuracy.
func (e *Engine) paintTrack(s Surface) {
	rows, cols := s.Size(types.RegionTrack)
	if rows < 1 {
		return
	}
	s.Clear(types.RegionTrack)

	name := e.name
	if name == "" {
		name = "player"
	}
	line := fmt.Sprintf(" %s | words %d/%d | %.0f wpm | %.0f%% acc",
		name, e.Stats.Words(), state.WordCount(e.State.Text), e.Stats.WPM(), e.Stats.Accuracy())
	if e.State.Finished {
		line += " | finished"
	}
	runes := []rune(line)
	if len(runes) > cols {
		runes = runes[:cols]
	}
	line = string(runes) + strings.Repeat(" ", cols-len(runes))
	e.paintString(s, types.RegionTrack, line, types.StyleStatus)
}

// placeCursor leaves the visible cursor after the last typed character.
func (e *Engine) placeCursor(s Surface) {
	_, cols := s.Size(types.RegionEntry)
	n := len(e.State.Input)
	if cols < 1 {
		s.MoveCursor(types.RegionEntry, 0, n)
		return
	}
	s.MoveCursor(types.RegionEntry, n/cols, n%cols)
}

func (e *Engine) paintString(s Surface, r types.Region, text string, style types.Style) {
	for _, c := range text {
		s.PaintChar(r, c, style)
	}
}
