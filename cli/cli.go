// Package cli runs the game without a full-screen terminal: keystrokes
// come from any io.Reader (a pipe or a script file) and the final frame
// and statistics are printed as plain text.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nathoo/racer/engine"
	"github.com/nathoo/racer/screen"
	"github.com/nathoo/racer/types"
)

// CLI handles plain-text interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Height    int
	Width     int
	Script    bool // read In as a key script (see KeyReader)
	EchoInput bool // echo each script line (for script playback)
}

// New creates a CLI wired to the given engine, reading stdin.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
		Height: 24,
		Width:  80,
	}
}

// Run plays keys from In until they run out or a quit key is read, then
// prints the final frame and a summary.
func (c *CLI) Run(ctx context.Context) error {
	grid := screen.NewGrid(c.Height, c.Width)

	var keys engine.KeySource
	if c.Script {
		var echo io.Writer
		if c.EchoInput {
			echo = c.Out
		}
		keys = NewScriptReader(c.In, echo)
	} else {
		keys = NewKeyReader(c.In)
	}

	if err := c.Engine.Run(ctx, grid, keys); err != nil {
		return err
	}

	c.printFrame(grid)
	c.printSummary()
	return nil
}

// Tracer returns an event handler that prints every engine event to w.
func Tracer(w io.Writer) types.EventHandler {
	return types.EventHandler{
		EventType: "*",
		Handle: func(ev types.Event) {
			fmt.Fprintf(w, "[trace] %s %v\n", ev.Type, ev.Data)
		},
	}
}

func (c *CLI) printFrame(grid *screen.Grid) {
	for _, r := range []types.Region{types.RegionTrack, types.RegionPrompt, types.RegionEntry} {
		for _, line := range grid.Text(r) {
			if line != "" {
				c.printLine(line)
			}
		}
	}
}

func (c *CLI) printSummary() {
	st := c.Engine.Stats
	status := "unfinished"
	if c.Engine.State.Finished {
		status = "finished"
	}
	c.printSystem(fmt.Sprintf("%s: %d words, %.0f wpm, %.0f%% accuracy",
		status, st.Words(), st.WPM(), st.Accuracy()))
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
