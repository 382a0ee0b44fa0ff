// Package tui provides a Bubble Tea terminal UI for the racer game. The
// engine paints into a screen.Grid which View renders with lipgloss.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/racer/engine"
	"github.com/nathoo/racer/screen"
	"github.com/nathoo/racer/types"
)

// Model is the Bubble Tea model for the racer TUI.
type Model struct {
	engine *engine.Engine
	grid   *screen.Grid
	keys   keyMap
	styles map[types.Style]lipgloss.Style

	ready    bool
	quitting bool
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, set types.Settings) Model {
	return Model{
		engine: eng,
		grid:   screen.NewGrid(0, 0),
		keys:   newKeyMap(set.QuitKeys),
		styles: newStyles(set.Colors),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, set types.Settings) error {
	m := New(eng, set)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init has nothing to do until the first WindowSizeMsg.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages (key presses, window resize).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.engine.Resize(m.grid, msg.Height, msg.Width)
		m.ready = true

	case tea.KeyMsg:
		for _, ev := range m.keys.translate(msg) {
			if ev.Kind == types.KeyQuit {
				m.quitting = true
				return m, tea.Quit
			}
			if !m.ready {
				continue
			}
			m.engine.HandleKey(m.grid, ev)
		}
	}

	return m, nil
}

// View renders the committed grid, one styled run of cells at a time.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	height, width := m.grid.Dimensions()
	curRow, curCol := m.grid.Cursor()
	lines := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		var run []rune
		runStyle := types.StyleNormal
		flush := func() {
			if len(run) > 0 {
				sb.WriteString(m.styles[runStyle].Render(string(run)))
				run = run[:0]
			}
		}
		for col := 0; col < width; col++ {
			c := m.grid.Cell(row, col)
			if row == curRow && col == curCol {
				flush()
				sb.WriteString(styleCursor.Render(string(c.R)))
				continue
			}
			if c.Style != runStyle {
				flush()
				runStyle = c.Style
			}
			run = append(run, c.R)
		}
		flush()
		lines[row] = sb.String()
	}
	return strings.Join(lines, "\n")
}
