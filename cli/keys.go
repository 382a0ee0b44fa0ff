package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nathoo/racer/types"
)

// Control bytes understood in raw input.
const (
	ctrlC     = 0x03
	backspace = 0x08
	escape    = 0x1b
	del       = 0x7f
)

// KeyReader turns an io.Reader into key events.
//
// In raw mode every rune is a keystroke; backspace/DEL delete and ctrl+c
// or ESC quit. In script mode input is read line by line: lines starting
// with '#' are comments, the line break is not a keystroke, and the
// escapes \b (backspace), \q (quit) and \\ are recognized.
type KeyReader struct {
	r      *bufio.Reader
	script bool
	echo   io.Writer // script lines are echoed here when non-nil
	queue  []types.KeyEvent
}

// NewKeyReader creates a raw-mode reader.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// NewScriptReader creates a script-mode reader. echo may be nil.
func NewScriptReader(r io.Reader, echo io.Writer) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r), script: true, echo: echo}
}

// ReadKey returns the next key event or io.EOF.
func (k *KeyReader) ReadKey(ctx context.Context) (types.KeyEvent, error) {
	if err := ctx.Err(); err != nil {
		return types.KeyEvent{}, err
	}
	if !k.script {
		r, _, err := k.r.ReadRune()
		if err != nil {
			return types.KeyEvent{}, err
		}
		return rawKey(r), nil
	}

	for len(k.queue) == 0 {
		line, err := k.r.ReadString('\n')
		if line == "" && err != nil {
			return types.KeyEvent{}, err
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "#") {
			continue
		}
		if k.echo != nil {
			fmt.Fprintf(k.echo, "> %s\n", line)
		}
		k.queue = parseScriptLine(line)
	}
	ev := k.queue[0]
	k.queue = k.queue[1:]
	return ev, nil
}

func rawKey(r rune) types.KeyEvent {
	switch r {
	case backspace, del:
		return types.KeyEvent{Kind: types.KeyBackspace}
	case ctrlC, escape:
		return types.KeyEvent{Kind: types.KeyQuit}
	}
	return types.KeyEvent{Kind: types.KeyRune, Rune: r}
}

// parseScriptLine expands one script line into key events.
func parseScriptLine(line string) []types.KeyEvent {
	var evs []types.KeyEvent
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			i++
			switch runes[i] {
			case 'b':
				evs = append(evs, types.KeyEvent{Kind: types.KeyBackspace})
			case 'q':
				evs = append(evs, types.KeyEvent{Kind: types.KeyQuit})
			default:
				evs = append(evs, types.KeyEvent{Kind: types.KeyRune, Rune: runes[i]})
			}
			continue
		}
		evs = append(evs, rawKey(r))
	}
	return evs
}
