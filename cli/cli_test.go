package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nathoo/racer/engine"
	"github.com/nathoo/racer/types"
)

func newTestCLI(t *testing.T, text, input string, script bool) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := &CLI{
		Engine: engine.New(text, engine.WithName("ann")),
		In:     strings.NewReader(input),
		Out:    &out,
		Height: 9,
		Width:  40,
		Script: script,
	}
	return c, &out
}

func TestCLI_RawInputFinishes(t *testing.T) {
	c, out := newTestCLI(t, "the quick fox ", "the quick fox ", false)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "[finished: 3 words") {
		t.Errorf("expected finished summary, got:\n%s", output)
	}
	if !strings.Contains(output, "ann | words 3/3") {
		t.Errorf("expected final track line, got:\n%s", output)
	}
}

func TestCLI_RawBackspaceAndQuit(t *testing.T) {
	c, out := newTestCLI(t, "the quick fox ", "thx\x7fe \x03quick ", false)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Engine.State.WordOffset != 4 {
		t.Errorf("WordOffset = %d, want 4 (keys after quit ignored)", c.Engine.State.WordOffset)
	}
	if !strings.Contains(out.String(), "[unfinished: 1 words") {
		t.Errorf("expected unfinished summary, got:\n%s", out.String())
	}
}

func TestCLI_ScriptWithCommentsAndEcho(t *testing.T) {
	script := "# warm up\nthe \nquicc\\bk \n"
	c, out := newTestCLI(t, "the quick fox ", script, true)
	c.EchoInput = true
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	output := out.String()
	if strings.Contains(output, "warm up") {
		t.Error("comment line should not be echoed")
	}
	if !strings.Contains(output, "> the ") || !strings.Contains(output, `> quicc\bk `) {
		t.Errorf("expected echoed script lines, got:\n%s", output)
	}
	if c.Engine.State.WordOffset != 10 {
		t.Errorf("WordOffset = %d, want 10", c.Engine.State.WordOffset)
	}
	// the unfinished entry line shows nothing typed for "fox"
	if !strings.Contains(output, "the quick fox") {
		t.Errorf("expected prompt in final frame, got:\n%s", output)
	}
}

func TestCLI_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newTestCLI(t, "the quick fox ", "the ", false)
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run err = %v, want context.Canceled", err)
	}
}

func TestKeyReader_Raw(t *testing.T) {
	k := NewKeyReader(strings.NewReader("a \b\x7f\x1b"))
	want := []types.KeyEvent{
		{Kind: types.KeyRune, Rune: 'a'},
		{Kind: types.KeyRune, Rune: ' '},
		{Kind: types.KeyBackspace},
		{Kind: types.KeyBackspace},
		{Kind: types.KeyQuit},
	}
	for i, w := range want {
		got, err := k.ReadKey(context.Background())
		if err != nil {
			t.Fatalf("key %d: %v", i, err)
		}
		if got != w {
			t.Errorf("key %d = %+v, want %+v", i, got, w)
		}
	}
	if _, err := k.ReadKey(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestParseScriptLine(t *testing.T) {
	got := parseScriptLine(`ab\b\\\q`)
	want := []types.KeyEvent{
		{Kind: types.KeyRune, Rune: 'a'},
		{Kind: types.KeyRune, Rune: 'b'},
		{Kind: types.KeyBackspace},
		{Kind: types.KeyRune, Rune: '\\'},
		{Kind: types.KeyQuit},
	}
	if len(got) != len(want) {
		t.Fatalf("parseScriptLine = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScriptReader_SkipsEmptyLines(t *testing.T) {
	k := NewScriptReader(strings.NewReader("\n\nx"), nil)
	got, err := k.ReadKey(context.Background())
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if got.Kind != types.KeyRune || got.Rune != 'x' {
		t.Errorf("ReadKey() = %+v, want rune 'x'", got)
	}
}

func TestTracer(t *testing.T) {
	var out bytes.Buffer
	e := engine.New("ab ", engine.WithHandlers(Tracer(&out)))
	c := &CLI{Engine: e, In: strings.NewReader("ab "), Out: io.Discard, Height: 9, Width: 20}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"[trace] char_correct", "[trace] word_advanced", "[trace] text_finished"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("trace missing %q:\n%s", want, out.String())
		}
	}
}
