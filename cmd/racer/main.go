// Racer is a terminal typing-speed game.
// Usage: racer [--version] [--plain] [--script <file>] [--trace] [--sound]
//
//	[--backend bubbletea|tcell] [--config <file>] [--log <file>]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/nathoo/racer/audio"
	"github.com/nathoo/racer/cli"
	"github.com/nathoo/racer/engine"
	"github.com/nathoo/racer/loader"
	"github.com/nathoo/racer/term"
	"github.com/nathoo/racer/tui"
	"github.com/nathoo/racer/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: racer [--version] [--plain] [--script <file>] [--trace] [--sound] " +
	"[--backend bubbletea|tcell] [--config <file>] [--log <file>]\n"

// sampleText is the passage every session types.
var sampleText = strings.Repeat("the quick brown fox jumps over the lazy hare ", 12)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run plays one session and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	_ = godotenv.Load()

	plain := false
	trace := false
	sound := false
	scriptFile := ""
	backend := getEnv("RACER_BACKEND", "bubbletea")
	configFile := os.Getenv("RACER_CONFIG")
	logFile := os.Getenv("RACER_LOG")

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("racer %s (commit %s, built %s)\n", version, commit, date)
			return 0
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--sound":
			sound = true
		case "--script", "--backend", "--config", "--log":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				return 1
			}
			flag := args[i]
			i++
			switch flag {
			case "--script":
				scriptFile = args[i]
			case "--backend":
				backend = args[i]
			case "--config":
				configFile = args[i]
			case "--log":
				logFile = args[i]
			}
		default:
			fmt.Fprint(os.Stderr, usage)
			return 1
		}
	}

	if backend != "bubbletea" && backend != "tcell" {
		fmt.Fprintf(os.Stderr, "unknown backend %q\n%s", backend, usage)
		return 1
	}

	log, closeLog, err := newLogger(logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		return 1
	}
	defer closeLog()

	set, err := loader.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return 1
	}
	if sound {
		set.Sound = true
	}

	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithName(set.Name),
		engine.WithMaxInput(set.MaxInput),
	}
	if set.Sound {
		player, err := audio.New(log)
		if err != nil {
			log.Warn().Err(err).Msg("sound disabled")
		} else {
			opts = append(opts, engine.WithHandlers(player.Handlers()...))
		}
	}
	if trace {
		opts = append(opts, engine.WithHandlers(cli.Tracer(os.Stderr)))
	}
	eng := engine.New(sampleText, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("backend", backend).Bool("sound", set.Sound).Msg("starting")

	// Script mode: open file, force plain, echo key lines.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return 1
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.Script = true
		c.EchoInput = true
		return exitCode(c.Run(ctx))
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		return exitCode(cli.New(eng).Run(ctx))
	}

	if backend == "tcell" {
		return exitCode(runTcell(ctx, eng, *set))
	}
	return exitCode(tui.Run(eng, *set))
}

func runTcell(ctx context.Context, eng *engine.Engine, set types.Settings) error {
	scr, err := term.New(set)
	if err != nil {
		return err
	}
	defer scr.Close()
	return eng.Run(ctx, scr, scr)
}

// newLogger writes JSON logs to path, or discards them when path is empty.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	return zerolog.New(f).With().Timestamp().Logger(), func() { f.Close() }, nil
}

// exitCode reports err and maps it to an exit code. Interrupts are a
// normal way to leave the game.
func exitCode(err error) int {
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
