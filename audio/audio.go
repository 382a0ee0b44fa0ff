// Package audio plays short tones as keystroke feedback. It subscribes to
// engine events and never touches game state.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/nathoo/racer/engine/events"
	"github.com/nathoo/racer/types"
)

const sampleRate = beep.SampleRate(44100)

// Player turns engine events into tones.
type Player struct {
	rate beep.SampleRate
	play func(beep.Streamer)
	log  zerolog.Logger
}

// New initializes the speaker. Failure is not fatal to the game; callers
// log the error and run without sound.
func New(log zerolog.Logger) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return newPlayer(sampleRate, func(s beep.Streamer) { speaker.Play(s) }, log), nil
}

func newPlayer(rate beep.SampleRate, play func(beep.Streamer), log zerolog.Logger) *Player {
	return &Player{rate: rate, play: play, log: log}
}

// Handlers returns the event subscriptions for the engine.
func (p *Player) Handlers() []types.EventHandler {
	return []types.EventHandler{
		{EventType: events.CharIncorrect, Handle: func(types.Event) {
			p.emit(p.tone(220, 60*time.Millisecond, -1))
		}},
		{EventType: events.WordAdvanced, Handle: func(types.Event) {
			p.emit(p.tone(880, 30*time.Millisecond, -2))
		}},
		{EventType: events.TextFinished, Handle: func(types.Event) {
			p.emit(beep.Seq(
				p.tone(660, 80*time.Millisecond, -1),
				p.tone(880, 80*time.Millisecond, -1),
				p.tone(1320, 160*time.Millisecond, -1),
			))
		}},
	}
}

// tone is a sine of freq Hz for d, attenuated by vol (base 2).
func (p *Player) tone(freq float64, d time.Duration, vol float64) beep.Streamer {
	sine, err := generators.SineTone(p.rate, freq)
	if err != nil {
		p.log.Warn().Err(err).Float64("freq", freq).Msg("tone")
		return beep.Silence(p.rate.N(d))
	}
	return &effects.Volume{
		Streamer: beep.Take(p.rate.N(d), sine),
		Base:     2,
		Volume:   vol,
	}
}

func (p *Player) emit(s beep.Streamer) {
	if p.play != nil {
		p.play(s)
	}
}
