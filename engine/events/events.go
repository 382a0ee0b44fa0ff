// Package events implements single-pass dispatch of engine events to
// subscribers. Handlers observe events; they never feed back into the engine.
package events

import "github.com/nathoo/racer/types"

// Event types emitted by the engine.
const (
	CharCorrect   = "char_correct"
	CharIncorrect = "char_incorrect"
	Backspace     = "backspace"
	WordAdvanced  = "word_advanced"
	TextFinished  = "text_finished"

	// Any subscribes a handler to every event type.
	Any = "*"
)

// Dispatch runs handlers against the emitted events in a single pass:
// handlers are called once per matching event, in registration order.
// Returns the number of handler invocations.
func Dispatch(evs []types.Event, handlers []types.EventHandler) int {
	calls := 0
	for _, event := range evs {
		for _, handler := range handlers {
			if handler.Handle == nil {
				continue
			}
			if handler.EventType != Any && handler.EventType != event.Type {
				continue
			}
			handler.Handle(event)
			calls++
		}
	}
	return calls
}
