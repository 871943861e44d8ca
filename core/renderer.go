package orchestration

import (
	"github.com/koscakluka/aeris/core/events"
)

// Renderer displays the assistant. Calls come from any goroutine and must
// not block.
type Renderer interface {
	PushLogLine(text string)
	SetState(state TurnState)
	SetAudioLevel(level float64)
}

type noopRenderer struct{}

func (noopRenderer) PushLogLine(string)    {}
func (noopRenderer) SetState(TurnState)    {}
func (noopRenderer) SetAudioLevel(float64) {}

// EventListener observes what the assistant is doing, e.g. for metrics.
type EventListener func(events.Event)

type eventEmitter []EventListener

func (e eventEmitter) emit(event events.Event) {
	for _, listener := range e {
		func() {
			defer func() {
				if recovered := recover(); recovered != nil {
					logger.Error("event listener panicked", "kind", event.Kind(), "panic", recovered)
				}
			}()
			listener(event)
		}()
	}
}
