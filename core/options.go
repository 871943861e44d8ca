package orchestration

import (
	"context"

	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/memory"
)

// DefaultWakeAliases are the phrases speech recognition tends to make of
// the assistant's name.
var DefaultWakeAliases = []string{
	"aeris", "aries", "air is", "eris", "iris", "arrow",
	"harris", "heiress", "errors", "the heiress", "eras",
}

const DefaultHistoryLines = 6

type ControllerOption func(*TurnController)

type Classifier interface {
	Classify(ctx context.Context, utterance string, memoryContext memory.Context) (*intents.ClassifiedIntent, error)
}

// AlarmScheduler creates alarms from requests like "wake me up at 7".
type AlarmScheduler interface {
	Create(ctx context.Context, text string) (reply string, scheduled bool)
}

// FastPath answers fixed commands without asking the classifier.
type FastPath interface {
	HandleUtterance(ctx context.Context, utterance string) (reply string, handled bool)
}

func WithSpeech(speech SpeechCapability) ControllerOption {
	return func(c *TurnController) { c.speech = speech }
}

func WithWakeAliases(aliases ...string) ControllerOption {
	return func(c *TurnController) {
		if len(aliases) > 0 {
			c.wakeAliases = aliases
		}
	}
}

func WithRouter(router *intents.Router) ControllerOption {
	return func(c *TurnController) { c.router = router }
}

func WithSession(session *memory.Session) ControllerOption {
	return func(c *TurnController) { c.session = session }
}

func WithFactStore(facts memory.FactStore) ControllerOption {
	return func(c *TurnController) { c.facts = facts }
}

func WithClassifier(classifier Classifier) ControllerOption {
	return func(c *TurnController) { c.classifier = classifier }
}

func WithAlarms(alarms AlarmScheduler) ControllerOption {
	return func(c *TurnController) { c.alarms = alarms }
}

// WithAircraftFastPath answers aircraft questions before classification.
func WithAircraftFastPath(fastPath FastPath) ControllerOption {
	return func(c *TurnController) { c.aircraft = fastPath }
}

func WithRenderer(renderer Renderer) ControllerOption {
	return func(c *TurnController) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

func WithEventListener(listener EventListener) ControllerOption {
	return func(c *TurnController) {
		if listener != nil {
			c.emitter = append(c.emitter, listener)
		}
	}
}

// WithHistoryLines sets how many recent conversation lines the classifier
// sees.
func WithHistoryLines(n int) ControllerOption {
	return func(c *TurnController) {
		if n >= 0 {
			c.historyLines = n
		}
	}
}
