// Package orchestration runs the turns of a voice assistant: it waits for a
// wake word or push-to-talk, listens to the user, decides what they want
// and answers.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/koscakluka/aeris/core/alarms"
	"github.com/koscakluka/aeris/core/events"
	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/memory"
)

type Channel string

const (
	// ChannelVoice turns always speak their answer.
	ChannelVoice Channel = "voice"
	// ChannelText turns only render their answer.
	ChannelText Channel = "text"
)

const (
	userLinePrefix      = "You: "
	assistantLinePrefix = "AI: "
	errorPrefix         = "AI error: "
	doneMarker          = "Done"
)

var ErrClassifierNotConfigured = errors.New("classifier not configured")

type TurnController struct {
	speech      SpeechCapability
	arbiter     *WakeArbiter
	wakeAliases []string

	router     *intents.Router
	session    *memory.Session
	facts      memory.FactStore
	classifier Classifier
	alarms     AlarmScheduler
	aircraft   FastPath

	renderer     Renderer
	emitter      eventEmitter
	historyLines int

	state turnState
	// turnMu keeps voice and text turns from running at the same time.
	turnMu sync.Mutex

	baseCtx   context.Context
	baseCtxMu sync.RWMutex
}

func NewTurnController(opts ...ControllerOption) *TurnController {
	c := &TurnController{
		wakeAliases:  DefaultWakeAliases,
		renderer:     noopRenderer{},
		historyLines: DefaultHistoryLines,
		baseCtx:      context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.router == nil {
		c.router = intents.NewRouter()
	}
	if c.session == nil {
		c.session = memory.NewSession()
	}
	if c.facts == nil {
		c.facts = memory.NewInMemoryFacts(nil)
	}
	c.arbiter = NewWakeArbiter(c.speech, c.wakeAliases)

	return c
}

func (c *TurnController) State() TurnState {
	return c.state.Load()
}

func (c *TurnController) Session() *memory.Session {
	return c.session
}

// PushToTalk requests a voice turn without the wake word.
func (c *TurnController) PushToTalk() {
	c.arbiter.PushToTalk()
}

// Run serves voice turns until ctx is done.
func (c *TurnController) Run(ctx context.Context) error {
	c.baseCtxMu.Lock()
	c.baseCtx = ctx
	c.baseCtxMu.Unlock()

	for {
		trigger, err := c.arbiter.AwaitTrigger(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logger.Error("failed to await trigger", "error", err)
			continue
		}

		c.RunTurn(ctx, trigger)
	}
}

// RunTurn listens to a single utterance and answers it by voice.
func (c *TurnController) RunTurn(ctx context.Context, trigger WakeTrigger) {
	c.turnMu.Lock()
	defer c.turnMu.Unlock()

	turnID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "run turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("turn.id", turnID),
		attribute.String("turn.trigger", trigger.Kind.String()),
	)
	c.emitter.emit(events.NewTurnStarted(turnID, trigger.Kind.String()))

	if c.speech == nil {
		c.emitter.emit(events.NewTurnFailed(turnID, "capture", ErrNoSpeechCapability))
		return
	}

	c.setState(StateListening)
	utterance, err := c.speech.CaptureUtterance(ctx)
	if err != nil {
		logger.Warn("failed to capture utterance", "error", err)
		span.RecordError(err)
	}
	text := strings.TrimSpace(utterance.Text)
	if text == "" {
		c.setState(StateIdle)
		return
	}

	c.renderer.PushLogLine(userLinePrefix + text)
	c.process(ctx, turnID, text, ChannelVoice)
}

// HandleText runs a turn for typed input and returns the answer. Typed
// turns never speak.
func (c *TurnController) HandleText(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// an interrupt must reach a voice turn that is still speaking
	if isInterruptCommand(text) {
		c.Interrupt()
	}

	c.turnMu.Lock()
	defer c.turnMu.Unlock()

	turnID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "run turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("turn.id", turnID),
		attribute.String("turn.channel", string(ChannelText)),
	)
	c.emitter.emit(events.NewTurnStarted(turnID, string(ChannelText)))

	c.renderer.PushLogLine(userLinePrefix + text)
	return c.process(ctx, turnID, text, ChannelText)
}

// Interrupt stops any playback right away, even while a turn is running.
func (c *TurnController) Interrupt() {
	if c.speech != nil {
		c.speech.AbortSpeech()
	}
}

// RingAlarm announces an alarm. It bypasses the turn state machine since no
// user started it.
func (c *TurnController) RingAlarm(entry alarms.Entry) {
	c.renderer.PushLogLine(assistantLinePrefix + alarms.MessageRinging)
	c.emitter.emit(events.NewAlarmRinging(entry.ID, entry.Target))
	if c.speech == nil {
		return
	}

	c.baseCtxMu.RLock()
	ctx := c.baseCtx
	c.baseCtxMu.RUnlock()
	if err := c.speech.Speak(ctx, alarms.MessageRinging); err != nil {
		logger.Warn("failed to announce alarm", "alarm", entry.ID, "error", err)
	}
}

func (c *TurnController) process(ctx context.Context, turnID, text string, channel Channel) string {
	started := time.Now()
	c.emitter.emit(events.NewUserUtterance(text, string(channel)))

	if isInterruptCommand(text) {
		trace.SpanFromContext(ctx).AddEvent("interrupted")
		c.Interrupt()
		c.session.Reset()
		c.setState(StateIdle)
		c.emitter.emit(events.NewTurnCancelled(turnID))
		return ""
	}

	c.setState(StateProcessing)

	if c.alarms != nil && alarms.IsRequest(text) {
		reply, _ := c.alarms.Create(ctx, text)
		return c.answer(ctx, turnID, "alarm", text, reply, channel, started)
	}

	if c.aircraft != nil {
		if reply, ok := c.aircraft.HandleUtterance(ctx, text); ok {
			return c.answer(ctx, turnID, "aircraft", text, reply, channel, started)
		}
	}

	intent, err := c.classify(ctx, text)
	if err != nil {
		c.emitter.emit(events.NewTurnFailed(turnID, "classify", err))
		return c.answer(ctx, turnID, "", text, errorPrefix+err.Error(), channel, started)
	}

	if len(intent.MemoryUpdate) > 0 {
		if err := c.facts.Merge(ctx, intent.MemoryUpdate); err != nil {
			logger.Warn("failed to update long term memory", "error", err)
		}
	}
	c.session.SetLastAIResponse(intent.ResponseText)

	reply := c.router.Route(ctx, *intent, c.session)
	route := intent.Name
	if !c.router.Handles(route) {
		// unrouted names are answered verbatim, keep them out of metric labels
		route = intents.NameChat
	}
	return c.answer(ctx, turnID, route, text, reply, channel, started)
}

func (c *TurnController) classify(ctx context.Context, text string) (*intents.ClassifiedIntent, error) {
	ctx, span := tracer.Start(ctx, "classify utterance")
	defer span.End()

	if c.classifier == nil {
		return nil, ErrClassifierNotConfigured
	}

	facts, err := c.facts.Load(ctx)
	if err != nil {
		logger.Warn("failed to load long term memory", "error", err)
		facts = memory.Facts{}
	}

	intent, err := c.classifier.Classify(ctx, text, memory.BuildContext(facts, c.session, c.historyLines))
	if err != nil {
		err = fmt.Errorf("failed to classify utterance: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if intent == nil {
		intent = &intents.ClassifiedIntent{}
	}

	normalized := intent.Normalized()
	span.SetAttributes(attribute.String("intent.name", normalized.Name))
	return &normalized, nil
}

// answer records the exchange and delivers reply on channel.
func (c *TurnController) answer(ctx context.Context, turnID, route, text, reply string, channel Channel, started time.Time) string {
	reply = strings.TrimSpace(reply)
	c.session.AddLine(memory.SpeakerUser, text)
	c.session.AddLine(memory.SpeakerAssistant, reply)

	if route != "" {
		c.emitter.emit(events.NewTurnCompleted(turnID, route, time.Since(started)))
	}

	if reply == "" {
		c.renderer.PushLogLine(doneMarker)
		c.setState(StateIdle)
		return ""
	}

	if strings.HasPrefix(reply, errorPrefix) {
		c.renderer.PushLogLine(reply)
	} else {
		c.renderer.PushLogLine(assistantLinePrefix + reply)
	}
	spoken := channel == ChannelVoice && c.speech != nil
	c.emitter.emit(events.NewAssistantResponseFinal(reply, spoken))

	if spoken {
		c.setState(StateSpeaking)
		if err := c.speech.Speak(ctx, reply); err != nil {
			trace.SpanFromContext(ctx).RecordError(err)
			logger.Warn("failed to speak answer", "error", err)
		}
	}
	c.setState(StateIdle)
	return reply
}

func (c *TurnController) setState(state TurnState) {
	if previous := c.state.Swap(state); previous == state {
		return
	}
	c.renderer.SetState(state)
	c.emitter.emit(events.NewTurnStateChanged(state.String()))
}
