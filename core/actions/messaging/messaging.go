// Package messaging sends messages to contacts on chat platforms.
//
// The send_message intent is filled in over several turns: the handler
// keeps what it has learned in the session's slot-filling state and asks
// for the first missing parameter until receiver, message text and
// platform are all known.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/memory"
)

const (
	ParamReceiver    = "receiver"
	ParamMessageText = "message_text"
	ParamPlatform    = "platform"
)

// RequiredParameters are collected in this order.
var RequiredParameters = []string{ParamReceiver, ParamMessageText, ParamPlatform}

var questions = map[string]string{
	ParamReceiver:    "Sir, who should I send the message to?",
	ParamMessageText: "Sir, what should I say?",
	ParamPlatform:    "Sir, which platform should I use? (WhatsApp, Telegram, etc.)",
}

const (
	messageSent            = "Sir, message sent to %s via %s."
	messageFailed          = "Sir, I failed to send the message to %s."
	messageUnknownPlatform = "Sir, I can't send messages via %s. Which platform should I use?"
)

var ErrNoSessionMemory = errors.New("session memory missing")

// Question returns the clarifying question asked for a missing parameter.
func Question(param string) string {
	if question, ok := questions[param]; ok {
		return question
	}
	return fmt.Sprintf("Sir, please provide %s.", param)
}

type Platform interface {
	Send(ctx context.Context, receiver, text string) error
}

type Handler struct {
	platforms map[string]Platform
}

func NewHandler() *Handler {
	return &Handler{platforms: map[string]Platform{}}
}

// Register makes platform available under name (case-insensitive).
func (h *Handler) Register(name string, platform Platform) *Handler {
	h.platforms[strings.ToLower(strings.TrimSpace(name))] = platform
	return h
}

// Platforms lists the registered platform names.
func (h *Handler) Platforms() []string {
	return slices.Sorted(maps.Keys(h.platforms))
}

func (h *Handler) Handle(ctx context.Context, req intents.Request) (string, error) {
	ctx, span := tracer.Start(ctx, "send message")
	defer span.End()

	if req.Memory == nil {
		return "", ErrNoSessionMemory
	}

	req.Memory.UpdateSlots(func(slots *memory.SlotFilling) {
		slots.Begin(intents.NameSendMessage)
		slots.Merge(req.Parameters)
		slots.CurrentQuestion, _ = slots.FirstMissing(RequiredParameters)
	})

	slots := req.Memory.Slots()
	if slots.CurrentQuestion != "" {
		span.SetAttributes(attribute.String("message.missing", slots.CurrentQuestion))
		return Question(slots.CurrentQuestion), nil
	}

	receiver := slots.String(ParamReceiver)
	text := slots.String(ParamMessageText)
	platformName := slots.String(ParamPlatform)
	span.SetAttributes(attribute.String("message.platform", platformName))

	platform, ok := h.platforms[strings.ToLower(platformName)]
	if !ok {
		req.Memory.UpdateSlots(func(slots *memory.SlotFilling) {
			delete(slots.Parameters, ParamPlatform)
			slots.CurrentQuestion = ParamPlatform
		})
		reply := fmt.Sprintf(messageUnknownPlatform, platformName)
		if available := h.Platforms(); len(available) > 0 {
			reply += fmt.Sprintf(" (%s)", strings.Join(available, ", "))
		}
		return reply, nil
	}

	if err := platform.Send(ctx, receiver, text); err != nil {
		span.RecordError(err)
		return "", intents.Failed(
			fmt.Sprintf(messageFailed, receiver),
			fmt.Errorf("failed to send message via %s: %w", platformName, err),
		)
	}

	req.Memory.UpdateSlots(func(slots *memory.SlotFilling) { slots.Clear() })
	logger.Info("message sent", "platform", platformName, "receiver", receiver)
	return fmt.Sprintf(messageSent, receiver, platformName), nil
}
