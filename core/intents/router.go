package intents

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/koscakluka/aeris/core/memory"
)

const defaultApology = "Sir, I could not complete the %s request."

type route struct {
	handler Handler
	apology string
}

// Router dispatches intents by exact name. Names without a handler,
// including "chat", answer with the classifier's response text verbatim.
type Router struct {
	routes map[string]route
}

type RouterOption func(*Router)

// WithHandler registers handler for intent. Failures the handler does not
// describe with a HandlerError are answered with apology.
func WithHandler(intent string, handler Handler, apology string) RouterOption {
	return func(r *Router) {
		if apology == "" {
			apology = fmt.Sprintf(defaultApology, intent)
		}
		r.routes[intent] = route{handler: handler, apology: apology}
	}
}

func NewRouter(opts ...RouterOption) *Router {
	r := &Router{routes: map[string]route{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handles reports whether a handler is registered for intent.
func (r *Router) Handles(intent string) bool {
	_, ok := r.routes[intent]
	return ok
}

// Route runs the handler for intent and returns the text to answer with.
// It never fails: handler errors and panics become apologies.
func (r *Router) Route(ctx context.Context, intent ClassifiedIntent, session *memory.Session) (text string) {
	intent = intent.Normalized()

	ctx, span := tracer.Start(ctx, "route intent")
	defer span.End()
	span.SetAttributes(attribute.String("intent.name", intent.Name))

	rt, ok := r.routes[intent.Name]
	if !ok {
		return intent.ResponseText
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err := fmt.Errorf("%s handler panicked: %v", intent.Name, recovered)
			span.RecordError(err)
			span.SetStatus(codes.Error, "handler panicked")
			logger.Error("intent handler panicked", "intent", intent.Name, "error", err)
			text = rt.apology
		}
	}()

	text, err := rt.handler.Handle(ctx, Request{
		Intent:       intent.Name,
		Parameters:   intent.Parameters,
		ResponseText: intent.ResponseText,
		Memory:       session,
	})
	if err != nil {
		err = fmt.Errorf("%s handler failed: %w", intent.Name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		logger.Error("intent handler failed", "intent", intent.Name, "error", err)
		return apologyFor(err, rt.apology)
	}

	return text
}
