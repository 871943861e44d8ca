package intents

import (
	"context"
	"errors"
	"fmt"

	"github.com/koscakluka/aeris/core/memory"
)

// Request is everything a handler gets to act on an intent.
type Request struct {
	Intent       string
	Parameters   Parameters
	ResponseText string
	Memory       *memory.Session
}

// Handler performs the action behind an intent. The returned text is the
// reply; an empty reply keeps the assistant silent.
type Handler interface {
	Handle(ctx context.Context, req Request) (string, error)
}

type HandlerFunc func(ctx context.Context, req Request) (string, error)

func (f HandlerFunc) Handle(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// HandlerError carries the apology the user hears when a handler fails.
type HandlerError struct {
	Apology string
	Err     error
}

func (e *HandlerError) Error() string {
	if e.Err == nil {
		return e.Apology
	}
	return fmt.Sprintf("%s: %v", e.Apology, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// Failed wraps err with the apology that should be spoken for it.
func Failed(apology string, err error) error {
	return &HandlerError{Apology: apology, Err: err}
}

func apologyFor(err error, fallback string) string {
	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) && handlerErr.Apology != "" {
		return handlerErr.Apology
	}
	return fallback
}
