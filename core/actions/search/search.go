// Package search runs web searches in the browser.
package search

import (
	"context"
	"fmt"

	"github.com/koscakluka/aeris/core/actions/browser"
	"github.com/koscakluka/aeris/core/intents"
)

const (
	messageSearching = "Searching the web for %s, sir."
	messageNoQuery   = "Sir, what should I search for?"
	messageNoBrowser = "Sir, I couldn't open the browser for the search."
)

// Handler serves the search intent.
type Handler struct {
	Opener browser.Opener
}

func (h *Handler) Handle(ctx context.Context, req intents.Request) (string, error) {
	query := req.Parameters.String("query")
	if query == "" {
		return messageNoQuery, nil
	}

	if err := h.Opener.OpenURL(ctx, browser.SearchURL(query)); err != nil {
		return "", intents.Failed(messageNoBrowser, err)
	}

	message := req.ResponseText
	if message == "" {
		message = fmt.Sprintf(messageSearching, query)
	}
	if req.Memory != nil {
		req.Memory.SetLastSearch(query, message)
	}
	return message, nil
}
