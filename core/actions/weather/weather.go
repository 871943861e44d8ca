// Package weather shows weather reports in the browser.
package weather

import (
	"context"
	"fmt"

	"github.com/koscakluka/aeris/core/actions/browser"
	"github.com/koscakluka/aeris/core/intents"
)

const (
	defaultTime        = "today"
	messageShowing     = "Showing the weather for %s, %s."
	messageUnknownCity = "I couldn't determine the city for the weather report."
	messageNoBrowser   = "I couldn't open the browser for the weather report."
)

// Handler serves the weather_report intent.
type Handler struct {
	Opener browser.Opener
}

func (h *Handler) Handle(ctx context.Context, req intents.Request) (string, error) {
	city := req.Parameters.String("city")
	if city == "" {
		return messageUnknownCity, nil
	}
	when := req.Parameters.StringOr("time", defaultTime)

	query := fmt.Sprintf("weather in %s %s", city, when)
	if err := h.Opener.OpenURL(ctx, browser.SearchURL(query)); err != nil {
		return "", intents.Failed(messageNoBrowser, err)
	}

	message := fmt.Sprintf(messageShowing, city, when)
	if req.Memory != nil {
		req.Memory.SetLastSearch(query, message)
	}
	return message, nil
}
