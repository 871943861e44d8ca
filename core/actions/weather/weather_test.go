package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/koscakluka/aeris/core/actions/browser"
	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/memory"
)

func TestHandlerShowsWeather(t *testing.T) {
	var opened string
	handler := &Handler{Opener: browser.OpenerFunc(func(_ context.Context, url string) error {
		opened = url
		return nil
	})}
	session := memory.NewSession()

	got, err := handler.Handle(context.Background(), intents.Request{
		Parameters: intents.Parameters{"city": "Paris", "time": "tomorrow"},
		Memory:     session,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Showing the weather for Paris, tomorrow." {
		t.Fatalf("unexpected reply %q", got)
	}
	if opened != "https://www.google.com/search?q=weather+in+Paris+tomorrow" {
		t.Fatalf("unexpected url %q", opened)
	}
	search, ok := session.LastSearch()
	if !ok || search.Query != "weather in Paris tomorrow" {
		t.Fatalf("expected search to be recorded, got %+v", search)
	}
}

func TestHandlerDefaultsToToday(t *testing.T) {
	handler := &Handler{Opener: browser.OpenerFunc(func(context.Context, string) error { return nil })}

	got, _ := handler.Handle(context.Background(), intents.Request{Parameters: intents.Parameters{"city": "Oslo"}})
	if got != "Showing the weather for Oslo, today." {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestHandlerWithoutCity(t *testing.T) {
	handler := &Handler{Opener: browser.OpenerFunc(func(context.Context, string) error {
		t.Fatalf("expected browser not to be opened")
		return nil
	})}

	got, err := handler.Handle(context.Background(), intents.Request{Parameters: intents.Parameters{}})
	if err != nil || got != "I couldn't determine the city for the weather report." {
		t.Fatalf("unexpected reply %q (%v)", got, err)
	}
}

func TestHandlerBrowserFailure(t *testing.T) {
	handler := &Handler{Opener: browser.OpenerFunc(func(context.Context, string) error { return errors.New("no display") })}

	_, err := handler.Handle(context.Background(), intents.Request{Parameters: intents.Parameters{"city": "Oslo"}})
	var handlerErr *intents.HandlerError
	if !errors.As(err, &handlerErr) || handlerErr.Apology != "I couldn't open the browser for the weather report." {
		t.Fatalf("expected browser apology, got %v", err)
	}
}
