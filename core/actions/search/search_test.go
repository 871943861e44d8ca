package search

import (
	"context"
	"testing"

	"github.com/koscakluka/aeris/core/actions/browser"
	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/memory"
)

func TestHandlerSearches(t *testing.T) {
	var opened string
	handler := &Handler{Opener: browser.OpenerFunc(func(_ context.Context, url string) error {
		opened = url
		return nil
	})}
	session := memory.NewSession()

	got, err := handler.Handle(context.Background(), intents.Request{
		Parameters: intents.Parameters{"query": "golang generics"},
		Memory:     session,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Searching the web for golang generics, sir." {
		t.Fatalf("unexpected reply %q", got)
	}
	if opened != "https://www.google.com/search?q=golang+generics" {
		t.Fatalf("unexpected url %q", opened)
	}
	if search, ok := session.LastSearch(); !ok || search.Response != got {
		t.Fatalf("expected search to be recorded, got %+v", search)
	}
}

func TestHandlerAsksForQuery(t *testing.T) {
	handler := &Handler{Opener: browser.OpenerFunc(func(context.Context, string) error { return nil })}

	got, err := handler.Handle(context.Background(), intents.Request{Parameters: intents.Parameters{}})
	if err != nil || got != "Sir, what should I search for?" {
		t.Fatalf("unexpected reply %q (%v)", got, err)
	}
}
