package intents

import (
	"context"
	"errors"
	"testing"

	"github.com/koscakluka/aeris/core/memory"
)

func TestRouteChatReturnsResponseText(t *testing.T) {
	router := NewRouter()

	got := router.Route(context.Background(), ClassifiedIntent{ResponseText: "Hello, sir."}, memory.NewSession())
	if got != "Hello, sir." {
		t.Fatalf("expected response text verbatim, got %q", got)
	}
}

func TestRouteUnknownIntentFallsBackToResponseText(t *testing.T) {
	called := false
	router := NewRouter(WithHandler(NameSearch, HandlerFunc(func(context.Context, Request) (string, error) {
		called = true
		return "", nil
	}), ""))

	got := router.Route(context.Background(), ClassifiedIntent{Name: "tell_joke", ResponseText: "Why not."}, memory.NewSession())
	if got != "Why not." || called {
		t.Fatalf("expected fallback without handler call, got %q (called %t)", got, called)
	}
}

func TestRouteDispatchesByExactName(t *testing.T) {
	var received Request
	router := NewRouter(WithHandler(NameWeatherReport, HandlerFunc(func(_ context.Context, req Request) (string, error) {
		received = req
		return "Showing the weather for Paris, tomorrow.", nil
	}), ""))

	session := memory.NewSession()
	got := router.Route(context.Background(), ClassifiedIntent{
		Name:       " Weather_Report ",
		Parameters: Parameters{"city": "Paris", "time": "tomorrow"},
	}, session)

	if got != "Showing the weather for Paris, tomorrow." {
		t.Fatalf("unexpected reply %q", got)
	}
	if received.Parameters.String("city") != "Paris" || received.Memory != session {
		t.Fatalf("unexpected request %+v", received)
	}
}

func TestRouteConvertsErrorsToApology(t *testing.T) {
	router := NewRouter(
		WithHandler(NameSearch, HandlerFunc(func(context.Context, Request) (string, error) {
			return "", errors.New("no browser")
		}), "Sir, the search failed."),
		WithHandler(NameOpenApp, HandlerFunc(func(context.Context, Request) (string, error) {
			return "", Failed("Sir, I failed to open firefox.", errors.New("exit status 1"))
		}), ""),
	)

	if got := router.Route(context.Background(), ClassifiedIntent{Name: NameSearch}, memory.NewSession()); got != "Sir, the search failed." {
		t.Fatalf("expected registered apology, got %q", got)
	}
	if got := router.Route(context.Background(), ClassifiedIntent{Name: NameOpenApp}, memory.NewSession()); got != "Sir, I failed to open firefox." {
		t.Fatalf("expected handler apology, got %q", got)
	}
}

func TestRouteRecoversFromPanic(t *testing.T) {
	router := NewRouter(WithHandler(NameSendMessage, HandlerFunc(func(context.Context, Request) (string, error) {
		panic("boom")
	}), ""))

	got := router.Route(context.Background(), ClassifiedIntent{Name: NameSendMessage}, memory.NewSession())
	if got != "Sir, I could not complete the send_message request." {
		t.Fatalf("expected default apology, got %q", got)
	}
}

func TestParametersString(t *testing.T) {
	params := Parameters{"city": " Paris ", "count": 3, "empty": nil}

	if got := params.String("city"); got != "Paris" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
	if got := params.String("count"); got != "3" {
		t.Fatalf("expected formatted number, got %q", got)
	}
	if got := params.StringOr("empty", "today"); got != "today" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
