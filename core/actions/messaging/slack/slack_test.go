package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slack-go/slack"

	"github.com/koscakluka/aeris/core/actions/messaging"
)

func TestSenderPostsToResolvedChannel(t *testing.T) {
	var channel, text string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat.postMessage" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		channel, text = r.FormValue("channel"), r.FormValue("text")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
	}))
	defer server.Close()

	sender, err := New("xoxb-token", messaging.Contacts{"team": "C123"}, slack.OptionAPIURL(server.URL+"/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sender.Send(context.Background(), "Team", "standup moved"); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	if channel != "C123" || text != "standup moved" {
		t.Fatalf("unexpected post to %q: %q", channel, text)
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New("", nil); err == nil {
		t.Fatalf("expected missing token error")
	}
}
