package deepgram

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/koscakluka/aeris/core/texttospeech"
)

// newSpeakServer imitates the speak endpoint: every Speak message is
// answered with a chunk of audio and every Flush with a Flushed message.
func newSpeakServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()

	var mu sync.Mutex
	received := []string{}
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "token key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var msg websocketMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			mu.Lock()
			received = append(received, msg.Type+":"+msg.Text)
			mu.Unlock()

			switch msg.Type {
			case "Speak":
				_ = conn.WriteMessage(websocket.BinaryMessage, []byte(msg.Text))
			case "Flush":
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"Flushed","sequence_id":0}`))
			case "Close":
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return server, &received
}

func newTestClient(t *testing.T, server *httptest.Server) *TextToSpeechClient {
	t.Helper()
	client, err := NewTextToSpeechClient("key", WithURL("ws"+strings.TrimPrefix(server.URL, "http")+"/v1/speak"))
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}
	return client
}

func TestSpeechGeneratorSpeaksSegmentsInOrder(t *testing.T) {
	server, _ := newSpeakServer(t)
	client := newTestClient(t, server)

	var mu sync.Mutex
	audioChunks := []string{}
	marks := []string{}
	ended := make(chan texttospeech.SpeechEndedReport, 1)

	generator, err := client.NewSpeechGeneratorV0(t.Context(),
		texttospeech.WithSpeechAudioCallback(func(b []byte) {
			mu.Lock()
			defer mu.Unlock()
			audioChunks = append(audioChunks, string(b))
		}),
		texttospeech.WithSpeechMarkCallback(func(text string) {
			mu.Lock()
			defer mu.Unlock()
			marks = append(marks, text)
		}),
		texttospeech.WithSpeechEndedCallbackV0(func(report texttospeech.SpeechEndedReport) { ended <- report }),
	)
	if err != nil {
		t.Fatalf("unexpected generator error: %v", err)
	}

	if err := generator.SendText("Showing the weather"); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	if err := generator.Mark(); err != nil {
		t.Fatalf("unexpected mark error: %v", err)
	}
	if err := generator.SendText(" for Paris."); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	if err := generator.EndOfText(); err != nil {
		t.Fatalf("unexpected end of text error: %v", err)
	}

	select {
	case report := <-ended:
		if report.Text != "Showing the weather for Paris." {
			t.Fatalf("unexpected report text %q", report.Text)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for speech to end")
	}

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(audioChunks, "") != "Showing the weather for Paris." {
		t.Fatalf("unexpected audio %v", audioChunks)
	}
	if len(marks) != 2 || marks[0] != "Showing the weather" || marks[1] != " for Paris." {
		t.Fatalf("unexpected marks %v", marks)
	}

	if err := generator.SendText("more"); err == nil {
		t.Fatalf("expected send after end to fail")
	}
}

func TestSpeechGeneratorCancelIsIdempotent(t *testing.T) {
	server, _ := newSpeakServer(t)
	client := newTestClient(t, server)

	generator, err := client.NewSpeechGeneratorV0(t.Context())
	if err != nil {
		t.Fatalf("unexpected generator error: %v", err)
	}
	if err := generator.SendText("Sir, radar scan complete."); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	if err := generator.Cancel(); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}
	if err := generator.Cancel(); err != nil {
		t.Fatalf("expected repeated cancel to be ignored, got %v", err)
	}
	if err := generator.Close(); err != nil {
		t.Fatalf("expected close after cancel to be ignored, got %v", err)
	}
	if err := generator.SendText("again"); err == nil {
		t.Fatalf("expected send after cancel to fail")
	}
}

func TestEndOfTextWithoutTextEndsImmediately(t *testing.T) {
	server, _ := newSpeakServer(t)
	client := newTestClient(t, server)

	ended := make(chan struct{}, 1)
	generator, err := client.NewSpeechGeneratorV0(t.Context(),
		texttospeech.WithSpeechEndedCallbackV0(func(texttospeech.SpeechEndedReport) { ended <- struct{}{} }))
	if err != nil {
		t.Fatalf("unexpected generator error: %v", err)
	}
	if err := generator.EndOfText(); err != nil {
		t.Fatalf("unexpected end of text error: %v", err)
	}

	select {
	case <-ended:
	default:
		t.Fatalf("expected speech to end synchronously")
	}
}

func TestNewTextToSpeechClientValidation(t *testing.T) {
	if _, err := NewTextToSpeechClient("key", WithVoice("robot")); err == nil {
		t.Fatalf("expected invalid voice error")
	}

	client, err := NewTextToSpeechClient("")
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}
	if client.Voice() != defaultVoice {
		t.Fatalf("expected default voice, got %s", client.Voice())
	}
	if _, err := client.NewSpeechGeneratorV0(t.Context()); err != ErrMissingAPIKey {
		t.Fatalf("expected missing api key error, got %v", err)
	}
}
