// Package deepgram transcribes live audio with the Deepgram streaming API.
package deepgram

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultURL      = "wss://api.deepgram.com/v1/listen"
	defaultModel    = "nova-3"
	defaultLanguage = "en-US"
)

var ErrMissingAPIKey = errors.New("deepgram api key not configured")

type TranscriptionClient struct {
	apiKey   string
	model    string
	language string
	url      string

	conn      *websocket.Conn
	connMu    sync.Mutex
	lastMsgTs time.Time

	accumulatedTranscript string
	unendedSegment        bool
}

type ClientOption func(*TranscriptionClient)

func WithModel(model string) ClientOption {
	return func(c *TranscriptionClient) {
		if model != "" {
			c.model = model
		}
	}
}

func WithLanguage(language string) ClientOption {
	return func(c *TranscriptionClient) {
		if language != "" {
			c.language = language
		}
	}
}

// WithURL overrides the listen endpoint.
func WithURL(url string) ClientOption {
	return func(c *TranscriptionClient) {
		c.url = url
	}
}

func NewTranscriptionClient(apiKey string, opts ...ClientOption) *TranscriptionClient {
	c := &TranscriptionClient{
		apiKey:   apiKey,
		model:    defaultModel,
		language: defaultLanguage,
		url:      defaultURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
