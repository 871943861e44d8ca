// Package deepgram synthesizes speech with the Deepgram streaming speak API.
package deepgram

import (
	"errors"
	"fmt"
	"slices"

	"github.com/koscakluka/aeris/core/audio"
)

const defaultURL = "wss://api.deepgram.com/v1/speak"

var ErrMissingAPIKey = errors.New("deepgram api key not configured")

type TextToSpeechClient struct {
	apiKey       string
	voice        Voice
	url          string
	encodingInfo audio.EncodingInfo
}

type ClientOption func(*TextToSpeechClient)

func WithVoice(voice Voice) ClientOption {
	return func(c *TextToSpeechClient) {
		if voice != "" {
			c.voice = voice
		}
	}
}

// WithURL overrides the speak endpoint.
func WithURL(url string) ClientOption {
	return func(c *TextToSpeechClient) {
		c.url = url
	}
}

// WithEncodingInfo sets the default format of generated audio, usually the
// format of the audio output.
func WithEncodingInfo(encodingInfo audio.EncodingInfo) ClientOption {
	return func(c *TextToSpeechClient) {
		if !encodingInfo.IsZero() {
			c.encodingInfo = encodingInfo
		}
	}
}

func NewTextToSpeechClient(apiKey string, opts ...ClientOption) (*TextToSpeechClient, error) {
	client := &TextToSpeechClient{
		apiKey:       apiKey,
		voice:        defaultVoice,
		url:          defaultURL,
		encodingInfo: audio.GetDefaultEncodingInfo(),
	}
	for _, opt := range opts {
		opt(client)
	}

	if !slices.Contains(GetAvailableVoices(), client.voice) {
		return nil, fmt.Errorf("invalid voice %q", client.voice)
	}

	return client, nil
}

func (c *TextToSpeechClient) Voice() Voice {
	return c.voice
}
