package deepgram

import (
	"testing"

	"github.com/koscakluka/aeris/core/speechtotext"
)

func TestNewCallbackConfigRequestsOnlyNeededFeatures(t *testing.T) {
	transcript := func(string) {}
	signal := func() {}

	testCases := []struct {
		name       string
		options    speechtotext.TranscriptionOptions
		want       websocketConfig
		accumulate bool
	}{
		{
			name: "nothing configured",
		},
		{
			name:       "final transcripts only",
			options:    speechtotext.TranscriptionOptions{TranscriptionCallback: transcript},
			want:       websocketConfig{shouldEnhanceSpeechEndingDetection: true},
			accumulate: true,
		},
		{
			name:    "speech boundaries",
			options: speechtotext.TranscriptionOptions{SpeechStartedCallback: signal, SpeechEndedCallback: signal},
			want:    websocketConfig{shouldDetectSpeechStart: true, shouldEnhanceSpeechEndingDetection: true},
		},
		{
			name:       "interim results",
			options:    speechtotext.TranscriptionOptions{InterimTranscriptionCallback: transcript},
			want:       websocketConfig{shouldRequestInterimResults: true},
			accumulate: true,
		},
		{
			name:    "partial interim results",
			options: speechtotext.TranscriptionOptions{PartialInterimTranscriptionCallback: transcript},
			want:    websocketConfig{shouldRequestInterimResults: true},
		},
		{
			name: "voice with barge-in",
			options: optionsOf(
				speechtotext.WithTranscriptionCallback(transcript),
				speechtotext.WithInterimTranscriptionCallback(transcript),
			),
			want:       websocketConfig{shouldEnhanceSpeechEndingDetection: true, shouldRequestInterimResults: true},
			accumulate: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cb, config := newCallbackConfig(tc.options)
			if config != tc.want {
				t.Fatalf("expected websocket config %+v, got %+v", tc.want, config)
			}
			if cb.accumulate != tc.accumulate {
				t.Fatalf("expected accumulate %v, got %v", tc.accumulate, cb.accumulate)
			}

			// unset callbacks must be safe to call
			cb.partialInterimTranscriptionCallback("what's the")
			cb.interimTranscriptionCallback("what's the weather")
			cb.partialTranscriptionCallback("what's the weather")
			cb.transcriptionCallback("what's the weather in Paris")
			cb.startSpeechCallback()
			cb.endSpeechCallback()
		})
	}
}

func TestNewCallbackConfigForwardsTranscripts(t *testing.T) {
	var got []string
	cb, _ := newCallbackConfig(speechtotext.TranscriptionOptions{
		TranscriptionCallback: func(transcript string) { got = append(got, transcript) },
	})

	cb.transcriptionCallback("hey aeris")
	cb.transcriptionCallback("open firefox")

	if len(got) != 2 || got[0] != "hey aeris" || got[1] != "open firefox" {
		t.Fatalf("unexpected transcripts %q", got)
	}
}

func optionsOf(opts ...speechtotext.TranscriptionOption) speechtotext.TranscriptionOptions {
	options := speechtotext.TranscriptionOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
