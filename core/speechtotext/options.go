package speechtotext

import "github.com/koscakluka/aeris/core/audio"

// TranscriptionOptions selects which results a transcription reports.
// Clients only request the features whose callbacks are set.
type TranscriptionOptions struct {
	// PartialInterimTranscriptionCallback gets each interim segment alone.
	PartialInterimTranscriptionCallback func(transcript string)
	// InterimTranscriptionCallback gets the utterance recognized so far.
	InterimTranscriptionCallback func(transcript string)
	// PartialTranscriptionCallback gets each finalized segment.
	PartialTranscriptionCallback func(transcript string)
	// TranscriptionCallback gets the whole utterance once speech ends.
	TranscriptionCallback func(transcript string)

	SpeechStartedCallback func()
	SpeechEndedCallback   func()

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func WithTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.TranscriptionCallback = callback
	}
}

func WithInterimTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.InterimTranscriptionCallback = callback
	}
}

// WithEncodingInfo describes the audio that will be sent for transcription.
func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
