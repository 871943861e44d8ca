package deepgram

import (
	"testing"

	"github.com/koscakluka/aeris/core/audio"
	"github.com/koscakluka/aeris/core/speechtotext"
)

func results(transcript string, isFinal, speechFinal bool) []byte {
	final := "false"
	if isFinal {
		final = "true"
	}
	speech := "false"
	if speechFinal {
		speech = "true"
	}
	return []byte(`{"type":"Results","is_final":` + final + `,"speech_final":` + speech +
		`,"channel":{"alternatives":[{"transcript":"` + transcript + `","confidence":0.9}]}}`)
}

func TestProcessMessageAccumulatesUntilSpeechFinal(t *testing.T) {
	var transcripts, interims []string
	cb, _ := newCallbackConfig(speechtotext.TranscriptionOptions{
		TranscriptionCallback:        func(text string) { transcripts = append(transcripts, text) },
		InterimTranscriptionCallback: func(text string) { interims = append(interims, text) },
	})
	client := NewTranscriptionClient("key")

	client.processMessage([]byte(`{"type":"SpeechStarted","channel":[0],"timestamp":0.1}`), cb)
	client.processMessage(results("what's the", false, false), cb)
	client.processMessage(results("what's the weather", true, false), cb)
	client.processMessage(results("in Paris", false, false), cb)
	client.processMessage(results("in Paris tomorrow", true, true), cb)

	if len(transcripts) != 1 || transcripts[0] != "what's the weather in Paris tomorrow" {
		t.Fatalf("expected one full transcript, got %v", transcripts)
	}
	if len(interims) != 2 || interims[1] != "what's the weather in Paris" {
		t.Fatalf("expected interim results with accumulated prefix, got %v", interims)
	}
	if client.unendedSegment {
		t.Fatalf("expected segment to be ended")
	}
}

func TestProcessMessageUtteranceEndFlushesSegment(t *testing.T) {
	var transcripts []string
	ended := 0
	cb, _ := newCallbackConfig(speechtotext.TranscriptionOptions{
		TranscriptionCallback: func(text string) { transcripts = append(transcripts, text) },
		SpeechEndedCallback:   func() { ended++ },
	})
	client := NewTranscriptionClient("key")

	client.processMessage([]byte(`{"type":"SpeechStarted"}`), cb)
	client.processMessage(results("aeris", true, false), cb)
	client.processMessage([]byte(`{"type":"UtteranceEnd","last_word_end":1.2}`), cb)
	client.processMessage([]byte(`{"type":"UtteranceEnd","last_word_end":1.5}`), cb)

	if len(transcripts) != 1 || transcripts[0] != "aeris" {
		t.Fatalf("expected transcript on utterance end, got %v", transcripts)
	}
	if ended != 1 {
		t.Fatalf("expected a single speech end, got %d", ended)
	}
}

func TestProcessMessageIgnoresGarbage(t *testing.T) {
	cb, _ := newCallbackConfig(speechtotext.TranscriptionOptions{
		TranscriptionCallback: func(text string) { t.Fatalf("unexpected transcript %q", text) },
	})
	client := NewTranscriptionClient("key")

	client.processMessage([]byte(`not json`), cb)
	client.processMessage([]byte(`{"type":"Metadata"}`), cb)
}

func TestConvertEncoding(t *testing.T) {
	if _, err := convertEncoding(audioInfo(44100, "linear16")); err == nil {
		t.Fatalf("expected unsupported sample rate error")
	}
	if _, err := convertEncoding(audioInfo(16000, "mulaw")); err == nil {
		t.Fatalf("expected mulaw at 16kHz to be rejected")
	}
	encoding, err := convertEncoding(audioInfo(16000, "linear16"))
	if err != nil || encoding.Format != "linear16" {
		t.Fatalf("unexpected encoding %+v (%v)", encoding, err)
	}
}

func TestTranscribeWithoutAPIKey(t *testing.T) {
	if err := NewTranscriptionClient("").Transcribe(t.Context()); err != ErrMissingAPIKey {
		t.Fatalf("expected missing api key error, got %v", err)
	}
}

func audioInfo(sampleRate int, format string) audio.EncodingInfo {
	return audio.EncodingInfo{SampleRate: sampleRate, Format: audio.Format(format)}
}
