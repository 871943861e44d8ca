package orchestration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/koscakluka/aeris/core/audio"
	"github.com/koscakluka/aeris/core/speechtotext"
	"github.com/koscakluka/aeris/core/texttospeech"
)

type Utterance struct {
	Text       string
	CapturedAt time.Time
}

// SpeechCapability is everything the turn controller needs to hear and
// talk.
type SpeechCapability interface {
	// AwaitWakeWord blocks until a recognized phrase contains one of
	// aliases or ctx is done.
	AwaitWakeWord(ctx context.Context, aliases []string) (bool, error)
	// CaptureUtterance returns the next recognized phrase. An empty text
	// means nothing was said.
	CaptureUtterance(ctx context.Context) (Utterance, error)
	// Speak blocks until text has been played or playback was aborted.
	Speak(ctx context.Context, text string) error
	// AbortSpeech stops any playback and returns once it has stopped. It is
	// a no-op when nothing plays.
	AbortSpeech()
}

type SpeechToText interface {
	Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	SendAudio(audio []byte) error
}

type TextToSpeech interface {
	NewSpeechGeneratorV0(ctx context.Context, opts ...texttospeech.TextToSpeechOption) (texttospeech.SpeechGeneratorV0, error)
}

type AudioInput interface {
	EncodingInfo() audio.EncodingInfo
	Stream(ctx context.Context, onAudio func(audio []byte)) error
}

type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer()
	Mark(name string, callback func(string)) error
}

const (
	DefaultCaptureTimeout = 8 * time.Second
	transcriptBacklog     = 8
)

var (
	ErrVoiceNotStarted     = errors.New("voice not started")
	ErrNoSpeechCapability  = errors.New("speech capability not configured")
	errTranscriptionFailed = errors.New("transcription stopped")
)

// Voice is the default SpeechCapability: microphone audio is transcribed
// by a streaming speech to text client and answers are synthesized into the
// audio output.
type Voice struct {
	stt    SpeechToText
	tts    TextToSpeech
	input  AudioInput
	output AudioOutput

	captureTimeout time.Duration
	onAudioLevel   func(float64)

	transcripts chan Utterance
	started     chan struct{}
	startOnce   sync.Once
	stopped     chan struct{}

	captureMu sync.Mutex
	speakMu   sync.Mutex

	playbackMu sync.Mutex
	playback   *playback
}

type playback struct {
	abort     chan struct{}
	abortOnce sync.Once
	done      chan struct{}
}

type VoiceOption func(*Voice)

// WithCaptureTimeout bounds how long CaptureUtterance waits for speech.
func WithCaptureTimeout(timeout time.Duration) VoiceOption {
	return func(v *Voice) {
		if timeout > 0 {
			v.captureTimeout = timeout
		}
	}
}

func WithAudioLevelCallback(callback func(level float64)) VoiceOption {
	return func(v *Voice) { v.onAudioLevel = callback }
}

func NewVoice(stt SpeechToText, tts TextToSpeech, input AudioInput, output AudioOutput, opts ...VoiceOption) *Voice {
	v := &Voice{
		stt:            stt,
		tts:            tts,
		input:          input,
		output:         output,
		captureTimeout: DefaultCaptureTimeout,
		onAudioLevel:   func(float64) {},
		transcripts:    make(chan Utterance, transcriptBacklog),
		started:        make(chan struct{}),
		stopped:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Start opens the transcription stream and begins streaming microphone
// audio into it until ctx is done.
func (v *Voice) Start(ctx context.Context) error {
	if v.stt == nil || v.input == nil {
		return fmt.Errorf("voice needs speech to text and audio input: %w", ErrNoSpeechCapability)
	}

	encoding := v.input.EncodingInfo()
	if err := v.stt.Transcribe(ctx,
		speechtotext.WithTranscriptionCallback(v.onTranscript),
		speechtotext.WithInterimTranscriptionCallback(v.onInterimTranscript),
		speechtotext.WithEncodingInfo(encoding),
	); err != nil {
		return fmt.Errorf("failed to start transcription: %w", err)
	}

	go func() {
		defer close(v.stopped)
		err := panicSafeNamedWorker("audio input", func(ctx context.Context) error {
			return v.input.Stream(ctx, func(frame []byte) {
				v.onAudioLevel(audio.Level(frame, encoding.Format))
				if err := v.stt.SendAudio(frame); err != nil {
					logger.Debug("failed to send audio to transcription", "error", err)
				}
			})
		})(ctx)
		if err != nil {
			logger.Error("audio input stopped", "error", err)
		}
	}()

	v.startOnce.Do(func() { close(v.started) })
	return nil
}

func (v *Voice) onTranscript(transcript string) {
	utterance := Utterance{Text: strings.TrimSpace(transcript), CapturedAt: time.Now()}
	if utterance.Text == "" {
		return
	}
	for {
		select {
		case v.transcripts <- utterance:
			return
		default:
		}
		// drop the oldest transcript nobody waited for
		select {
		case <-v.transcripts:
		default:
		}
	}
}

// onInterimTranscript stops playback as soon as an interrupt command is
// heard, without waiting for the end of the utterance.
func (v *Voice) onInterimTranscript(transcript string) {
	if !isInterruptCommand(transcript) || !v.speaking() {
		return
	}
	logger.Debug("interrupt heard during playback", "transcript", transcript)
	// the transcription reader must not block until playback stops
	go v.AbortSpeech()
}

func (v *Voice) speaking() bool {
	v.playbackMu.Lock()
	defer v.playbackMu.Unlock()
	return v.playback != nil
}

// nextTranscript returns the first transcript recognized after since.
func (v *Voice) nextTranscript(ctx context.Context, since time.Time) (Utterance, error) {
	select {
	case <-v.started:
	default:
		return Utterance{}, ErrVoiceNotStarted
	}

	for {
		select {
		case <-ctx.Done():
			return Utterance{}, ctx.Err()
		case <-v.stopped:
			return Utterance{}, errTranscriptionFailed
		case utterance := <-v.transcripts:
			if utterance.CapturedAt.Before(since) {
				continue
			}
			return utterance, nil
		}
	}
}

func (v *Voice) AwaitWakeWord(ctx context.Context, aliases []string) (bool, error) {
	since := time.Now()
	for {
		utterance, err := v.nextTranscript(ctx, since)
		if err != nil {
			return false, err
		}
		if containsAlias(utterance.Text, aliases) {
			return true, nil
		}
	}
}

func (v *Voice) CaptureUtterance(ctx context.Context) (Utterance, error) {
	v.captureMu.Lock()
	defer v.captureMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, v.captureTimeout)
	defer cancel()

	utterance, err := v.nextTranscript(ctx, time.Now())
	if errors.Is(err, context.DeadlineExceeded) {
		return Utterance{CapturedAt: time.Now()}, nil
	}
	return utterance, err
}

func (v *Voice) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if v.tts == nil || v.output == nil {
		return ErrNoSpeechCapability
	}

	v.speakMu.Lock()
	defer v.speakMu.Unlock()

	ctx, span := tracer.Start(ctx, "speak")
	defer span.End()
	span.SetAttributes(attribute.Int("speech.length", len(text)))

	current := &playback{abort: make(chan struct{}), done: make(chan struct{})}
	v.playbackMu.Lock()
	v.playback = current
	v.playbackMu.Unlock()
	defer func() {
		v.playbackMu.Lock()
		v.playback = nil
		v.playbackMu.Unlock()
		close(current.done)
	}()

	played := make(chan struct{})
	var playedOnce sync.Once
	markPlayed := func(string) { playedOnce.Do(func() { close(played) }) }
	failed := make(chan error, 1)

	generator, err := v.tts.NewSpeechGeneratorV0(ctx,
		texttospeech.WithSpeechAudioCallback(func(chunk []byte) {
			if err := v.output.SendAudio(chunk); err != nil {
				logger.Warn("failed to play speech audio", "error", err)
			}
		}),
		texttospeech.WithSpeechEndedCallbackV0(func(texttospeech.SpeechEndedReport) {
			if err := v.output.Mark("speech ended", markPlayed); err != nil {
				logger.Warn("failed to mark end of speech", "error", err)
				markPlayed("")
			}
		}),
		texttospeech.WithErrorCallback(func(err error) {
			select {
			case failed <- err:
			default:
			}
		}),
		texttospeech.WithEncodingInfo(v.output.EncodingInfo()),
	)
	if err != nil {
		err = fmt.Errorf("failed to start speech generation: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := generator.SendText(text); err != nil {
		v.stopPlayback(generator)
		err = fmt.Errorf("failed to send text to speech generation: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := generator.EndOfText(); err != nil {
		logger.Warn("failed to end speech text", "error", err)
	}

	select {
	case <-played:
		return nil
	case <-current.abort:
		v.stopPlayback(generator)
		span.SetAttributes(attribute.Bool("speech.aborted", true))
		return nil
	case err := <-failed:
		v.stopPlayback(generator)
		err = fmt.Errorf("speech generation failed: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	case <-ctx.Done():
		v.stopPlayback(generator)
		return ctx.Err()
	}
}

// stopPlayback makes sure no more audio of the current speech reaches the
// output.
func (v *Voice) stopPlayback(generator texttospeech.SpeechGeneratorV0) {
	if err := generator.Cancel(); err != nil {
		logger.Warn("failed to cancel speech generation", "error", err)
	}
	v.output.ClearBuffer()
}

func (v *Voice) AbortSpeech() {
	v.playbackMu.Lock()
	current := v.playback
	v.playbackMu.Unlock()
	if current == nil {
		return
	}

	current.abortOnce.Do(func() { close(current.abort) })
	<-current.done
}
