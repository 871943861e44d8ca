package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"

	"github.com/koscakluka/aeris/core/audio"
	"github.com/koscakluka/aeris/core/speechtotext"
	"github.com/koscakluka/aeris/internal/utils"
)

type callbacks struct {
	partialInterimTranscriptionCallback func(string)
	interimTranscriptionCallback        func(string)
	partialTranscriptionCallback        func(string)
	transcriptionCallback               func(string)
	startSpeechCallback                 func()
	endSpeechCallback                   func()

	accumulate bool
}

type websocketConfig struct {
	shouldDetectSpeechStart            bool
	shouldEnhanceSpeechEndingDetection bool
	shouldRequestInterimResults        bool
}

// newCallbackConfig fills unset callbacks with no-ops and derives which
// optional server features the configured callbacks need.
func newCallbackConfig(options speechtotext.TranscriptionOptions) (callbacks, websocketConfig) {
	noopTranscript := func(string) {}
	noop := func() {}

	cb := callbacks{
		partialInterimTranscriptionCallback: noopTranscript,
		interimTranscriptionCallback:        noopTranscript,
		partialTranscriptionCallback:        noopTranscript,
		transcriptionCallback:               noopTranscript,
		startSpeechCallback:                 noop,
		endSpeechCallback:                   noop,
		accumulate:                          options.TranscriptionCallback != nil || options.InterimTranscriptionCallback != nil,
	}
	if options.PartialInterimTranscriptionCallback != nil {
		cb.partialInterimTranscriptionCallback = options.PartialInterimTranscriptionCallback
	}
	if options.InterimTranscriptionCallback != nil {
		cb.interimTranscriptionCallback = options.InterimTranscriptionCallback
	}
	if options.PartialTranscriptionCallback != nil {
		cb.partialTranscriptionCallback = options.PartialTranscriptionCallback
	}
	if options.TranscriptionCallback != nil {
		cb.transcriptionCallback = options.TranscriptionCallback
	}
	if options.SpeechStartedCallback != nil {
		cb.startSpeechCallback = options.SpeechStartedCallback
	}
	if options.SpeechEndedCallback != nil {
		cb.endSpeechCallback = options.SpeechEndedCallback
	}

	config := websocketConfig{
		shouldDetectSpeechStart: options.SpeechStartedCallback != nil,
		shouldEnhanceSpeechEndingDetection: options.TranscriptionCallback != nil ||
			options.SpeechEndedCallback != nil,
		shouldRequestInterimResults: options.InterimTranscriptionCallback != nil ||
			options.PartialInterimTranscriptionCallback != nil,
	}
	return cb, config
}

// Transcribe opens a streaming session. Audio is fed with SendAudio and
// results arrive through the configured callbacks until ctx is done or
// Close is called.
func (s *TranscriptionClient) Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error {
	options := &speechtotext.TranscriptionOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(options)
	}

	if s.apiKey == "" {
		return ErrMissingAPIKey
	}

	encoding, err := convertEncoding(options.EncodingInfo)
	if err != nil {
		return fmt.Errorf("invalid encoding: %w", err)
	}

	cb, wsConfig := newCallbackConfig(*options)
	conn, err := s.connectWebsocket(ctx, *encoding, wsConfig)
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}

	s.connMu.Lock()
	s.conn = conn
	s.lastMsgTs = time.Now()
	s.connMu.Unlock()

	go s.readAndProcessMessages(ctx, conn, cb, options.EncodingInfo)

	return nil
}

func (s *TranscriptionClient) connectWebsocket(ctx context.Context, encoding encodingInfo, config websocketConfig) (*websocket.Conn, error) {
	listenURL, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("invalid listen url: %w", err)
	}
	queryParams := listenURL.Query()
	queryParams.Set("encoding", encoding.Format)
	queryParams.Set("sample_rate", strconv.Itoa(encoding.SampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", s.model)
	queryParams.Set("language", s.language)
	queryParams.Set("smart_format", "true")
	if config.shouldEnhanceSpeechEndingDetection {
		queryParams.Set("utterance_end_ms", "1000")
		queryParams.Set("interim_results", "true")
	} else if config.shouldRequestInterimResults {
		queryParams.Set("interim_results", "true")
	}
	queryParams.Set("endpointing", "300")
	if config.shouldDetectSpeechStart || config.shouldEnhanceSpeechEndingDetection {
		queryParams.Set("vad_events", "true")
	}

	listenURL.RawQuery = queryParams.Encode()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, listenURL.String(),
		http.Header{"Authorization": {"Token " + s.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func (s *TranscriptionClient) sendKeepAlive() {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return
	}
	if err := s.conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: "KeepAlive"}); err != nil {
		logger.Warn("failed to send keep alive to deepgram", "error", err)
	}
}

func (s *TranscriptionClient) SendAudio(audio []byte) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("transcription not started")
	}

	s.lastMsgTs = time.Now()
	if err := s.conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
		return fmt.Errorf("failed to write to deepgram client: %w", err)
	}
	return nil
}

func (s *TranscriptionClient) sendSilence(audio []byte) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return nil
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
		return fmt.Errorf("failed to write to deepgram client: %w", err)
	}
	return nil
}

func (s *TranscriptionClient) sinceLastMessage() time.Duration {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return time.Since(s.lastMsgTs)
}

// Close asks Deepgram to finish the stream; the connection closes once the
// server confirms.
func (s *TranscriptionClient) Close() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return nil
	}
	if err := s.conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		return fmt.Errorf("failed to close deepgram stream: %w", err)
	}
	return nil
}

func (s *TranscriptionClient) readAndProcessMessages(ctx context.Context, conn *websocket.Conn, cb callbacks, encoding audio.EncodingInfo) {
	silenceCtx, silenceCancel := context.WithCancel(ctx)
	defer silenceCancel()

	go s.generateSilence(silenceCtx, encoding)
	go func() {
		<-silenceCtx.Done()
		conn.Close()
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) && !errors.Is(err, net.ErrClosed) && ctx.Err() == nil {
				logger.Error("failed to read deepgram websocket message", "error", err)
			}

			s.connMu.Lock()
			if s.conn == conn {
				s.conn = nil
			}
			s.connMu.Unlock()
			return
		}
		if msgType != websocket.BinaryMessage {
			s.processMessage(msg, cb)
		}
	}
}

func (s *TranscriptionClient) processMessage(msg []byte, cb callbacks) {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		logger.Warn("failed to unmarshal deepgram message", "error", err)
		return
	}

	switch api.TypeResponse(parsedMsg.Type) {
	case api.TypeMessageResponse:
		var msgResp api.MessageResponse
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			logger.Warn("failed to unmarshal deepgram results", "error", err)
			return
		}

		transcript := ""
		if len(msgResp.Channel.Alternatives) > 0 {
			transcript = strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript)
		}

		if msgResp.IsFinal {
			if transcript != "" {
				if cb.accumulate {
					s.accumulatedTranscript = strings.TrimSpace(s.accumulatedTranscript + " " + transcript)
				}
				cb.partialTranscriptionCallback(transcript)
			}
			if msgResp.SpeechFinal {
				s.onSpeechEnded(cb)
			}
		} else if transcript != "" {
			cb.partialInterimTranscriptionCallback(transcript)
			cb.interimTranscriptionCallback(strings.TrimSpace(s.accumulatedTranscript + " " + transcript))
		}

	case api.TypeUtteranceEndResponse:
		if s.unendedSegment {
			s.onSpeechEnded(cb)
		}

	case api.TypeSpeechStartedResponse:
		s.unendedSegment = true
		cb.startSpeechCallback()
	}
}

func (s *TranscriptionClient) onSpeechEnded(cb callbacks) {
	s.unendedSegment = false
	fullTranscript := strings.TrimSpace(s.accumulatedTranscript)
	s.accumulatedTranscript = ""
	if fullTranscript != "" {
		cb.transcriptionCallback(fullTranscript)
	}
	cb.endSpeechCallback()
}

// generateSilence pads pauses in the audio with silence for a second so
// Deepgram can detect the end of speech, then falls back to keep alive
// messages.
func (s *TranscriptionClient) generateSilence(ctx context.Context, encoding audio.EncodingInfo) {
	type silenceGeneratorState string
	const (
		silenceGeneratorStateWaiting   silenceGeneratorState = "waiting"
		silenceGeneratorStateSilence   silenceGeneratorState = "silence"
		silenceGeneratorStateKeepAlive silenceGeneratorState = "keepAlive"
	)

	const chunkDuration = 50 * time.Millisecond
	ticker := time.NewTicker(chunkDuration)
	defer ticker.Stop()

	chunk := make([]byte, encoding.BytesFor(chunkDuration))
	for i := range chunk {
		chunk[i] = encoding.SilenceValue()
	}

	var state = silenceGeneratorStateWaiting
	var firstSilenceTime *time.Time
	var lastKeepAliveTime *time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			idle := s.sinceLastMessage()
			switch state {
			case silenceGeneratorStateWaiting:
				if idle > chunkDuration {
					state = silenceGeneratorStateSilence
					firstSilenceTime = utils.Ptr(time.Now())
				}

			case silenceGeneratorStateSilence:
				if idle < chunkDuration {
					state = silenceGeneratorStateWaiting
					firstSilenceTime = nil
					continue
				}
				if time.Since(*firstSilenceTime) >= time.Second {
					state = silenceGeneratorStateKeepAlive
					lastKeepAliveTime = utils.Ptr(time.Now())
					firstSilenceTime = nil
					continue
				}

				if err := s.sendSilence(chunk); err != nil {
					logger.Warn("failed to send silence", "error", err)
				}

			case silenceGeneratorStateKeepAlive:
				if idle < chunkDuration {
					state = silenceGeneratorStateWaiting
					continue
				}

				if time.Since(*lastKeepAliveTime) >= 5*time.Second {
					lastKeepAliveTime = utils.Ptr(time.Now())
					s.sendKeepAlive()
				}
			}
		}
	}
}
