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
	"sync"

	"github.com/gorilla/websocket"

	"github.com/koscakluka/aeris/core/audio"
	"github.com/koscakluka/aeris/core/texttospeech"
)

type streamingRequest struct {
	ws   *websocket.Conn
	wsMu sync.Mutex

	// textBuffer holds the text between marks. Only the head segment has
	// been sent to Deepgram, the rest waits for its flush confirmation.
	textBuffer []string
	stateMu    sync.Mutex

	options texttospeech.TextToSpeechOptions

	textComplete bool
	cancelled    bool
	closed       bool

	report texttospeech.SpeechEndedReport
}

var (
	errRequestClosed    = errors.New("streaming request closed")
	errRequestCancelled = errors.New("streaming request cancelled")
	errTextCompleted    = errors.New("streaming request text already completed")
)

func (c *TextToSpeechClient) NewSpeechGeneratorV0(ctx context.Context, opts ...texttospeech.TextToSpeechOption) (texttospeech.SpeechGeneratorV0, error) {
	req := &streamingRequest{
		options: texttospeech.TextToSpeechOptions{
			SpeechAudioCallback:   func([]byte) {},
			SpeechMarkCallback:    func(string) {},
			SpeechEndedCallbackV0: func(texttospeech.SpeechEndedReport) {},
			ErrorCallback:         func(error) {},
			EncodingInfo:          c.encodingInfo,
		},
	}
	for _, opt := range opts {
		opt(&req.options)
	}

	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	var err error
	if req.ws, err = c.connectWebsocket(ctx, req.options.EncodingInfo); err != nil {
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}

	go req.processIncomingMessages(ctx)

	return req, nil
}

func (c *TextToSpeechClient) connectWebsocket(ctx context.Context, encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	speakURL, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("invalid speak url: %w", err)
	}

	urlValues := speakURL.Query()
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", string(c.voice))
	urlValues.Set("container", "none")
	speakURL.RawQuery = urlValues.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, speakURL.String(),
		http.Header{"Authorization": {"token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func (r *streamingRequest) processIncomingMessages(ctx context.Context) {
	stop := context.AfterFunc(ctx, func() { _ = r.Close() })
	defer stop()

	for {
		msgType, msg, err := r.ws.ReadMessage()
		if err != nil {
			if !r.isClosed() && !websocket.IsCloseError(err, websocket.CloseNormalClosure) && !errors.Is(err, net.ErrClosed) {
				logger.Error("deepgram speak websocket read failed", "error", err)
				r.options.ErrorCallback(err)
			}
			_ = r.Close()
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if len(msg) > 0 && !r.isClosed() {
				r.options.SpeechAudioCallback(msg)
			}
		case websocket.TextMessage:
			var parsedMsg struct {
				Type        string `json:"type"`
				Description string `json:"description"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				logger.Warn("failed to unmarshal deepgram speak message", "error", err)
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				r.onFlushed()
			case "Warning", "Error":
				logger.Warn("deepgram speak reported a problem", "type", parsedMsg.Type, "description", parsedMsg.Description)
			}
		}
	}
}

// onFlushed reports the head segment as spoken and sends the next one.
func (r *streamingRequest) onFlushed() {
	r.stateMu.Lock()
	if r.closed {
		r.stateMu.Unlock()
		return
	}

	var marked *string
	if len(r.textBuffer) > 0 {
		marked = &r.textBuffer[0]
		r.report.Text += r.textBuffer[0]
		r.textBuffer = r.textBuffer[1:]
	}

	ended := r.textComplete && r.bufferDrained()
	if !ended && len(r.textBuffer) > 0 {
		if r.textBuffer[0] != "" {
			if err := r.sendWebsocketMessage(sendTextMsg(r.textBuffer[0])); err != nil {
				logger.Warn("failed to send text to deepgram", "error", err)
			}
		}
		// the head segment is only complete if another one follows it
		if len(r.textBuffer) > 1 {
			if err := r.sendWebsocketMessage(flushMsg); err != nil {
				logger.Warn("failed to flush deepgram buffer", "error", err)
			}
		}
	}
	report := r.report
	r.stateMu.Unlock()

	if marked != nil {
		r.options.SpeechMarkCallback(*marked)
	}
	if ended {
		r.options.SpeechEndedCallbackV0(report)
		_ = r.Close()
	}
}

func (r *streamingRequest) bufferDrained() bool {
	return len(r.textBuffer) == 0 || (len(r.textBuffer) == 1 && r.textBuffer[0] == "")
}

func (r *streamingRequest) checkWritable() error {
	if r.closed {
		return errRequestClosed
	} else if r.cancelled {
		return errRequestCancelled
	} else if r.textComplete {
		return errTextCompleted
	}
	return nil
}

func (r *streamingRequest) SendText(text string) error {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	if err := r.checkWritable(); err != nil {
		return err
	}

	if len(r.textBuffer) == 0 {
		r.textBuffer = append(r.textBuffer, "")
	}

	if len(r.textBuffer) == 1 {
		if err := r.sendWebsocketMessage(sendTextMsg(text)); err != nil {
			return fmt.Errorf("failed to send websocket send text message: %w", err)
		}
	}
	r.textBuffer[len(r.textBuffer)-1] += text
	return nil
}

func (r *streamingRequest) Mark() error {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	if err := r.checkWritable(); err != nil {
		return err
	}
	return r.mark()
}

func (r *streamingRequest) mark() error {
	if len(r.textBuffer) == 0 || r.textBuffer[len(r.textBuffer)-1] == "" {
		return nil
	}

	if len(r.textBuffer) == 1 {
		if err := r.sendWebsocketMessage(flushMsg); err != nil {
			return fmt.Errorf("failed to send websocket flush message: %w", err)
		}
	}

	// NOTE: Deepgram sometimes drops text that is passed right after a flush,
	// so the next segment is only sent once the flush is confirmed.
	r.textBuffer = append(r.textBuffer, "")
	return nil
}

func (r *streamingRequest) EndOfText() error {
	r.stateMu.Lock()
	if r.closed {
		r.stateMu.Unlock()
		return errRequestClosed
	} else if r.cancelled {
		r.stateMu.Unlock()
		return errRequestCancelled
	} else if r.textComplete {
		r.stateMu.Unlock()
		return nil
	}

	r.textComplete = true
	if err := r.mark(); err != nil {
		r.stateMu.Unlock()
		return err
	}
	ended := r.bufferDrained()
	report := r.report
	r.stateMu.Unlock()

	if ended {
		r.options.SpeechEndedCallbackV0(report)
		_ = r.Close()
	}
	return nil
}

func (r *streamingRequest) Cancel() error {
	r.stateMu.Lock()
	if r.closed || r.cancelled {
		r.stateMu.Unlock()
		return nil
	}
	r.cancelled = true
	r.textBuffer = nil
	r.stateMu.Unlock()

	clearErr := r.sendWebsocketMessage(clearMsg)
	if err := r.Close(); err != nil {
		return errors.Join(clearErr, err)
	}
	if clearErr != nil {
		return fmt.Errorf("failed to send websocket clear message: %w", clearErr)
	}
	return nil
}

func (r *streamingRequest) Close() error {
	r.stateMu.Lock()
	if r.closed {
		r.stateMu.Unlock()
		return nil
	}
	r.closed = true
	r.stateMu.Unlock()

	closeErr := r.sendWebsocketMessage(closeMsg)
	r.wsMu.Lock()
	defer r.wsMu.Unlock()
	if err := r.ws.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("failed to close websocket: %w", errors.Join(closeErr, err))
	}
	return nil
}

func (r *streamingRequest) isClosed() bool {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	return r.closed
}

type websocketMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

var (
	sendTextMsg = func(text string) websocketMessage {
		return websocketMessage{Type: "Speak", Text: text}
	}
	flushMsg = websocketMessage{Type: "Flush"}
	clearMsg = websocketMessage{Type: "Clear"}
	closeMsg = websocketMessage{Type: "Close"}
)

func (r *streamingRequest) sendWebsocketMessage(msg websocketMessage) error {
	r.wsMu.Lock()
	defer r.wsMu.Unlock()
	if r.ws == nil {
		return fmt.Errorf("websocket connection closed")
	}

	if err := r.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}
