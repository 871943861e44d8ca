package orchestration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/memory"
)

func waitForCondition(t *testing.T, timeout time.Duration, description string, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %s", description)
}

type speechStub struct {
	mu         sync.Mutex
	utterances []string
	spoken     []string
	aborts     int

	wake    chan struct{}
	wakeErr error
}

func (s *speechStub) AwaitWakeWord(ctx context.Context, _ []string) (bool, error) {
	if s.wakeErr != nil {
		return false, s.wakeErr
	}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-s.wake:
		return true, nil
	}
}

func (s *speechStub) CaptureUtterance(context.Context) (Utterance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.utterances) == 0 {
		return Utterance{CapturedAt: time.Now()}, nil
	}
	text := s.utterances[0]
	s.utterances = s.utterances[1:]
	return Utterance{Text: text, CapturedAt: time.Now()}, nil
}

func (s *speechStub) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	return nil
}

func (s *speechStub) AbortSpeech() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aborts++
}

func (s *speechStub) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

type classifierStub struct {
	mu       sync.Mutex
	intent   intents.ClassifiedIntent
	err      error
	calls    int
	contexts []memory.Context
}

func (s *classifierStub) Classify(_ context.Context, _ string, memoryContext memory.Context) (*intents.ClassifiedIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.contexts = append(s.contexts, memoryContext)
	if s.err != nil {
		return nil, s.err
	}
	intent := s.intent
	return &intent, nil
}

func (s *classifierStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type rendererStub struct {
	mu     sync.Mutex
	states []TurnState
	lines  []string
}

func (r *rendererStub) PushLogLine(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, text)
}

func (r *rendererStub) SetState(state TurnState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *rendererStub) SetAudioLevel(float64) {}

func (r *rendererStub) States() []TurnState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TurnState(nil), r.states...)
}

func (r *rendererStub) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

type factStoreStub struct {
	memory.InMemoryFacts
	merges int
}

func (s *factStoreStub) Merge(ctx context.Context, update map[string]any) error {
	s.merges++
	return s.InMemoryFacts.Merge(ctx, update)
}
