package orchestration

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// trackingSpeech counts wake word listeners that have not returned yet.
type trackingSpeech struct {
	speechStub
	active atomic.Int32
	calls  atomic.Int32
}

func (s *trackingSpeech) AwaitWakeWord(ctx context.Context, aliases []string) (bool, error) {
	s.active.Add(1)
	defer s.active.Add(-1)
	s.calls.Add(1)
	// polls in small slices like a real detector
	for {
		select {
		case <-ctx.Done():
			time.Sleep(20 * time.Millisecond)
			return false, ctx.Err()
		case <-s.wake:
			return true, nil
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func TestPushToTalkWinsAndStopsWakeListener(t *testing.T) {
	speech := &trackingSpeech{speechStub: speechStub{wake: make(chan struct{})}}
	arbiter := NewWakeArbiter(speech, DefaultWakeAliases)

	go func() {
		time.Sleep(50 * time.Millisecond)
		arbiter.PushToTalk()
	}()

	trigger, err := arbiter.AwaitTrigger(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trigger.Kind != PushToTalk {
		t.Fatalf("expected push to talk, got %s", trigger.Kind)
	}
	if active := speech.active.Load(); active != 0 {
		t.Fatalf("expected wake listener to have stopped, %d still running", active)
	}
	if arbiter.interruptWake.Load() {
		t.Fatalf("expected stale listener interrupt to be cleared")
	}

	// the next cycle must not see a leftover cancellation
	go func() {
		for speech.active.Load() == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		speech.wake <- struct{}{}
	}()
	trigger, err = arbiter.AwaitTrigger(context.Background())
	if err != nil || trigger.Kind != WakeWord {
		t.Fatalf("expected wake word on the next cycle, got %v (%v)", trigger.Kind, err)
	}
}

func TestWakeWordWinsOverPendingListener(t *testing.T) {
	speech := &trackingSpeech{speechStub: speechStub{wake: make(chan struct{}, 1)}}
	speech.wake <- struct{}{}
	arbiter := NewWakeArbiter(speech, DefaultWakeAliases)

	trigger, err := arbiter.AwaitTrigger(context.Background())
	if err != nil || trigger.Kind != WakeWord {
		t.Fatalf("expected wake word trigger, got %v (%v)", trigger.Kind, err)
	}

	select {
	case <-arbiter.pushToTalk:
		t.Fatalf("expected no push to talk to be consumed")
	default:
	}
}

func TestWakeEngineErrorFallsBackToPushToTalk(t *testing.T) {
	speech := &speechStub{wakeErr: errors.New("microphone unavailable")}
	arbiter := NewWakeArbiter(speech, DefaultWakeAliases)

	go func() {
		time.Sleep(20 * time.Millisecond)
		arbiter.PushToTalk()
	}()

	trigger, err := arbiter.AwaitTrigger(context.Background())
	if err != nil || trigger.Kind != PushToTalk {
		t.Fatalf("expected push to talk fallback, got %v (%v)", trigger.Kind, err)
	}
}

func TestAwaitTriggerHonorsCancellation(t *testing.T) {
	speech := &trackingSpeech{speechStub: speechStub{wake: make(chan struct{})}}
	arbiter := NewWakeArbiter(speech, DefaultWakeAliases)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	started := time.Now()
	if _, err := arbiter.AwaitTrigger(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > 500*time.Millisecond {
		t.Fatalf("cancellation took too long: %s", elapsed)
	}
	if speech.active.Load() != 0 {
		t.Fatalf("expected wake listener to have stopped")
	}
}

func TestArbiterWithoutSpeechOnlyUsesPushToTalk(t *testing.T) {
	arbiter := NewWakeArbiter(nil, nil)
	arbiter.PushToTalk()
	arbiter.PushToTalk()

	trigger, err := arbiter.AwaitTrigger(context.Background())
	if err != nil || trigger.Kind != PushToTalk {
		t.Fatalf("expected push to talk, got %v (%v)", trigger.Kind, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := arbiter.AwaitTrigger(ctx); err == nil {
		t.Fatalf("expected repeated presses to be merged into one trigger")
	}
}
