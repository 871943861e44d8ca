package orchestration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

type WakeTriggerKind int

const (
	WakeWord WakeTriggerKind = iota
	PushToTalk
)

func (k WakeTriggerKind) String() string {
	if k == PushToTalk {
		return "push_to_talk"
	}
	return "wake_word"
}

type WakeTrigger struct {
	Kind WakeTriggerKind
	At   time.Time
}

// WakeArbiter races the wake word detector against manual push-to-talk
// presses and reports whichever happens first.
type WakeArbiter struct {
	speech  SpeechCapability
	aliases []string

	pushToTalk chan struct{}
	// interruptWake is raised while a push-to-talk win tears down the wake
	// word listener, and cleared before AwaitTrigger returns.
	interruptWake atomic.Bool
}

func NewWakeArbiter(speech SpeechCapability, aliases []string) *WakeArbiter {
	return &WakeArbiter{
		speech:     speech,
		aliases:    aliases,
		pushToTalk: make(chan struct{}, 1),
	}
}

// PushToTalk requests a turn. Presses while one is already pending are
// merged.
func (a *WakeArbiter) PushToTalk() {
	select {
	case a.pushToTalk <- struct{}{}:
	default:
	}
}

type wakeResult struct {
	matched bool
	err     error
}

// AwaitTrigger blocks until the wake word is heard or push-to-talk is
// pressed. The losing listener has fully stopped by the time it returns.
func (a *WakeArbiter) AwaitTrigger(ctx context.Context) (WakeTrigger, error) {
	if a.speech == nil {
		return a.awaitPushToTalk(ctx)
	}

	wakeCtx, cancelWake := context.WithCancel(ctx)
	defer cancelWake()

	results := make(chan wakeResult, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var matched bool
		err := panicSafeNamedWorker("wake word", func(ctx context.Context) (err error) {
			matched, err = a.listenForWakeWord(ctx)
			return err
		})(wakeCtx)
		results <- wakeResult{matched: matched, err: err}
	}()

	select {
	case <-ctx.Done():
		cancelWake()
		wg.Wait()
		return WakeTrigger{}, ctx.Err()

	case <-a.pushToTalk:
		a.interruptWake.Store(true)
		cancelWake()
		wg.Wait()
		a.interruptWake.Store(false)
		return WakeTrigger{Kind: PushToTalk, At: time.Now()}, nil

	case result := <-results:
		wg.Wait()
		if result.err != nil && !errors.Is(result.err, context.Canceled) {
			logger.Error("wake word detection failed, waiting for push to talk", "error", result.err)
		}
		if result.matched {
			return WakeTrigger{Kind: WakeWord, At: time.Now()}, nil
		}
		return a.awaitPushToTalk(ctx)
	}
}

func (a *WakeArbiter) listenForWakeWord(ctx context.Context) (bool, error) {
	for !a.interruptWake.Load() {
		matched, err := a.speech.AwaitWakeWord(ctx, a.aliases)
		if err != nil || matched {
			return matched, err
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
	}
	return false, context.Canceled
}

func (a *WakeArbiter) awaitPushToTalk(ctx context.Context) (WakeTrigger, error) {
	select {
	case <-ctx.Done():
		return WakeTrigger{}, ctx.Err()
	case <-a.pushToTalk:
		return WakeTrigger{Kind: PushToTalk, At: time.Now()}, nil
	}
}
