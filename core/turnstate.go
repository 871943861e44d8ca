package orchestration

import "sync/atomic"

type TurnState int32

const (
	StateIdle TurnState = iota
	StateListening
	StateProcessing
	StateSpeaking
)

func (s TurnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateProcessing:
		return "processing"
	case StateSpeaking:
		return "speaking"
	}
	return "unknown"
}

// turnState is written by the turn controller only.
type turnState struct {
	value atomic.Int32
}

func (s *turnState) Load() TurnState {
	return TurnState(s.value.Load())
}

// Swap stores next and reports the previous state.
func (s *turnState) Swap(next TurnState) TurnState {
	return TurnState(s.value.Swap(int32(next)))
}
