package events

import "time"

const (
	// KindTurnStateChanged identifies state machine transitions.
	KindTurnStateChanged Kind = "turn_state.changed"
	// KindTurnStarted identifies the start of a turn.
	KindTurnStarted Kind = "turn_state.started"
	// KindTurnCompleted identifies a turn that produced an answer.
	KindTurnCompleted Kind = "turn_state.completed"
	// KindTurnFailed identifies a turn that ended on an error.
	KindTurnFailed Kind = "turn_state.failed"
	// KindTurnCancelled identifies turn cancellation.
	KindTurnCancelled Kind = "turn_state.cancelled"
)

// TurnStateChanged reports the new controller state.
type TurnStateChanged struct {
	Base
	State string
}

// NewTurnStateChanged creates a turn state changed event.
func NewTurnStateChanged(state string) TurnStateChanged {
	return TurnStateChanged{Base: NewBase(KindTurnStateChanged), State: state}
}

// TurnStarted marks the start of a turn and what triggered it.
type TurnStarted struct {
	Base
	TurnID  string
	Trigger string
}

// NewTurnStarted creates a turn started event.
func NewTurnStarted(turnID, trigger string) TurnStarted {
	return TurnStarted{Base: NewBase(KindTurnStarted), TurnID: turnID, Trigger: trigger}
}

// TurnCompleted marks a turn that produced an answer. Route names the path
// that answered it: a routed intent name, "chat" for intents answered
// verbatim, "alarm" or "aircraft".
type TurnCompleted struct {
	Base
	TurnID   string
	Route    string
	Duration time.Duration
}

// NewTurnCompleted creates a turn completed event.
func NewTurnCompleted(turnID, route string, duration time.Duration) TurnCompleted {
	return TurnCompleted{Base: NewBase(KindTurnCompleted), TurnID: turnID, Route: route, Duration: duration}
}

// TurnFailed marks a turn that ended on an error.
type TurnFailed struct {
	Base
	TurnID string
	Stage  string
	Err    error
}

// NewTurnFailed creates a turn failed event.
func NewTurnFailed(turnID, stage string, err error) TurnFailed {
	return TurnFailed{Base: NewBase(KindTurnFailed), TurnID: turnID, Stage: stage, Err: err}
}

// TurnCancelled marks cancellation of the current turn.
type TurnCancelled struct {
	Base
	TurnID string
}

// NewTurnCancelled creates a turn cancelled event.
func NewTurnCancelled(turnID string) TurnCancelled {
	return TurnCancelled{Base: NewBase(KindTurnCancelled), TurnID: turnID}
}
