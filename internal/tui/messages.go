package tui

import (
	orchestration "github.com/koscakluka/aeris/core"
)

type logLineMsg struct {
	Text string
}

type stateMsg struct {
	State orchestration.TurnState
}

type audioLevelMsg struct {
	Level float64
}
