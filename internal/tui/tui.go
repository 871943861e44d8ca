// Package tui renders the assistant in the terminal: the conversation log,
// the turn state and the microphone level, with a prompt for typed
// requests.
package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	orchestration "github.com/koscakluka/aeris/core"
)

const pendingMessages = 256

var _ orchestration.Renderer = (*UI)(nil)

// UI is a Renderer backed by a bubbletea program. Renderer calls never
// block: messages are queued and forwarded while the program runs, and
// level updates are dropped when the queue is full.
type UI struct {
	program *tea.Program
	pending chan tea.Msg

	closeOnce sync.Once
	done      chan struct{}
}

func New(actions Actions, opts ...tea.ProgramOption) *UI {
	return &UI{
		program: tea.NewProgram(NewModel(actions), opts...),
		pending: make(chan tea.Msg, pendingMessages),
		done:    make(chan struct{}),
	}
}

// Run blocks until the user quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	defer u.closeOnce.Do(func() { close(u.done) })

	go u.forward(ctx)
	stop := context.AfterFunc(ctx, u.program.Quit)
	defer stop()

	if _, err := u.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (u *UI) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-u.done:
			return
		case msg := <-u.pending:
			u.program.Send(msg)
		}
	}
}

func (u *UI) PushLogLine(text string) {
	select {
	case u.pending <- logLineMsg{Text: text}:
	default:
		logger.Warn("renderer queue full, dropping log line", "text", text)
	}
}

func (u *UI) SetState(state orchestration.TurnState) {
	select {
	case u.pending <- stateMsg{State: state}:
	default:
		logger.Warn("renderer queue full, dropping state", "state", state.String())
	}
}

func (u *UI) SetAudioLevel(level float64) {
	select {
	case u.pending <- audioLevelMsg{Level: level}:
	default:
	}
}
