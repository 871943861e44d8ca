package main

import (
	"fmt"
	"io"
	"sync"

	orchestration "github.com/koscakluka/aeris/core"
)

// consoleRenderer prints log lines for headless runs.
type consoleRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleRenderer(out io.Writer) *consoleRenderer {
	return &consoleRenderer{out: out}
}

func (r *consoleRenderer) PushLogLine(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, text)
}

func (r *consoleRenderer) SetState(orchestration.TurnState) {}

func (r *consoleRenderer) SetAudioLevel(float64) {}
