package orchestration

import (
	"context"
	"fmt"
	"strings"
)

type workerRun func(context.Context) error

func panicSafeNamedWorker(name string, run func(context.Context) error) workerRun {
	return func(ctx context.Context) (err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("%s worker panicked: %v", name, recovered)
			}
		}()

		if err = run(ctx); err != nil {
			return fmt.Errorf("%s worker failed: %w", name, err)
		}

		return nil
	}
}

// InterruptCommands abort playback and reset the conversation when
// contained anywhere in an utterance.
var InterruptCommands = []string{"mute", "quit", "exit", "stop"}

func isInterruptCommand(utterance string) bool {
	utterance = strings.ToLower(utterance)
	for _, command := range InterruptCommands {
		if strings.Contains(utterance, command) {
			return true
		}
	}
	return false
}

func containsAlias(transcript string, aliases []string) bool {
	transcript = strings.ToLower(transcript)
	for _, alias := range aliases {
		if alias = strings.ToLower(strings.TrimSpace(alias)); alias != "" && strings.Contains(transcript, alias) {
			return true
		}
	}
	return false
}
