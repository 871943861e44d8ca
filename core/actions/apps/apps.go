// Package apps launches desktop applications by name.
package apps

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/koscakluka/aeris/core/intents"
)

const (
	messageUnknownApp = "Sir, I couldn't determine which application to open."
	messageOpening    = "Opening %s, sir."
	messageFailed     = "Sir, I failed to open %s."
)

type Launcher interface {
	Launch(ctx context.Context, app string) error
}

// CommandLauncher runs Command with the application name appended.
type CommandLauncher struct {
	Command []string
}

// DefaultCommand is the launcher command for the current platform.
func DefaultCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open", "-a"}
	case "windows":
		return []string{"cmd", "/c", "start", ""}
	default:
		return []string{"gtk-launch"}
	}
}

func (l CommandLauncher) Launch(ctx context.Context, app string) error {
	command := l.Command
	if len(command) == 0 {
		command = DefaultCommand()
	}

	args := append(append([]string{}, command[1:]...), app)
	cmd := exec.CommandContext(ctx, command[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Handler serves the open_app intent. Without an app_name it reopens the
// application opened last.
type Handler struct {
	Launcher Launcher
}

func (h *Handler) Handle(ctx context.Context, req intents.Request) (string, error) {
	ctx, span := tracer.Start(ctx, "open app")
	defer span.End()

	app := req.Parameters.String("app_name")
	if app == "" && req.Memory != nil {
		app = req.Memory.LastOpenedApp()
	}
	if app == "" {
		return messageUnknownApp, nil
	}

	if err := h.Launcher.Launch(ctx, app); err != nil {
		span.RecordError(err)
		return "", intents.Failed(fmt.Sprintf(messageFailed, app), fmt.Errorf("failed to launch %q: %w", app, err))
	}

	if req.Memory != nil {
		req.Memory.SetLastOpenedApp(app)
	}
	logger.Info("opened app", "app", app)

	if req.ResponseText != "" {
		return req.ResponseText, nil
	}
	return fmt.Sprintf(messageOpening, app), nil
}
