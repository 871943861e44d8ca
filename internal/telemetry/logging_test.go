package telemetry

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/koscakluka/aeris/core/alarms"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSetupLoggingRoutesPackageLoggers(t *testing.T) {
	// created before setup, like the package level loggers
	early := otelslog.NewLogger("github.com/koscakluka/aeris/internal/telemetry/test")

	out := &syncBuffer{}
	shutdown, err := SetupLogging(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer shutdown(context.Background())

	early.Info("turn started", "turn", "t1")

	manager := alarms.NewManager(nil)
	defer manager.Stop()
	if _, err := manager.Schedule(time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("failed to schedule alarm: %v", err)
	}

	logged := out.String()
	for _, want := range []string{"turn started", "alarm scheduled"} {
		if !strings.Contains(logged, want) {
			t.Fatalf("expected log output to contain %q, got:\n%s", want, logged)
		}
	}
}

func TestSetupLoggingShutdownStopsRouting(t *testing.T) {
	out := &syncBuffer{}
	shutdown, err := SetupLogging(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	otelslog.NewLogger("github.com/koscakluka/aeris/internal/telemetry/test").Info("after shutdown")
	if strings.Contains(out.String(), "after shutdown") {
		t.Fatalf("expected no output after shutdown, got:\n%s", out.String())
	}
}
