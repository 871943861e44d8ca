// Package alarms schedules one-shot alarms parsed from spoken requests.
package alarms

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	MessageRinging      = "Sir, your alarm is ringing."
	MessageUnparseable  = "Sir, I could not determine the alarm time."
	confirmationMessage = "Alarm set for %s, sir."
)

type Entry struct {
	ID     string
	Target time.Time
	Fired  bool
}

// RingFunc is called from the alarm's own goroutine when it fires.
type RingFunc func(entry Entry)

type Manager struct {
	mu      sync.Mutex
	alarms  map[string]*scheduled
	onRing  RingFunc
	now     func() time.Time
	stopped bool
}

type scheduled struct {
	entry Entry
	timer *time.Timer
}

type ManagerOption func(*Manager)

// WithClock replaces time.Now as the reference for parsing and scheduling.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(onRing RingFunc, opts ...ManagerOption) *Manager {
	m := &Manager{
		alarms: map[string]*scheduled{},
		onRing: onRing,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create parses text into an alarm and schedules it. The returned string
// is the reply for the user in both the success and the failure case.
func (m *Manager) Create(ctx context.Context, text string) (string, bool) {
	_, span := tracer.Start(ctx, "create alarm")
	defer span.End()

	target, ok := ParseTime(text, m.now())
	if !ok {
		span.SetAttributes(attribute.Bool("alarm.parsed", false))
		return MessageUnparseable, false
	}

	entry, err := m.Schedule(target)
	if err != nil {
		span.RecordError(err)
		return MessageUnparseable, false
	}

	span.SetAttributes(
		attribute.String("alarm.id", entry.ID),
		attribute.String("alarm.target", entry.Target.Format(time.RFC3339)),
	)
	return fmt.Sprintf(confirmationMessage, entry.Target.Format("15:04")), true
}

// Schedule arms a one-shot timer for target.
func (m *Manager) Schedule(target time.Time) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return Entry{}, fmt.Errorf("alarm manager stopped")
	}

	entry := Entry{ID: uuid.NewString(), Target: target}
	alarm := &scheduled{entry: entry}
	alarm.timer = time.AfterFunc(max(target.Sub(m.now()), 0), func() { m.fire(entry.ID) })
	m.alarms[entry.ID] = alarm

	logger.Info("alarm scheduled", "id", entry.ID, "target", target)
	return entry, nil
}

func (m *Manager) fire(id string) {
	m.mu.Lock()
	alarm, ok := m.alarms[id]
	if !ok || m.stopped {
		m.mu.Unlock()
		return
	}
	alarm.entry.Fired = true
	entry := alarm.entry
	m.mu.Unlock()

	logger.Info("alarm ringing", "id", id)
	if m.onRing == nil {
		return
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("alarm ring handler panicked", "id", id, "panic", recovered)
		}
	}()
	m.onRing(entry)
}

// List returns all alarms ordered by target time.
func (m *Manager) List() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, len(m.alarms))
	for _, alarm := range m.alarms {
		entries = append(entries, alarm.entry)
	}
	slices.SortFunc(entries, func(a, b Entry) int { return a.Target.Compare(b.Target) })
	return entries
}

// Cancel disarms a pending alarm. It reports false if the alarm is unknown
// or already fired.
func (m *Manager) Cancel(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	alarm, ok := m.alarms[id]
	if !ok || alarm.entry.Fired {
		return false
	}
	alarm.timer.Stop()
	delete(m.alarms, id)
	return true
}

// Stop disarms every pending alarm. Later Schedule calls fail.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true
	for _, alarm := range m.alarms {
		alarm.timer.Stop()
	}
}
