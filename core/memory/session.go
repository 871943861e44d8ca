// Package memory holds the short-term conversation state of a running
// assistant and the contract for its long-term fact store.
//
// A [Session] lives for the whole process. It is mutated by the turn
// controller after every turn and by handlers that collect parameters over
// several turns. [Session.Reset] drops conversation and pending state but
// keeps what the assistant has learned about its environment (last opened
// application, last search).
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jinzhu/copier"
)

const DefaultMaxHistory = 20

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Line is a single entry of the conversation history.
type Line struct {
	Speaker Speaker
	Text    string
}

func (l Line) String() string {
	return fmt.Sprintf("%s: %s", l.Speaker, l.Text)
}

type Search struct {
	Query    string
	Response string
}

// State is a point-in-time copy of a [Session].
type State struct {
	History        []Line
	LastAIResponse *string
	Slots          SlotFilling
	LastOpenedApp  string
	LastSearch     *Search
}

type Session struct {
	mu    sync.RWMutex
	state State

	maxHistory int
}

type SessionOption func(*Session)

// WithMaxHistory caps the number of history lines kept in memory. Older
// lines are dropped first. Values below 1 are ignored.
func WithMaxHistory(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.maxHistory = n
		}
	}
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{maxHistory: DefaultMaxHistory}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) AddLine(speaker Speaker, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.History = append(s.state.History, Line{Speaker: speaker, Text: text})
	if overflow := len(s.state.History) - s.maxHistory; overflow > 0 {
		s.state.History = append([]Line(nil), s.state.History[overflow:]...)
	}
}

func (s *Session) History() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]Line, len(s.state.History))
	copy(history, s.state.History)
	return history
}

// RecentLines returns the last n history lines formatted for a prompt.
func (s *Session) RecentLines(n int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RecentLines(n)
}

// RecentLines returns the last n history lines of the state formatted for a
// prompt.
func (s State) RecentLines(n int) []string {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}

	start := max(len(s.History)-n, 0)
	lines := make([]string, 0, len(s.History)-start)
	for _, line := range s.History[start:] {
		lines = append(lines, line.String())
	}
	return lines
}

func (s *Session) SetLastAIResponse(response string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastAIResponse = &response
}

func (s *Session) LastAIResponse() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.LastAIResponse == nil {
		return "", false
	}
	return *s.state.LastAIResponse, true
}

func (s *Session) SetLastOpenedApp(app string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastOpenedApp = strings.TrimSpace(app)
}

func (s *Session) LastOpenedApp() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LastOpenedApp
}

func (s *Session) SetLastSearch(query, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastSearch = &Search{Query: query, Response: response}
}

func (s *Session) LastSearch() (Search, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.LastSearch == nil {
		return Search{}, false
	}
	return *s.state.LastSearch, true
}

// UpdateSlots runs update with exclusive access to the slot-filling state.
func (s *Session) UpdateSlots(update func(*SlotFilling)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.state.Slots)
}

func (s *Session) Slots() SlotFilling {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Slots.clone()
}

// Reset clears history and any pending multi-turn state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.History = nil
	s.state.LastAIResponse = nil
	s.state.Slots.Clear()
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snapshot State
	if err := copier.CopyWithOption(&snapshot, &s.state, copier.Option{DeepCopy: true}); err != nil {
		logger.Warn("failed to copy session state", "error", err)
		snapshot.History = append([]Line(nil), s.state.History...)
		snapshot.LastOpenedApp = s.state.LastOpenedApp
		snapshot.Slots = s.state.Slots.clone()
	}
	return snapshot
}
