package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	orchestration "github.com/koscakluka/aeris/core"
)

type actionsRecorder struct {
	submitted  []string
	talks      int
	interrupts int
}

func (r *actionsRecorder) actions() Actions {
	return Actions{
		Submit:     func(text string) { r.submitted = append(r.submitted, text) },
		PushToTalk: func() { r.talks++ },
		Interrupt:  func() { r.interrupts++ },
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestModelSubmitsTypedText(t *testing.T) {
	recorder := &actionsRecorder{}
	m := NewModel(recorder.actions())

	m = typeText(t, m, "  what's the weather in Paris  ")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(recorder.submitted) != 1 || recorder.submitted[0] != "what's the weather in Paris" {
		t.Fatalf("unexpected submissions: %q", recorder.submitted)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input to be cleared, got %q", m.input.Value())
	}

	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(recorder.submitted) != 1 {
		t.Fatalf("expected blank input not to be submitted, got %q", recorder.submitted)
	}
}

func TestModelKeysTriggerActions(t *testing.T) {
	recorder := &actionsRecorder{}
	m := NewModel(recorder.actions())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if recorder.talks != 1 {
		t.Fatalf("expected 1 push to talk, got %d", recorder.talks)
	}
	if recorder.interrupts != 2 {
		t.Fatalf("expected 2 interrupts, got %d", recorder.interrupts)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestModelRendersStateAndLog(t *testing.T) {
	m := NewModel(Actions{})
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m = update(t, m, logLineMsg{Text: "You: open firefox"})
	m = update(t, m, logLineMsg{Text: "AI: Opening firefox, sir."})
	m = update(t, m, stateMsg{State: orchestration.StateSpeaking})
	m = update(t, m, audioLevelMsg{Level: 0.5})

	view := m.View()
	for _, want := range []string{"SPEAKING", "You: open firefox", "AI: Opening firefox, sir."} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if m.level != 0.5 {
		t.Fatalf("expected level 0.5, got %v", m.level)
	}
}

func TestModelKeepsBoundedLog(t *testing.T) {
	m := NewModel(Actions{})
	for i := 0; i < maxLogLines+10; i++ {
		m = update(t, m, logLineMsg{Text: "line"})
	}
	if len(m.lines) != maxLogLines {
		t.Fatalf("expected %d lines, got %d", maxLogLines, len(m.lines))
	}
}

func TestLevelMeter(t *testing.T) {
	if got := levelMeter(0); strings.Contains(got, "█") {
		t.Fatalf("expected empty meter, got %q", got)
	}
	if got := levelMeter(2); strings.Count(got, "█") != meterWidth {
		t.Fatalf("expected full meter, got %q", got)
	}
	if got := levelMeter(0.5); strings.Count(got, "█") != meterWidth/2 {
		t.Fatalf("expected half meter, got %q", got)
	}
}

func TestUIRendererDoesNotBlock(t *testing.T) {
	ui := New(Actions{})
	for i := 0; i < pendingMessages*2; i++ {
		ui.SetAudioLevel(0.1)
	}
	ui.PushLogLine("still fine")
	ui.SetState(orchestration.StateIdle)
}
