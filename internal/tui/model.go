package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	orchestration "github.com/koscakluka/aeris/core"
)

const (
	maxLogLines  = 500
	meterWidth   = 20
	headerHeight = 1
	// border plus input plus help
	chromeHeight = 2 + 1 + 1
)

// Actions are what the user can trigger from the terminal.
type Actions struct {
	// Submit receives typed text.
	Submit func(text string)
	// PushToTalk starts a voice turn without the wake word.
	PushToTalk func()
	// Interrupt stops the answer being spoken.
	Interrupt func()
}

type Model struct {
	actions Actions

	width  int
	height int

	lines []string
	state orchestration.TurnState
	level float64

	log   viewport.Model
	input textinput.Model
}

func NewModel(actions Actions) Model {
	if actions.Submit == nil {
		actions.Submit = func(string) {}
	}
	if actions.PushToTalk == nil {
		actions.PushToTalk = func() {}
	}
	if actions.Interrupt == nil {
		actions.Interrupt = func() {}
	}

	input := textinput.New()
	input.Placeholder = "Type a request and press enter"
	input.Prompt = "> "
	input.Focus()

	return Model{
		actions: actions,
		log:     viewport.New(80, 20),
		input:   input,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.log.Width = max(msg.Width-2, 1)
		m.log.Height = max(msg.Height-headerHeight-chromeHeight, 1)
		m.input.Width = max(msg.Width-4, 1)
		m.refreshLog()
		return m, nil

	case logLineMsg:
		m.lines = append(m.lines, msg.Text)
		if len(m.lines) > maxLogLines {
			m.lines = m.lines[len(m.lines)-maxLogLines:]
		}
		m.refreshLog()
		return m, nil

	case stateMsg:
		m.state = msg.State
		return m, nil

	case audioLevelMsg:
		m.level = msg.Level
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.actions.Interrupt()
			return m, nil
		case tea.KeyCtrlT:
			m.actions.PushToTalk()
			return m, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text != "" {
				m.actions.Submit(text)
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) refreshLog() {
	width := m.log.Width
	rendered := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		rendered = append(rendered, styleLine(wordwrap.String(line, width)))
	}
	m.log.SetContent(strings.Join(rendered, "\n"))
	m.log.GotoBottom()
}

func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "You: "):
		return userStyle.Render(line)
	case strings.HasPrefix(line, "AI error: "):
		return errorStyle.Render(line)
	}
	return line
}

func (m Model) View() string {
	state := stateStyle.
		Foreground(stateColor(m.state)).
		Render(strings.ToUpper(m.state.String()))
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Aeris"), state, meterStyle.Render(levelMeter(m.level)))

	help := helpStyle.Render("enter send • ctrl+t talk • esc interrupt • ctrl+c quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		logStyle.Render(m.log.View()),
		m.input.View(),
		help,
	)
}

func levelMeter(level float64) string {
	level = min(max(level, 0), 1)
	filled := int(level*meterWidth + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat(" ", meterWidth-filled) + "]"
}
