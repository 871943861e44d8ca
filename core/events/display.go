package events

// KindLogLine identifies conversation log lines.
const KindLogLine Kind = "display.log_line"

// LogLine is a line for the conversation log, already prefixed with its
// speaker ("You: ", "AI: ").
type LogLine struct {
	Base
	Text string
}

// NewLogLine creates a log line event.
func NewLogLine(text string) LogLine {
	return LogLine{Base: NewBase(KindLogLine), Text: text}
}
