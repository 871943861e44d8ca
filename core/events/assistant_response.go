package events

// KindAssistantResponseFinal identifies the final answer of a turn.
const KindAssistantResponseFinal Kind = "assistant_response.final"

// AssistantResponseFinal carries the answer of a turn.
type AssistantResponseFinal struct {
	Base
	Text   string
	Spoken bool
}

// NewAssistantResponseFinal creates an assistant response final event.
func NewAssistantResponseFinal(text string, spoken bool) AssistantResponseFinal {
	return AssistantResponseFinal{Base: NewBase(KindAssistantResponseFinal), Text: text, Spoken: spoken}
}
