package llms

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is a single message of the conversation sent along with a prompt.
type Message struct {
	Role    MessageRole
	Content string
}
