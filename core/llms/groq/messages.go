package groq

import (
	"github.com/koscakluka/aeris/core/llms"
)

type message struct {
	Role    messageRole `json:"role"`
	Content string      `json:"content"`
}

type messageRole string

const (
	messageRoleSystem    messageRole = "system"
	messageRoleUser      messageRole = "user"
	messageRoleAssistant messageRole = "assistant"
)

func toMessages(instructions string, history []llms.Message) []message {
	messages := []message{}
	if instructions != "" {
		messages = append(messages, message{
			Role:    messageRoleSystem,
			Content: instructions,
		})
	}
	for _, msg := range history {
		if msg.Content == "" {
			continue
		}
		role := messageRoleUser
		switch msg.Role {
		case llms.MessageRoleAssistant:
			role = messageRoleAssistant
		case llms.MessageRoleSystem:
			role = messageRoleSystem
		}
		messages = append(messages, message{Role: role, Content: msg.Content})
	}
	return messages
}
