// Package llms holds the provider independent options for prompting
// language models.
package llms

import "github.com/koscakluka/aeris/internal/utils"

type StructuredPromptOptions struct {
	Instructions string
	Messages     []Message
	Temperature  *float64
	// StrictSchema asks the provider to enforce the output schema exactly.
	// Schemas with free-form objects cannot be strict.
	StrictSchema bool
}

type StructuredPromptOption interface {
	ApplyToStructured(*StructuredPromptOptions)
}

// PromptOption is a function that can be used to modify the prompt options.
type PromptOption func(*StructuredPromptOptions)

func (f PromptOption) ApplyToStructured(o *StructuredPromptOptions) { f(o) }

// WithSystemPrompt sets the system prompt for the prompt.
// Repeating this option will overwrite the previous system prompt.
func WithSystemPrompt(prompt string) PromptOption {
	return func(opts *StructuredPromptOptions) {
		opts.Instructions = prompt
	}
}

// WithMessages adds messages that precede the prompt.
// Repeating this option will sequentially add more messages.
func WithMessages(messages ...Message) PromptOption {
	return func(opts *StructuredPromptOptions) {
		opts.Messages = append(opts.Messages, messages...)
	}
}

func WithTemperature(temperature float64) PromptOption {
	return func(opts *StructuredPromptOptions) {
		opts.Temperature = utils.Ptr(temperature)
	}
}

func WithStrictSchema(strict bool) PromptOption {
	return func(opts *StructuredPromptOptions) {
		opts.StrictSchema = strict
	}
}
