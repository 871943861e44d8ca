package groq

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/llms"
	"github.com/koscakluka/aeris/core/memory"
)

//go:embed prompts/classifier.md
var classifierInstructions string

type classification struct {
	Intent       string         `json:"intent" jsonschema:"description=The classified intent"`
	Parameters   map[string]any `json:"parameters" jsonschema:"description=Parameters of the intent"`
	Text         string         `json:"text" jsonschema:"description=Reply for the user"`
	MemoryUpdate map[string]any `json:"memory_update,omitempty" jsonschema:"description=Facts to remember about the user"`
}

type classificationPrompt struct {
	UserInput string          `json:"user_input"`
	Memory    *memory.Context `json:"memory,omitempty"`
}

// Classifier maps utterances to intents with a Groq hosted model.
type Classifier struct {
	client       *Client
	instructions string
	temperature  float64
}

type ClassifierOption func(*Classifier)

// WithInstructions replaces the built-in system prompt.
func WithInstructions(instructions string) ClassifierOption {
	return func(c *Classifier) {
		c.instructions = instructions
	}
}

func NewClassifier(client *Client, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		client:       client,
		instructions: classifierInstructions,
		temperature:  0.2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Classifier) Classify(ctx context.Context, utterance string, memoryContext memory.Context) (*intents.ClassifiedIntent, error) {
	ctx, span := tracer.Start(ctx, "classify utterance")
	defer span.End()

	request := classificationPrompt{UserInput: utterance}
	if !memoryContext.IsEmpty() {
		request.Memory = &memoryContext
	}
	prompt, err := json.Marshal(request)
	if err != nil {
		err = fmt.Errorf("error marshalling prompt: %w", err)
		span.RecordError(err)
		return nil, err
	}

	result, err := PromptJSONSchema[classification](ctx, c.client, string(prompt),
		llms.WithSystemPrompt(c.instructions),
		llms.WithTemperature(c.temperature),
		// parameters and memory updates are free-form objects
		llms.WithStrictSchema(false),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification failed")
		return nil, err
	}

	intent := intents.ClassifiedIntent{
		Name:         result.Intent,
		Parameters:   result.Parameters,
		ResponseText: result.Text,
		MemoryUpdate: result.MemoryUpdate,
	}.Normalized()

	span.SetAttributes(attribute.String("intent.name", intent.Name))
	logger.Debug("classified utterance", "intent", intent.Name, "parameters", len(intent.Parameters))
	return &intent, nil
}
