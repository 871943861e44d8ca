package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"

	"github.com/koscakluka/aeris/core/llms"
)

var ErrMissingAPIKey = errors.New("groq api key not configured")

// PromptJSONSchema prompts the model for a response shaped like T.
func PromptJSONSchema[T any](
	ctx context.Context,
	client *Client,
	prompt string,
	opts ...llms.StructuredPromptOption,
) (*T, error) {
	ctx, span := tracer.Start(ctx, "prompt llm structured")
	defer span.End()

	if client.apiKey == "" {
		span.RecordError(ErrMissingAPIKey)
		return nil, ErrMissingAPIKey
	}

	options := llms.StructuredPromptOptions{StrictSchema: true}
	for _, opt := range opts {
		opt.ApplyToStructured(&options)
	}

	messages := toMessages(options.Instructions, options.Messages)
	messages = append(messages, message{
		Role:    messageRoleUser,
		Content: prompt,
	})

	// TODO: Implement a custom reflector that only satisfies the subset of
	// jsonschema used by groq
	reflector := jsonschema.Reflector{DoNotReference: true}
	outputType := reflect.TypeFor[T]()
	schema := reflector.ReflectFromType(outputType)

	reqBody := schemaRequestBody{
		Model:       client.model,
		Messages:    messages,
		Temperature: options.Temperature,
		ResponseFormat: &ChatResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchema{
				Name:   outputType.Name(),
				Schema: *schema,
				Strict: options.StrictSchema,
			},
		},
	}

	span.SetAttributes(attribute.String("request.model", client.model))
	schemaString, _ := schema.MarshalJSON()
	span.SetAttributes(attribute.String("request.schema", string(schemaString)))

	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		err = fmt.Errorf("error marshalling JSON: %w", err)
		span.RecordError(err)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", client.url, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		err = fmt.Errorf("error creating HTTP request: %w", err)
		span.RecordError(err)
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+client.apiKey)

	span.SetAttributes(attribute.String("request.url", req.URL.String()))
	resp, err := client.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("error sending request: %w", err)
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		if errorBody, err := io.ReadAll(resp.Body); err != nil {
			err = fmt.Errorf("error reading error body: %w", err)
			span.RecordError(err)
		} else {
			span.SetAttributes(attribute.String("response.error", string(errorBody)))
		}

		err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
		span.RecordError(err)
		return nil, err
	}

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("error reading response body: %w", err)
		span.RecordError(err)
		return nil, err
	}
	var responseBody schemaResponseBody
	if err := json.Unmarshal(respBodyBytes, &responseBody); err != nil {
		err = fmt.Errorf("error unmarshalling response body: %w", err)
		span.RecordError(err)
		return nil, err
	}
	if len(responseBody.Choices) == 0 {
		err := fmt.Errorf("response contains no choices")
		span.RecordError(err)
		return nil, err
	}

	content := responseBody.Choices[0].Message.Content
	split := strings.Split(content, "```")
	if len(split) > 1 {
		content = strings.TrimPrefix(split[1], "json")
	}

	var output T
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		err = fmt.Errorf("error unmarshalling response: %w", err)
		span.RecordError(err)
		return nil, err
	}

	if responseBody.Usage != nil {
		span.SetAttributes(attribute.Int("response.total_tokens", responseBody.Usage.TotalTokens))
	}
	return &output, nil
}

type schemaRequestBody struct {
	Model          string              `json:"model"`
	Messages       []message           `json:"messages"`
	Temperature    *float64            `json:"temperature,omitempty"`
	ResponseFormat *ChatResponseFormat `json:"response_format,omitempty"`
}

type ChatResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

type JSONSchema struct {
	// Name is the name of the chat completion response format json
	// schema.
	//
	// it is used to further identify the schema in the response.
	Name string `json:"name"`
	// Description is the description of the chat completion
	// response format json schema.
	Description string `json:"description,omitempty"`
	// Schema is the schema of the chat completion response format
	// json schema.
	Schema jsonschema.Schema `json:"schema"`
	// Strict determines whether to enforce the schema upon the
	// generated content.
	Strict bool `json:"strict"`
}

type schemaResponseBody struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role,omitempty"`
			Content string `json:"content,omitempty"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
