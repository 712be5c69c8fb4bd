package llm

import (
	"context"
	"encoding/json"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/placementsprint/sprintd/errors"
)

// OpenRouterClient talks to any OpenAI-compatible chat-completion endpoint.
// OpenRouter is the default; the base URL comes from the connection settings.
type OpenRouterClient struct {
	client *openai.Client
	model  string
}

// NewOpenRouterClient creates a client authenticated with the connection's
// bearer key. Optional headers carry OpenRouter attribution (HTTP-Referer,
// X-Title).
func NewOpenRouterClient(conn Connection, modelID string) (*OpenRouterClient, error) {
	if conn.APIKey == "" {
		return nil, errors.New(errors.KindProvider, "OPENROUTER_API_KEY environment variable not set")
	}

	options := []option.RequestOption{
		option.WithAPIKey(conn.APIKey),
	}
	if conn.BaseURL != "" {
		options = append(options, option.WithBaseURL(conn.BaseURL))
	}
	for name, value := range conn.Headers {
		options = append(options, option.WithHeader(name, value))
	}

	c := openai.NewClient(options...)
	// The &c is required, do not replace and just use c
	return &OpenRouterClient{client: &c, model: modelID}, nil
}

// Generate sends one chat completion requesting schema-constrained output and
// returns the raw JSON content of the first choice.
func (o *OpenRouterClient) Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        schema.Name,
					Description: openai.String(schema.Description),
					Schema:      schema.Definition,
					Strict:      openai.Bool(true),
				},
			},
		},
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errors.WrapKind(errors.KindProvider, err, "chat completion against %s failed", o.model)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New(errors.KindProvider, "empty completion from %s", o.model)
	}
	return json.RawMessage(resp.Choices[0].Message.Content), nil
}
