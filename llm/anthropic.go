package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/placementsprint/sprintd/errors"
)

// AnthropicClient is a client for the Anthropic API. Structured output is
// requested through the system prompt since the Messages API has no response
// format parameter.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClient creates a new AnthropicClient. It requires the
// ANTHROPIC_API_KEY environment variable to be set.
func NewAnthropicClient(ctx context.Context, modelID string) (*AnthropicClient, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, errors.New(errors.KindProvider, "ANTHROPIC_API_KEY environment variable not set")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicClient{
		client: &client,
		model:  modelID,
	}, nil
}

func (a *AnthropicClient) Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: schemaInstruction(schema)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, errors.WrapKind(errors.KindProvider, err, "message to %s failed", a.model)
	}

	var text string
	for _, content := range resp.Content {
		if block, ok := content.AsAny().(anthropic.TextBlock); ok {
			text += block.Text
		}
	}
	return extractJSON(text)
}

// schemaInstruction renders the output contract for providers that take it as
// plain instructions rather than a request parameter.
func schemaInstruction(schema Schema) string {
	def, _ := json.Marshal(schema.Definition)
	return fmt.Sprintf(
		"%s\nRespond with a single JSON object named %q conforming to this JSON schema, and nothing else:\n%s",
		schema.Description, schema.Name, def,
	)
}
