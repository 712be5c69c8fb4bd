package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/placementsprint/sprintd/errors"
)

// Schema describes the structured output a generation call must produce.
// Definition is a JSON-schema object forwarded to providers with native
// structured-output support and embedded in the instructions for the rest.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Client is a handle to one remote chat-completion model. Implementations are
// pure transport: a single call, no retries, every failure surfaced as a
// provider-kind error. Safe for concurrent use after construction.
type Client interface {
	Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error)
}

// Connection holds shared settings for building clients against one provider
// account.
type Connection struct {
	APIKey  string
	BaseURL string
	Headers map[string]string
}

// Pair bundles the primary model with its fallback.
type Pair struct {
	Primary  Client
	Fallback Client
}

// New builds a client for the named provider. Providers other than openrouter
// read their credentials from their own environment variables.
func New(ctx context.Context, provider string, conn Connection, modelID string) (Client, error) {
	switch provider {
	case "openrouter":
		return NewOpenRouterClient(conn, modelID)
	case "anthropic":
		return NewAnthropicClient(ctx, modelID)
	case "gemini":
		return NewGeminiClient(ctx, modelID)
	case "bedrock":
		return NewBedrockClient(ctx, modelID)
	case "mock":
		return &MockClient{}, nil
	default:
		return nil, errors.New(errors.KindProvider, "unknown llm provider %q", provider)
	}
}

// NewPair builds the primary and fallback clients for one concern.
func NewPair(ctx context.Context, provider string, conn Connection, primaryModel, fallbackModel string) (Pair, error) {
	primary, err := New(ctx, provider, conn, primaryModel)
	if err != nil {
		return Pair{}, errors.Wrapf(err, "building primary client %s", primaryModel)
	}
	fallback, err := New(ctx, provider, conn, fallbackModel)
	if err != nil {
		return Pair{}, errors.Wrapf(err, "building fallback client %s", fallbackModel)
	}
	return Pair{Primary: primary, Fallback: fallback}, nil
}

// extractJSON pulls the first JSON object out of a model reply, tolerating
// markdown fences and prose around it. Used by providers without native
// structured output.
func extractJSON(text string) (json.RawMessage, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, errors.New(errors.KindProvider, "no JSON object in model reply")
	}
	return json.RawMessage(text[start : end+1]), nil
}
