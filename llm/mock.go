package llm

import (
	"context"
	"encoding/json"
)

// MockClient is a placeholder client used by tests and with `llm: mock` for
// local development. It returns Response verbatim when set, otherwise a
// minimal payload shaped by the requested schema name.
type MockClient struct {
	Response json.RawMessage
	Err      error
}

func (m *MockClient) Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response != nil {
		return m.Response, nil
	}

	switch schema.Name {
	case "intent":
		return json.RawMessage(`{"intent":"plan","confidence":0.9,"rationale":"mock classification"}`), nil
	default:
		return json.RawMessage(`{"reply_markdown":"I am a mock model. Configure a real provider to get useful answers.","action_items":[],"follow_up_questions":[],"warnings":[]}`), nil
	}
}
