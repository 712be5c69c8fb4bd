package agent

import "github.com/placementsprint/sprintd/llm"

// JSON-schema descriptors sent to providers with the generation request.
// Bounds mirror the validators in validate.go; the validators remain the
// gate, these only steer the model.

func intentSchema() llm.Schema {
	return llm.Schema{
		Name:        "intent",
		Description: "Classification of the user's placement-prep intent.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"intent", "confidence", "rationale"},
			"properties": map[string]any{
				"intent": map[string]any{
					"type": "string",
					"enum": []string{"auto", "plan", "resume", "interview"},
				},
				"confidence": map[string]any{
					"type":    "number",
					"minimum": 0,
					"maximum": 1,
				},
				"rationale": map[string]any{
					"type":      "string",
					"minLength": 1,
					"maxLength": 300,
				},
			},
		},
	}
}

func responseSchema() llm.Schema {
	return llm.Schema{
		Name:        "agent_response",
		Description: "PlacementSprint's structured reply.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"reply_markdown", "action_items", "follow_up_questions", "warnings"},
			"properties": map[string]any{
				"reply_markdown": map[string]any{
					"type":      "string",
					"minLength": 1,
					"maxLength": 12000,
				},
				"action_items": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"required":             []string{"title", "why", "eta_minutes", "priority"},
						"properties": map[string]any{
							"title":       map[string]any{"type": "string", "minLength": 1, "maxLength": 140},
							"why":         map[string]any{"type": "string", "minLength": 1, "maxLength": 200},
							"eta_minutes": map[string]any{"type": "integer", "minimum": 1, "maximum": 240},
							"priority":    map[string]any{"type": "string", "enum": []string{"low", "med", "high"}},
						},
					},
				},
				"follow_up_questions": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"warnings": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
	}
}
