package agent

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/placementsprint/sprintd/errors"
)

// Schema validation is eager and atomic: either the whole object is valid and
// returned, or a schema-kind error comes back and the retry loop treats the
// malformed output as a transient failure. No partially-filled values escape.

const (
	maxRationaleChars = 300
	maxReplyChars     = 12000
	maxTitleChars     = 140
	maxWhyChars       = 200
	maxEtaMinutes     = 240
)

// DecodeIntent validates raw provider output against the Intent contract.
func DecodeIntent(raw json.RawMessage) (Intent, error) {
	var payload struct {
		Intent     string   `json:"intent"`
		Confidence *float64 `json:"confidence"`
		Rationale  string   `json:"rationale"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Intent{}, errors.WrapKind(errors.KindSchema, err, "intent payload is not valid JSON")
	}

	mode := Mode(payload.Intent)
	switch mode {
	case ModeAuto, ModePlan, ModeResume, ModeInterview:
	default:
		return Intent{}, errors.New(errors.KindSchema, "unknown intent %q", payload.Intent)
	}
	if payload.Confidence == nil {
		return Intent{}, errors.New(errors.KindSchema, "confidence is missing")
	}
	if *payload.Confidence < 0 || *payload.Confidence > 1 {
		return Intent{}, errors.New(errors.KindSchema, "confidence %v outside [0,1]", *payload.Confidence)
	}
	if n := utf8.RuneCountInString(payload.Rationale); n == 0 || n > maxRationaleChars {
		return Intent{}, errors.New(errors.KindSchema, "rationale length %d outside [1,%d]", n, maxRationaleChars)
	}

	return Intent{
		Intent:     mode,
		Confidence: *payload.Confidence,
		Rationale:  payload.Rationale,
	}, nil
}

// DecodeResponse validates raw provider output against the AgentResponse
// contract. Absent sequences decode as empty, matching the response the
// boundary serializes.
func DecodeResponse(raw json.RawMessage) (AgentResponse, error) {
	var resp AgentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return AgentResponse{}, errors.WrapKind(errors.KindSchema, err, "response payload is not valid JSON")
	}

	if resp.ActionItems == nil {
		resp.ActionItems = []ActionItem{}
	}
	if resp.FollowUpQuestions == nil {
		resp.FollowUpQuestions = []string{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}

	if err := ValidateResponse(resp); err != nil {
		return AgentResponse{}, err
	}
	return resp, nil
}

// ValidateResponse checks every field bound of an already-decoded response.
// Idempotent: a value that passed once passes again unchanged.
func ValidateResponse(resp AgentResponse) error {
	if n := utf8.RuneCountInString(resp.ReplyMarkdown); n == 0 || n > maxReplyChars {
		return errors.New(errors.KindSchema, "reply_markdown length %d outside [1,%d]", n, maxReplyChars)
	}
	for i, item := range resp.ActionItems {
		if n := utf8.RuneCountInString(item.Title); n == 0 || n > maxTitleChars {
			return errors.New(errors.KindSchema, "action_items[%d].title length %d outside [1,%d]", i, n, maxTitleChars)
		}
		if n := utf8.RuneCountInString(item.Why); n == 0 || n > maxWhyChars {
			return errors.New(errors.KindSchema, "action_items[%d].why length %d outside [1,%d]", i, n, maxWhyChars)
		}
		if item.EtaMinutes < 1 || item.EtaMinutes > maxEtaMinutes {
			return errors.New(errors.KindSchema, "action_items[%d].eta_minutes %d outside [1,%d]", i, item.EtaMinutes, maxEtaMinutes)
		}
		switch item.Priority {
		case "low", "med", "high":
		default:
			return errors.New(errors.KindSchema, "action_items[%d].priority %q not one of low|med|high", i, item.Priority)
		}
	}
	return nil
}
