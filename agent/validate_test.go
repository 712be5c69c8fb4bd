package agent

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/placementsprint/sprintd/errors"
)

func TestDecodeIntentValid(t *testing.T) {
	raw := json.RawMessage(`{"intent":"plan","confidence":0.8,"rationale":"asks for a study schedule"}`)

	intent, err := DecodeIntent(raw)
	if err != nil {
		t.Fatalf("DecodeIntent failed: %v", err)
	}
	if intent.Intent != ModePlan {
		t.Errorf("expected plan, got %q", intent.Intent)
	}
	if intent.Confidence != 0.8 {
		t.Errorf("expected 0.8, got %v", intent.Confidence)
	}
}

func TestDecodeIntentBounds(t *testing.T) {
	cases := map[string]string{
		"not json":           `reply: sure!`,
		"unknown intent":     `{"intent":"karaoke","confidence":0.9,"rationale":"r"}`,
		"missing confidence": `{"intent":"plan","rationale":"r"}`,
		"confidence high":    `{"intent":"plan","confidence":1.2,"rationale":"r"}`,
		"confidence low":     `{"intent":"plan","confidence":-0.1,"rationale":"r"}`,
		"empty rationale":    `{"intent":"plan","confidence":0.9,"rationale":""}`,
		"long rationale":     `{"intent":"plan","confidence":0.9,"rationale":"` + strings.Repeat("x", 301) + `"}`,
	}
	for name, raw := range cases {
		if _, err := DecodeIntent(json.RawMessage(raw)); err == nil {
			t.Errorf("%s: expected schema error", name)
		} else if !errors.HasKind(err, errors.KindSchema) {
			t.Errorf("%s: expected schema kind, got %v", name, err)
		}
	}
}

func TestDecodeIntentEdgeConfidence(t *testing.T) {
	for _, c := range []string{"0", "1", "0.55"} {
		raw := json.RawMessage(`{"intent":"auto","confidence":` + c + `,"rationale":"edge"}`)
		if _, err := DecodeIntent(raw); err != nil {
			t.Errorf("confidence %s rejected: %v", c, err)
		}
	}
}

func TestDecodeResponseMinimal(t *testing.T) {
	raw := json.RawMessage(`{"reply_markdown":"Here is your plan."}`)

	resp, err := DecodeResponse(raw)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if resp.ActionItems == nil || resp.FollowUpQuestions == nil || resp.Warnings == nil {
		t.Fatal("absent sequences must decode as empty, not nil")
	}
	if len(resp.ActionItems) != 0 {
		t.Fatalf("expected no action items, got %d", len(resp.ActionItems))
	}
}

func TestDecodeResponseBounds(t *testing.T) {
	cases := map[string]string{
		"empty reply":  `{"reply_markdown":""}`,
		"long reply":   `{"reply_markdown":"` + strings.Repeat("a", 12001) + `"}`,
		"eta zero":     `{"reply_markdown":"r","action_items":[{"title":"t","why":"w","eta_minutes":0,"priority":"low"}]}`,
		"eta over":     `{"reply_markdown":"r","action_items":[{"title":"t","why":"w","eta_minutes":241,"priority":"low"}]}`,
		"bad priority": `{"reply_markdown":"r","action_items":[{"title":"t","why":"w","eta_minutes":30,"priority":"urgent"}]}`,
		"empty title":  `{"reply_markdown":"r","action_items":[{"title":"","why":"w","eta_minutes":30,"priority":"med"}]}`,
		"long why":     `{"reply_markdown":"r","action_items":[{"title":"t","why":"` + strings.Repeat("y", 201) + `","eta_minutes":30,"priority":"med"}]}`,
	}
	for name, raw := range cases {
		if _, err := DecodeResponse(json.RawMessage(raw)); err == nil {
			t.Errorf("%s: expected schema error", name)
		} else if !errors.HasKind(err, errors.KindSchema) {
			t.Errorf("%s: expected schema kind, got %v", name, err)
		}
	}
}

func TestDecodeResponseFull(t *testing.T) {
	raw := json.RawMessage(`{
		"reply_markdown":"## Day 1\nRevise graphs.",
		"action_items":[{"title":"Solve 5 graph problems","why":"weakest topic","eta_minutes":90,"priority":"high"}],
		"follow_up_questions":["What is the interview date?"],
		"warnings":[]
	}`)

	resp, err := DecodeResponse(raw)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if resp.ActionItems[0].EtaMinutes != 90 {
		t.Errorf("eta lost: %d", resp.ActionItems[0].EtaMinutes)
	}
	if resp.FollowUpQuestions[0] != "What is the interview date?" {
		t.Errorf("follow-up lost: %q", resp.FollowUpQuestions[0])
	}
}

func TestValidationIdempotent(t *testing.T) {
	raw := json.RawMessage(`{"reply_markdown":"ok"}`)

	first, err := DecodeResponse(raw)
	if err != nil {
		t.Fatal(err)
	}

	reencoded, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	second, err := DecodeResponse(reencoded)
	if err != nil {
		t.Fatalf("re-validation failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip changed the value: %+v vs %+v", first, second)
	}
}
