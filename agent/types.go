// Package agent implements the orchestration core: intent classification,
// mode-specific prompt assembly, retried primary/fallback model calls and
// strict validation of the structured output.
package agent

import (
	"unicode/utf8"

	"github.com/placementsprint/sprintd/errors"
)

// Mode is the task category controlling the prompt instructions. ModeAuto is
// resolved at call time into one of the other three.
type Mode string

const (
	ModeAuto      Mode = "auto"
	ModePlan      Mode = "plan"
	ModeResume    Mode = "resume"
	ModeInterview Mode = "interview"
)

// ParseMode validates a wire-level mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModePlan, ModeResume, ModeInterview:
		return Mode(s), nil
	default:
		return "", errors.New(errors.KindInvalidRequest, "unknown mode %q", s)
	}
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	maxMessageChars = 8000
)

// ChatMessage is one turn of the caller-owned conversation history. The
// orchestrator only reads a trailing window, never mutates it.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Validate enforces the inbound message contract.
func (m ChatMessage) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return errors.New(errors.KindInvalidRequest, "message role must be user or assistant, got %q", m.Role)
	}
	n := utf8.RuneCountInString(m.Content)
	if n == 0 {
		return errors.New(errors.KindInvalidRequest, "message content must not be empty")
	}
	if n > maxMessageChars {
		return errors.New(errors.KindInvalidRequest, "message content exceeds %d chars", maxMessageChars)
	}
	return nil
}

// Intent is the classifier's structured guess at the user's desired mode.
// Produced once per auto-mode request, never persisted.
type Intent struct {
	Intent     Mode    `json:"intent"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// ActionItem is one concrete step in an AgentResponse.
type ActionItem struct {
	Title      string `json:"title"`
	Why        string `json:"why"`
	EtaMinutes int    `json:"eta_minutes"`
	Priority   string `json:"priority"` // low | med | high
}

// AgentResponse is the contract returned to every caller. Warnings is the
// only field the orchestrator itself appends to, e.g. the fallback notice.
type AgentResponse struct {
	ReplyMarkdown     string       `json:"reply_markdown"`
	ActionItems       []ActionItem `json:"action_items"`
	FollowUpQuestions []string     `json:"follow_up_questions"`
	Warnings          []string     `json:"warnings"`
}
