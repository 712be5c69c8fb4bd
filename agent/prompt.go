package agent

import (
	"fmt"
	"strings"
)

// keepLastMessages bounds the conversation window rendered into the prompt.
const keepLastMessages = 12

const systemContext = "You are PlacementSprint, a practical placement-prep agent.\n" +
	"You must be concise, structured, and action-oriented.\n" +
	"If the prompt contains a section starting with 'RESUME_CONTEXT:' treat it as the user's resume text.\n" +
	"Do not repeat the resume verbatim; extract only relevant facts.\n" +
	"Output MUST be valid per the schema (reply_markdown, action_items, follow_up_questions, warnings).\n" +
	"If inputs are missing (role, deadline, skills), ask focused follow-up questions.\n"

func modeInstruction(mode Mode) string {
	switch mode {
	case ModePlan:
		return "Generate a timeboxed plan (today + next 7 days). Include action_items."
	case ModeResume:
		return "Improve resume bullets based on user info/JD; provide 4-8 bullets and 3 fixes."
	case ModeInterview:
		return "Generate an interview prep set: 10 questions + what a strong answer includes."
	default: // auto: classifier was unsure, let the generation model decide
		return "Decide whether plan/resume/interview is best, then proceed."
	}
}

// formatHistory renders the trailing window of the conversation, oldest
// first, one line per turn.
func formatHistory(messages []ChatMessage) string {
	trimmed := messages
	if len(trimmed) > keepLastMessages {
		trimmed = trimmed[len(trimmed)-keepLastMessages:]
	}

	lines := make([]string, 0, len(trimmed))
	for _, m := range trimmed {
		role := "ASSISTANT"
		if m.Role == RoleUser {
			role = "USER"
		}
		lines = append(lines, role+": "+strings.TrimSpace(m.Content))
	}
	return strings.Join(lines, "\n")
}

func buildPrompt(mode Mode, history, latest string) string {
	return fmt.Sprintf(
		"%s\nMODE: %s\nMODE_INSTRUCTION: %s\n\nCONVERSATION_HISTORY:\n%s\n\nUSER_LATEST:\n%s\n",
		systemContext, mode, modeInstruction(mode), history, latest,
	)
}

func buildClassifyPrompt(latestUserText string) string {
	return "Classify the user's intent into one of: auto, plan, resume, interview.\n" +
		"Return the intent with confidence and a short rationale.\n\n" +
		"USER_MESSAGE:\n" + latestUserText
}
