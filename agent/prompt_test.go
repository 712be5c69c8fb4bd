package agent

import (
	"fmt"
	"strings"
	"testing"
)

func TestFormatHistoryWindow(t *testing.T) {
	var messages []ChatMessage
	for i := 1; i <= 20; i++ {
		role := RoleUser
		if i%2 == 0 {
			role = RoleAssistant
		}
		messages = append(messages, ChatMessage{Role: role, Content: fmt.Sprintf("  message %d  ", i)})
	}

	got := formatHistory(messages)
	lines := strings.Split(got, "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}

	// Oldest surviving turn is message 9; order preserved.
	if lines[0] != "USER: message 9" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[11] != "ASSISTANT: message 20" {
		t.Errorf("last line = %q", lines[11])
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "USER: ") && !strings.HasPrefix(line, "ASSISTANT: ") {
			t.Errorf("line missing role prefix: %q", line)
		}
		if strings.Contains(line, "  ") {
			t.Errorf("line not trimmed: %q", line)
		}
	}
}

func TestFormatHistoryShort(t *testing.T) {
	got := formatHistory([]ChatMessage{{Role: RoleUser, Content: "hi"}})
	if got != "USER: hi" {
		t.Fatalf("unexpected history %q", got)
	}
}

func TestBuildPromptLayout(t *testing.T) {
	prompt := buildPrompt(ModePlan, "USER: I have 7 days", "I have 7 days")

	for _, want := range []string{
		"You are PlacementSprint",
		"MODE: plan\n",
		"MODE_INSTRUCTION: Generate a timeboxed plan",
		"CONVERSATION_HISTORY:\nUSER: I have 7 days",
		"USER_LATEST:\nI have 7 days",
		"RESUME_CONTEXT:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestModeInstructionAutoLetsModelDecide(t *testing.T) {
	got := modeInstruction(ModeAuto)
	if !strings.Contains(got, "Decide whether plan/resume/interview") {
		t.Fatalf("unexpected auto instruction %q", got)
	}
}

func TestBuildClassifyPrompt(t *testing.T) {
	prompt := buildClassifyPrompt("fix my resume")
	if !strings.Contains(prompt, "one of: auto, plan, resume, interview") {
		t.Error("classification options missing")
	}
	if !strings.HasSuffix(prompt, "USER_MESSAGE:\nfix my resume") {
		t.Errorf("user message not embedded: %q", prompt)
	}
}
