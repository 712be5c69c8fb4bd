package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/placementsprint/sprintd/errors"
	"github.com/placementsprint/sprintd/llm"
	"github.com/placementsprint/sprintd/observability"
)

// intentConfidenceFloor is the inclusive threshold above which the
// classifier's verdict replaces auto mode.
const intentConfidenceFloor = 0.55

// FallbackWarning is appended to Warnings when the response came from the
// fallback model.
const FallbackWarning = "Primary model failed; response generated with fallback model."

// Orchestrator is the composition root: four model handles built once at
// startup, read-only afterwards, shared by every request. It holds no
// per-request state and is safe for concurrent use.
type Orchestrator struct {
	intentClients llm.Pair
	mainClients   llm.Pair

	maxAttempts int
	sleep       sleepFunc
}

// New wires an orchestrator from one client pair per concern.
func New(intentClients, mainClients llm.Pair) *Orchestrator {
	return &Orchestrator{
		intentClients: intentClients,
		mainClients:   mainClients,
		maxAttempts:   defaultMaxAttempts,
		sleep:         sleepBetween,
	}
}

// ClassifyIntent asks the model to classify the latest user message into a
// mode. The primary client is retried to exhaustion, then the fallback gets
// one retried run of its own; the fallback's final error propagates.
func (o *Orchestrator) ClassifyIntent(ctx context.Context, latestUserText string) (Intent, error) {
	prompt := buildClassifyPrompt(latestUserText)
	intent, _, err := generate(ctx, o, o.intentClients, prompt, intentSchema(), DecodeIntent)
	return intent, err
}

// Respond resolves the mode, assembles the prompt and returns a validated
// response from the primary model, falling back once on exhaustion.
func (o *Orchestrator) Respond(ctx context.Context, messages []ChatMessage, mode Mode) (AgentResponse, error) {
	if len(messages) == 0 || messages[len(messages)-1].Role != RoleUser {
		return AgentResponse{}, errors.New(errors.KindInvalidRequest, "last message must be from the user")
	}

	history := formatHistory(messages)
	latest := strings.TrimSpace(messages[len(messages)-1].Content)

	resolved := mode
	if mode == ModeAuto {
		intent, err := o.ClassifyIntent(ctx, latest)
		if err != nil {
			return AgentResponse{}, err
		}
		// Below the floor the mode stays auto and the prompt tells the model
		// to decide for itself.
		if intent.Confidence >= intentConfidenceFloor {
			resolved = intent.Intent
		}
	}

	prompt := buildPrompt(resolved, history, latest)
	resp, usedFallback, err := generate(ctx, o, o.mainClients, prompt, responseSchema(), DecodeResponse)
	if err != nil {
		return AgentResponse{}, err
	}
	if usedFallback {
		resp.Warnings = append(resp.Warnings, FallbackWarning)
	}
	return resp, nil
}

// generate runs one retried generation+validation loop against the primary
// client and, if that exhausts its attempts, one more against the fallback.
// The bool reports whether the fallback produced the value.
func generate[T any](ctx context.Context, o *Orchestrator, clients llm.Pair, prompt string, schema llm.Schema, decode func(json.RawMessage) (T, error)) (T, bool, error) {
	var zero T
	log := observability.LoggerFromContext(ctx).With("schema", schema.Name)

	attempt := func(c llm.Client) func(context.Context) (T, error) {
		return func(ctx context.Context) (T, error) {
			raw, err := c.Generate(ctx, prompt, schema)
			if err != nil {
				return zero, err
			}
			return decode(raw)
		}
	}

	v, err := runRetries(ctx, log.With("model", "primary"), o.sleep, o.maxAttempts, attempt(clients.Primary))
	if err == nil {
		return v, false, nil
	}
	if ctx.Err() != nil {
		return zero, false, err
	}

	log.Error("primary model exhausted; switching to fallback", "error", err)
	v, err = runRetries(ctx, log.With("model", "fallback"), o.sleep, o.maxAttempts, attempt(clients.Fallback))
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}
