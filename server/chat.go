package server

import (
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/placementsprint/sprintd/agent"
	"github.com/placementsprint/sprintd/errors"
	"github.com/placementsprint/sprintd/observability"
)

const (
	maxMessages   = 30
	maxTotalChars = 24000
)

type chatRequest struct {
	Mode     string              `json:"mode"`
	Messages []agent.ChatMessage `json:"messages"`
}

func handleChat(orch *agent.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		log := observability.LoggerFromContext(ctx)

		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		if req.Mode == "" {
			req.Mode = "auto"
		}
		mode, err := agent.ParseMode(req.Mode)
		if err != nil {
			badRequest(c, "mode must be one of auto, plan, resume, interview")
			return
		}
		if len(req.Messages) < 1 || len(req.Messages) > maxMessages {
			badRequest(c, fmt.Sprintf("messages must contain 1 to %d entries", maxMessages))
			return
		}

		totalChars := 0
		for _, m := range req.Messages {
			if err := m.Validate(); err != nil {
				badRequest(c, "each message needs role user|assistant and content of 1 to 8000 chars")
				return
			}
			totalChars += utf8.RuneCountInString(m.Content)
		}
		if req.Messages[len(req.Messages)-1].Role != agent.RoleUser {
			badRequest(c, "Last message must be role='user'.")
			return
		}
		if totalChars > maxTotalChars {
			c.JSON(http.StatusRequestEntityTooLarge, apiError{
				Error:     "payload_too_large",
				Detail:    "Message history too large. Keep it shorter.",
				RequestID: observability.RequestID(ctx),
			})
			return
		}

		out, err := orch.Respond(ctx, req.Messages, mode)
		if err != nil {
			// The orchestrator re-checks the history contract; everything else
			// is a provider-side failure surfaced opaquely.
			if errors.HasKind(err, errors.KindInvalidRequest) {
				badRequest(c, "Last message must be role='user'.")
				return
			}
			log.Error("chat failed", "error", err)
			c.JSON(http.StatusBadGateway, apiError{
				Error:     "provider_error",
				Detail:    "Model/provider error. Try again.",
				RequestID: observability.RequestID(ctx),
			})
			return
		}

		log.Info("chat ok", "mode", req.Mode, "ms", time.Since(start).Milliseconds())
		c.JSON(http.StatusOK, out)
	}
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, apiError{
		Error:     "bad_request",
		Detail:    detail,
		RequestID: observability.RequestID(c.Request.Context()),
	})
}
