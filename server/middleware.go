package server

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/placementsprint/sprintd/observability"
)

// requestIDMiddleware honors an inbound X-Request-Id, generates one
// otherwise, and threads it through the request context and response header.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}

		ctx := observability.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-Id", id)

		c.Next()
	}
}
