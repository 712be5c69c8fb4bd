// Package server is the HTTP boundary: request validation, resume uploads,
// static frontend serving and the opaque error shape. All model work is
// delegated to the agent orchestrator.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/placementsprint/sprintd/agent"
	"github.com/placementsprint/sprintd/observability"
)

// Options holds everything the server needs; the orchestrator is built once
// at startup and shared across requests.
type Options struct {
	Orchestrator *agent.Orchestrator
	Port         int
	PublicDir    string
}

// apiError is the only error shape returned to clients. No internal detail
// ever leaks through it.
type apiError struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// New builds the router. Split from Start so tests can drive it with httptest.
func New(opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.CustomRecoveryWithWriter(nil, handlePanic))

	api := router.Group("/api")
	api.GET("/health", handleHealth)
	api.POST("/chat", handleChat(opts.Orchestrator))
	api.POST("/upload_resume", handleUploadResume())

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/index.html")
	})
	if opts.PublicDir != "" {
		if _, err := os.Stat(opts.PublicDir); err == nil {
			registerStatic(router, opts.PublicDir)
		}
	}

	return router
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, opts Options) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: New(opts),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	observability.Logger().Info("listening", "port", opts.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// registerStatic serves the frontend for everything outside /api.
func registerStatic(router *gin.Engine, dir string) {
	fs := http.FileServer(http.Dir(dir))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, apiError{Error: "not_found", RequestID: observability.RequestID(c.Request.Context())})
			return
		}
		fs.ServeHTTP(c.Writer, c.Request)
	})
}

func handlePanic(c *gin.Context, recovered any) {
	ctx := c.Request.Context()
	observability.LoggerFromContext(ctx).Error("unhandled panic", "panic", recovered, "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
		Error:     "internal_error",
		Detail:    "Something went wrong. Check logs and try again.",
		RequestID: observability.RequestID(ctx),
	})
}
