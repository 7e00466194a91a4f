// Package stub serves a local stand-in for the agent flow endpoint.
// It speaks the same request and response shape as the real service so the
// client can be exercised end to end without network access.
package stub

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"agentbuddy/pkg/agent"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/sjson"
)

// Responder produces the reply text for one request.
type Responder interface {
	Respond(ctx context.Context, req agent.RunRequest) (string, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, req agent.RunRequest) (string, error)

// Respond calls f.
func (f ResponderFunc) Respond(ctx context.Context, req agent.RunRequest) (string, error) {
	return f(ctx, req)
}

// Echo replies with the input the way the hosted flow tends to: wrapped in
// quotes with escaped newlines.
var Echo = ResponderFunc(func(_ context.Context, req agent.RunRequest) (string, error) {
	text := strings.ReplaceAll(req.InputValue, "\n", `\n`)
	return fmt.Sprintf(`"You said: %s"`, text), nil
})

// Options configures the stub router.
type Options struct {
	// APIKey, when set, must match the x-api-key header.
	APIKey    string
	Responder Responder
}

// NewRouter builds the gin engine for the stub endpoint.
func NewRouter(opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	responder := opts.Responder
	if responder == nil {
		responder = Echo
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.POST("/api/v1/run/:flow", func(c *gin.Context) {
		if opts.APIKey != "" {
			got := c.GetHeader("x-api-key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(opts.APIKey)) != 1 {
				c.JSON(http.StatusForbidden, gin.H{"detail": "invalid or missing x-api-key"})
				return
			}
		}

		var req agent.RunRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if req.InputType != "chat" || req.OutputType != "chat" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "only chat input and output are supported"})
			return
		}

		reply, err := responder.Respond(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		body, err := RunResponse(req.SessionID, c.Param("flow"), reply)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	})

	return router
}

// RunResponse builds a response body carrying reply at agent.ReplyPath.
func RunResponse(sessionID, flow, reply string) ([]byte, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"session_id", sessionID},
		{"outputs.0.inputs.input_value", ""},
		{"outputs.0.outputs.0.flow", flow},
		{agent.ReplyPath, reply},
		{"outputs.0.outputs.0.messages.0.sender", "Machine"},
	}

	body := []byte(`{}`)
	for _, f := range fields {
		var err error
		if body, err = sjson.SetBytes(body, f.path, f.value); err != nil {
			return nil, fmt.Errorf("set %s: %w", f.path, err)
		}
	}
	return body, nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		slog.Debug("stub_request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
		)
	}
}
