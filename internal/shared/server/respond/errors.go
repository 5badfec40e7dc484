package respond

import (
	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/telemetry"
)

// ErrorResponse is the error body shared by every endpoint.
type ErrorResponse struct {
	Error  string  `json:"error"`
	Detail string  `json:"detail,omitempty"`
	Raw    *string `json:"raw,omitempty"`
}

// Error sends an error response and logs it.
func Error(c *gin.Context, status int, message, detail string) {
	abort(c, status, ErrorResponse{Error: message, Detail: detail})
}

// ErrorWithRaw sends an error response that carries the offending model
// output so callers can inspect it.
func ErrorWithRaw(c *gin.Context, status int, message, detail, raw string) {
	abort(c, status, ErrorResponse{Error: message, Detail: detail, Raw: &raw})
}

func abort(c *gin.Context, status int, body ErrorResponse) {
	fields := map[string]any{
		"status":     status,
		"message":    body.Error,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if body.Detail != "" {
		fields["detail"] = body.Detail
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, body)
}
