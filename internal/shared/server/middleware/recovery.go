package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

// Recovery answers a panicking handler with 500 internal_error and logs the stack
// through telemetry. Broken client connections are left to gin and not logged.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		span := trace.SpanFromContext(c.Request.Context())
		span.SetStatus(codes.Error, "panic")
		span.RecordError(fmt.Errorf("panic: %v", rec))

		telemetry.Error("http.panic", map[string]any{
			"request_id": RequestIDFromContext(c),
			"method":     c.Request.Method,
			"route":      c.FullPath(),
			"panic":      fmt.Sprint(rec),
			"stack":      string(debug.Stack()),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
		c.Abort()
	})
}
