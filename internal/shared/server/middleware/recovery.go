package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 envelope. A panic on an
// export route also counts as a failed render for that format.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			format := c.GetString(ExportFormatKey)
			if format != "" {
				metrics.IncRenderFailed(format)
			}
			telemetry.Error("panic", map[string]any{
				"request_id":    RequestIDFromContext(c),
				"error":         rec,
				"stack":         string(debug.Stack()),
				"method":        c.Request.Method,
				"path":          c.Request.URL.Path,
				"route":         c.FullPath(),
				"resume_id":     c.GetString(ResumeIDKey),
				"export_format": format,
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
			c.Abort()
		}()
		c.Next()
	}
}
