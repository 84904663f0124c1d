package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// Logger emits one structured line per handled request
func Logger(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		c.Next()

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		logger.Info("Request handled", fields)
	}
}
