package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LoggingMiddleware logs basic request/response details and injects a
// request_id into context.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Generate request ID
		requestID := uuid.New().String()[:8]
		c.Set("request_id", requestID)

		// Process request
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		evt := log.Info()
		if status >= 500 {
			evt = log.Error()
		}
		evt.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str("user_id", c.GetString("user_id")).
			Msg("HTTP Request")
	}
}
