package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// errorBody is the failure envelope every client sees: a message, plus a
// stack trace outside production.
type errorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// ErrorHandler is the single centralized error formatter. Handlers do not
// write their own failure responses; they attach an error to the context
// (optionally pre-setting a status) and return. This middleware formats the
// JSON body and picks the status already on the response, defaulting to 500
// when none was set. The process never dies on a request-level error.
func ErrorHandler(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}

		body := errorBody{Message: err.Error()}
		if env != "production" {
			body.Stack = string(debug.Stack())
		}

		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", c.GetString("request_id")).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}

		c.JSON(status, body)
	}
}
