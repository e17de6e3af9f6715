package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// errInvalidBody is raised when a request body fails to decode.
var errInvalidBody = errors.New("Invalid request body")

// abortWithError records an error for the centralized error middleware,
// optionally pre-setting the response status. Status 0 leaves the choice to
// the middleware, which falls back to 500.
func abortWithError(c *gin.Context, status int, err error) {
	if status > 0 {
		c.Status(status)
	}
	_ = c.Error(err)
	c.Abort()
}
