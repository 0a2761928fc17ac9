package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is a middleware that logs errors and returns a JSON error response.
// Panics become a 500; an error status left without a body gets the last
// attached error's message.
func ErrorHandler(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Printf("Error: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		for _, err := range c.Errors {
			logger.Printf("Error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err.Err)
		}
		if c.Writer.Written() || c.Writer.Status() < http.StatusBadRequest {
			return
		}
		msg := http.StatusText(c.Writer.Status())
		if last := c.Errors.Last(); last != nil {
			msg = last.Error()
		}
		c.JSON(c.Writer.Status(), ErrorResponse{Error: msg})
	}
}
