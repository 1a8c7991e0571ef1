package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response. Code is stable and
// machine-readable; Message is safe to show to end users.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// requestLogger prefers the request-scoped logger stored under "logger".
func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}

// ErrorHandler recovers panics in later handlers and answers 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestLogger(c).Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.FullPath()),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Code:    "internal",
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends an uncoded error response.
func JSONError(c *gin.Context, status int, message string, details string) {
	logResponse(c, status, "", message)
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// JSONCodedError sends an error response with a code the client can switch on.
func JSONCodedError(c *gin.Context, status int, code, message string) {
	logResponse(c, status, code, message)
	c.JSON(status, ErrorResponse{Code: code, Message: message})
}

func logResponse(c *gin.Context, status int, code, message string) {
	fields := []zap.Field{zap.Int("status", status), zap.String("path", c.FullPath())}
	if code != "" {
		fields = append(fields, zap.String("code", code))
	}
	if status >= http.StatusInternalServerError {
		requestLogger(c).Warn(message, fields...)
		return
	}
	requestLogger(c).Debug(message, fields...)
}
