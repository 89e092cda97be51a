package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError aborts the request with {"error": message}.
func RespondWithError(c *gin.Context, logger *zap.Logger, status int, message string) {
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.String("path", c.Request.URL.Path), zap.Int("status", status))
	} else {
		logger.Warn(message, zap.String("path", c.Request.URL.Path), zap.Int("status", status))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// ErrorHandler recovers from panics in handlers and answers 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}
