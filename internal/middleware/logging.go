package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger returns a middleware that logs every HTTP request.
// It logs the method, route, status, user ID, and duration, picking the
// level from the response status class.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start).Milliseconds()
		status := c.Writer.Status()
		userID, _ := GetUserID(c) // zero if pre-auth

		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"user_id", userID,
			"duration_ms", duration,
		}

		switch {
		case status >= 500:
			slog.Error("request failed", attrs...)
		case status >= 400:
			slog.Warn("request rejected", attrs...)
		default:
			slog.Info("request ok", attrs...)
		}
	}
}
