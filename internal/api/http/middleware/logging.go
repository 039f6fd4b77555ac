package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/authkeeper/internal/logger"
)

// Logging logs HTTP requests and their results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()

	l.logger.Debug("HTTP request started",
		"method", c.Request.Method,
		"path", c.Request.URL.Path)

	c.Next()

	duration := time.Since(start)

	l.logger.Info("HTTP request completed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", duration.Milliseconds())
}
