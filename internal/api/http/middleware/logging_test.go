package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/authkeeper/internal/logger"
)

func TestLogging_RecordsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))}

	engine := gin.New()
	engine.Use(NewLogging(log).Handle)
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(rec, req)

	out := buf.String()
	assert.Contains(t, out, "HTTP request completed")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/ping")
	assert.Contains(t, out, "status=204")
}
