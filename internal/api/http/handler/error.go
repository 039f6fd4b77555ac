package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/authkeeper/internal/apierrors"
	"github.com/dtroode/authkeeper/internal/logger"
)

// writeError renders an API error as JSON. Unclassified errors become a
// generic 500; their details are logged, never returned to the client.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"message": apiErr.Message}
		if len(apiErr.Fields) > 0 {
			body["errors"] = apiErr.Fields
		}
		c.JSON(apiErr.Status, body)
		return
	}

	log.Error("HTTP handler: internal error",
		"path", c.FullPath(),
		"error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
