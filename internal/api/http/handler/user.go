package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierrors"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// UserService defines the read operations the user endpoints depend on.
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.PublicUser, error)
}

// User handles HTTP endpoints for user records.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Me returns the authenticated user. The token may outlive the record, so a
// missing user is a 404, not a 500.
func (h *User) Me(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		writeError(c, h.logger, apierrors.NewMissingAuthToken())
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetByID returns the public view of the requested user.
func (h *User) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, apierrors.NewUserNotFound())
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
