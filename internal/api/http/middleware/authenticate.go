package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierrors"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// TokenVerifier resolves user IDs from access tokens.
type TokenVerifier interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the user ID into the
// request context. A missing token and an invalid one are distinct failures:
// 401 asks the client to authenticate, 403 tells it the credential is bad.
type Authenticate struct {
	verifier       TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handle is the gin middleware entry point.
func (m *Authenticate) Handle(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		err := apierrors.NewMissingAuthToken()
		c.AbortWithStatusJSON(err.Status, gin.H{"message": err.Message})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	userID, err := m.authenticateUser(c.Request.Context(), tokenString)
	if err != nil {
		m.logger.Info("Authenticate middleware: rejected token", "error", err.Error())
		apiErr := apierrors.NewInvalidAuthToken()
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"message": apiErr.Message})
		return
	}

	ctx := m.contextManager.SetUserIDToContext(c.Request.Context(), userID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func (m *Authenticate) authenticateUser(_ context.Context, tokenString string) (uuid.UUID, error) {
	userID, err := m.verifier.ParseAccessToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	if userID == uuid.Nil {
		return uuid.Nil, apierrors.NewInvalidAuthToken()
	}

	return userID, nil
}
