package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/authkeeper/internal/apierrors"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/service"
)

// AuthService defines the session-management operations the auth endpoints
// depend on.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (model.PublicUser, error)
	SignIn(ctx context.Context, email, password string, client model.ClientInfo) (model.PublicUser, service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, client model.ClientInfo) (service.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string)
}

// Auth handles the HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	cookie      CookieConfig
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, cookie CookieConfig, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new user.
func (h *Auth) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apierrors.NewValidation(map[string][]string{
			"body": {"Invalid request body"},
		}))
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// SignIn verifies credentials, opens a session, and emits the refresh token
// as an HTTP-only cookie. The access token is the only token in the body.
func (h *Auth) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apierrors.NewValidation(map[string][]string{
			"body": {"Invalid request body"},
		}))
		return
	}

	user, pair, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	setRefreshCookie(c, h.cookie, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"accessToken": pair.AccessToken,
	})
}

// Refresh rotates the refresh-token cookie and returns a new access token.
func (h *Auth) Refresh(c *gin.Context) {
	presented := refreshTokenFromCookie(c)
	if presented == "" {
		writeError(c, h.logger, apierrors.NewRefreshTokenMissing())
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), presented, clientInfo(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	setRefreshCookie(c, h.cookie, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

// SignOut revokes the current session and clears the cookie. It succeeds
// even when the cookie is absent or invalid.
func (h *Auth) SignOut(c *gin.Context) {
	h.authService.SignOut(c.Request.Context(), refreshTokenFromCookie(c))

	clearRefreshCookie(c, h.cookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func clientInfo(c *gin.Context) model.ClientInfo {
	return model.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}
