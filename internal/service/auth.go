package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierrors"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// Auth orchestrates sign-up, sign-in, refresh rotation, sign-out, and
// expired-session cleanup against the user and session stores.
type Auth struct {
	userStore    model.UserStore
	sessionStore model.SessionStore
	tokenManager model.TokenManager
	hasher       model.PasswordHasher
	refreshTTL   time.Duration
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	sessionStore model.SessionStore,
	tokenManager model.TokenManager,
	hasher model.PasswordHasher,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		sessionStore: sessionStore,
		tokenManager: tokenManager,
		hasher:       hasher,
		refreshTTL:   refreshTTL,
		logger:       logger,
	}
}

// TokenPair carries the result of an operation that issues credentials.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SignUp validates inputs, rejects duplicate emails, and creates the user.
func (a *Auth) SignUp(ctx context.Context, name, email, password string) (model.PublicUser, error) {
	a.logger.Debug("Auth service: starting sign-up", "email", email)

	if fields := validateSignUp(name, email, password); len(fields) > 0 {
		return model.PublicUser{}, apierrors.NewValidation(fields)
	}

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: email already registered", "email", email)
		return model.PublicUser{}, apierrors.NewEmailTaken()
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user created", "user_id", user.ID)

	return user.Public(), nil
}

// SignIn verifies credentials and opens a new session. The error for an
// unknown email and for a wrong password is the same so the caller cannot
// probe which emails are registered.
func (a *Auth) SignIn(ctx context.Context, email, password string, client model.ClientInfo) (model.PublicUser, TokenPair, error) {
	a.logger.Debug("Auth service: starting sign-in", "email", email)

	if fields := validateSignIn(email, password); len(fields) > 0 {
		return model.PublicUser{}, TokenPair{}, apierrors.NewValidation(fields)
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.PublicUser{}, TokenPair{}, apierrors.NewInvalidCredentials()
	}
	if err != nil {
		return model.PublicUser{}, TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return model.PublicUser{}, TokenPair{}, apierrors.NewInvalidCredentials()
	}

	pair, err := a.openSession(ctx, user.ID, client)
	if err != nil {
		return model.PublicUser{}, TokenPair{}, err
	}

	a.logger.Info("Auth service: sign-in completed", "user_id", user.ID)

	return user.Public(), pair, nil
}

// Refresh rotates the presented refresh token: the old session row is
// consumed and a fresh session with new tokens takes its place. A consumed,
// revoked, expired, or tampered token yields the same authentication error.
func (a *Auth) Refresh(ctx context.Context, presented string, client model.ClientInfo) (TokenPair, error) {
	userID, sessionID, err := a.tokenManager.ParseRefreshToken(presented)
	if err != nil {
		a.logger.Info("Auth service: refresh token failed verification", "error", err.Error())
		return TokenPair{}, apierrors.NewSessionInvalid()
	}

	session, err := a.sessionStore.GetByID(ctx, sessionID)
	if errors.Is(err, model.ErrNotFound) {
		return TokenPair{}, apierrors.NewSessionInvalid()
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to get session: %w", err)
	}

	if session.RefreshToken != presented || session.Revoked || session.ExpiresAt.Before(time.Now()) {
		// The row exists but no longer backs a usable token. Drop it so a
		// replayed or tampered token cannot be retried against it.
		if err := a.sessionStore.Delete(ctx, sessionID); err != nil {
			a.logger.Error("Auth service: failed to delete stale session",
				"session_id", sessionID,
				"error", err.Error())
		}
		return TokenPair{}, apierrors.NewSessionInvalid()
	}

	newSessionID := uuid.New()
	newRefresh, err := a.tokenManager.GenerateRefreshToken(userID, newSessionID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := time.Now()
	err = a.sessionStore.Rotate(ctx, sessionID, model.Session{
		ID:           newSessionID,
		UserID:       userID,
		RefreshToken: newRefresh,
		UserAgent:    client.UserAgent,
		IPAddress:    client.IPAddress,
		ExpiresAt:    now.Add(a.refreshTTL),
		CreatedAt:    now,
	})
	if errors.Is(err, model.ErrSessionConsumed) {
		// A concurrent refresh won the rotation; this token is spent.
		return TokenPair{}, apierrors.NewSessionInvalid()
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to rotate session: %w", err)
	}

	access, err := a.tokenManager.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	a.logger.Info("Auth service: session rotated",
		"user_id", userID,
		"session_id", newSessionID)

	return TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

// SignOut revokes the session behind the presented refresh token. It is
// best-effort: a missing or unverifiable token means the caller is already
// logged out, and store failures are logged without surfacing.
func (a *Auth) SignOut(ctx context.Context, presented string) {
	if presented == "" {
		return
	}

	_, sessionID, err := a.tokenManager.ParseRefreshToken(presented)
	if err != nil {
		a.logger.Info("Auth service: sign-out token failed verification", "error", err.Error())
		return
	}

	if err := a.sessionStore.Revoke(ctx, sessionID); err != nil {
		a.logger.Error("Auth service: failed to revoke session",
			"session_id", sessionID,
			"error", err.Error())
		return
	}

	a.logger.Info("Auth service: session revoked", "session_id", sessionID)
}

// CleanupExpiredSessions deletes all sessions past their expiry and returns
// the number of rows removed. Running it again immediately deletes nothing.
func (a *Auth) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := a.sessionStore.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return deleted, nil
}

func (a *Auth) openSession(ctx context.Context, userID uuid.UUID, client model.ClientInfo) (TokenPair, error) {
	sessionID := uuid.New()

	refresh, err := a.tokenManager.GenerateRefreshToken(userID, sessionID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := time.Now()
	err = a.sessionStore.Create(ctx, model.Session{
		ID:           sessionID,
		UserID:       userID,
		RefreshToken: refresh,
		UserAgent:    client.UserAgent,
		IPAddress:    client.IPAddress,
		ExpiresAt:    now.Add(a.refreshTTL),
		CreatedAt:    now,
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to create session: %w", err)
	}

	access, err := a.tokenManager.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
