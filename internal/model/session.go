package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore defines persistence operations for refresh-token sessions.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	// Rotate atomically deletes the session identified by oldID and inserts
	// next. It returns ErrSessionConsumed when oldID no longer exists, so a
	// concurrent refresh using the same token loses cleanly.
	Rotate(ctx context.Context, oldID uuid.UUID, next Session) error
	Revoke(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// Session binds a refresh token to a user. A session leaves the active state
// either by revocation (sign-out, row kept for audit) or by deletion
// (rotation, expiry cleanup); it never returns to active.
type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RefreshToken string
	UserAgent    string
	IPAddress    string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	Revoked      bool
}

// ClientInfo carries optional request metadata recorded on the session.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
