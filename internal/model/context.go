package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated user ID through request contexts.
// The second return of Get reports whether a user ID was set at all.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
