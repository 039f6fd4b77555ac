package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `
        INSERT INTO sessions (
            id, user_id, refresh_token, user_agent, ip_address, expires_at, created_at, revoked
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `

	_, err := r.db.Exec(ctx, query,
		session.ID, session.UserID, session.RefreshToken,
		session.UserAgent, session.IPAddress,
		session.ExpiresAt, session.CreatedAt, session.Revoked,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Session, error) {
	const query = `
        SELECT id, user_id, refresh_token, user_agent, ip_address, expires_at, created_at, revoked
        FROM sessions WHERE id = $1
    `
	var s model.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.RefreshToken, &s.UserAgent, &s.IPAddress,
		&s.ExpiresAt, &s.CreatedAt, &s.Revoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by id: %w", err)
	}
	return s, nil
}

// Rotate consumes the old session and inserts its replacement in one
// transaction. The delete's affected-row count gates the insert, so of two
// concurrent refreshes presenting the same token exactly one commits.
func (r *SessionRepository) Rotate(ctx context.Context, oldID uuid.UUID, next model.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, oldID)
	if err != nil {
		return fmt.Errorf("failed to delete rotated session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSessionConsumed
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO sessions (
            id, user_id, refresh_token, user_agent, ip_address, expires_at, created_at, revoked
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		next.ID, next.UserID, next.RefreshToken,
		next.UserAgent, next.IPAddress,
		next.ExpiresAt, next.CreatedAt, next.Revoked,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rotated session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rotation: %w", err)
	}
	return nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE sessions SET revoked = TRUE WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at < $1`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `UPDATE sessions SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions by user: %w", err)
	}
	return nil
}
