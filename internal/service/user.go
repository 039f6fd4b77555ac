package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierrors"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// User serves read operations on user records for authenticated requests.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{userStore: userStore, logger: logger}
}

// GetByID returns the public view of a user. A valid access token does not
// guarantee the record still exists, so absence maps to a not-found error
// rather than an internal one.
func (u *User) GetByID(ctx context.Context, id uuid.UUID) (model.PublicUser, error) {
	user, err := u.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		u.logger.Info("User service: user not found", "user_id", id)
		return model.PublicUser{}, apierrors.NewUserNotFound()
	}
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.Public(), nil
}
