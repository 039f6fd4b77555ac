package model

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSessionConsumed indicates the session was already rotated or
	// deleted by a concurrent request.
	ErrSessionConsumed = errors.New("session already consumed")
)
