// Package apierrors defines the error taxonomy surfaced by the API layer.
// Services return these; the HTTP error mapper renders status and payload.
package apierrors

import "net/http"

// APIError carries an HTTP status, a human-readable message, and optional
// per-field detail for validation-style failures.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewValidation reports malformed input with per-field messages.
func NewValidation(fields map[string][]string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewEmailTaken reports a sign-up attempt with an already registered email.
func NewEmailTaken() *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Message: "User already exists",
		Fields:  map[string][]string{"email": {"Email is already taken"}},
	}
}

// NewInvalidCredentials reports a failed sign-in. The whole payload is
// identical for unknown email and wrong password so the response does not
// reveal whether the email exists.
func NewInvalidCredentials() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: "Invalid email or password",
		Fields: map[string][]string{
			"email":    {"Invalid email or password"},
			"password": {"Invalid email or password"},
		},
	}
}

// NewRefreshTokenMissing reports a refresh attempt without the cookie.
func NewRefreshTokenMissing() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: "Refresh token missing",
	}
}

// NewSessionInvalid reports a refresh token that failed verification or whose
// session is absent, mismatched, revoked, or expired. A reused rotated token
// produces the same error as a forged one.
func NewSessionInvalid() *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Message: "Invalid or expired session",
	}
}

// NewMissingAuthToken reports a protected request without a bearer token.
func NewMissingAuthToken() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: "Missing authorization token",
	}
}

// NewInvalidAuthToken reports a bearer token that failed verification.
func NewInvalidAuthToken() *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Message: "Invalid or expired token",
	}
}

// NewUserNotFound reports a user record that vanished after token issuance.
func NewUserNotFound() *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Message: "User not found",
	}
}
