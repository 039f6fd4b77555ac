package service

import "net/mail"

const (
	minPasswordLength = 8
	// bcrypt only reads the first 72 bytes and rejects anything longer.
	maxPasswordLength = 72
)

func validateSignUp(name, email, password string) map[string][]string {
	fields := map[string][]string{}

	if name == "" {
		fields["name"] = append(fields["name"], "Name is required")
	}
	appendCredentialErrors(fields, email, password)

	// GenerateFromPassword rejects anything past bcrypt's 72-byte limit, so
	// keep it out of the hasher. Sign-in has no cap: CompareHashAndPassword
	// tolerates long inputs and they simply never match a stored hash.
	if len(password) > maxPasswordLength {
		fields["password"] = append(fields["password"], "Password must be at most 72 characters long")
	}

	return fields
}

func validateSignIn(email, password string) map[string][]string {
	fields := map[string][]string{}
	appendCredentialErrors(fields, email, password)
	return fields
}

func appendCredentialErrors(fields map[string][]string, email, password string) {
	if email == "" {
		fields["email"] = append(fields["email"], "Email is required")
	} else if !validEmail(email) {
		fields["email"] = append(fields["email"], "Invalid email address")
	}

	if len(password) < minPasswordLength {
		fields["password"] = append(fields["password"], "Password must be at least 8 characters long")
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	// Reject the "Name <addr>" form: only the bare address is a valid login.
	return err == nil && addr.Address == email
}
