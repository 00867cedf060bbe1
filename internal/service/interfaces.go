package service

import "context"

// AuthService manages the credential store and opens sessions.
type AuthService interface {
	// Signup creates a credential record and persists the store. It does
	// not log the user in.
	Signup(ctx context.Context, username, password string) error

	// Login verifies the password, derives the session key and loads the
	// user's data into a new session.
	Login(ctx context.Context, username, password string) (*Session, error)

	// Logout saves the session and zeroes its key.
	Logout(ctx context.Context, session *Session) error
}
