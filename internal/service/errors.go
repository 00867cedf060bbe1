package service

import (
	"errors"
	"fmt"
)

// ErrAuth is the category of every signup and login failure.
var ErrAuth = errors.New("authentication error")

var (
	ErrEmptyCredentials  = fmt.Errorf("%w: username and password are required", ErrAuth)
	ErrInvalidUsername   = fmt.Errorf("%w: invalid username", ErrAuth)
	ErrDuplicateUsername = fmt.Errorf("%w: username already exists", ErrAuth)
	ErrUnknownUser       = fmt.Errorf("%w: unknown user", ErrAuth)
	ErrWrongPassword     = fmt.Errorf("%w: wrong password", ErrAuth)
	ErrCorruptCredential = fmt.Errorf("%w: stored credential is corrupt", ErrAuth)

	// ErrKeyDerivationFailed means hashing or key derivation could not run,
	// typically for lack of memory. It says nothing about whether the
	// password was right.
	ErrKeyDerivationFailed = fmt.Errorf("%w: key derivation failed", ErrAuth)
)

var (
	ErrSessionClosed = errors.New("session is closed")
	ErrInvalidItem   = errors.New("invalid item")
)
