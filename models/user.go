package models

import "time"

// User is a credential record of the local credential store.
// It holds no secret that allows decrypting user data on its own.
type User struct {
	// Username is the case-sensitive unique key of the record.
	Username string

	// PasswordHash is a self-describing Argon2id string that embeds the
	// algorithm, cost parameters and its own salt.
	PasswordHash string

	// KeySalt is the hex-encoded salt used to derive the session key.
	KeySalt string

	// CreatedAt is the moment of signup.
	CreatedAt time.Time
}
