package crypto

import "errors"

var (
	// ErrKeyDerivation is returned when Argon2id cannot produce a key, for
	// example because of an invalid salt or an allocation failure.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrMalformedHash is returned when a stored password hash cannot be
	// parsed.
	ErrMalformedHash = errors.New("malformed password hash")

	// ErrInvalidKey is returned when a key has the wrong length.
	ErrInvalidKey = errors.New("invalid key length")

	// ErrDecryption is returned when AEAD verification fails.
	ErrDecryption = errors.New("message authentication failed")
)
