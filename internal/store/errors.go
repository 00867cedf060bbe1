package store

import (
	"errors"
	"fmt"
)

// ErrCodec is the category of every failure to read an encrypted container.
// Callers should use [errors.Is] to match against it or one of the specific
// errors below.
var ErrCodec = errors.New("encrypted container error")

var (
	// ErrTruncatedHeader is returned when the file is shorter than the magic
	// tag.
	ErrTruncatedHeader = fmt.Errorf("%w: truncated header", ErrCodec)

	// ErrBadMagic is returned when the magic tag does not match, either
	// because the file is not a container or because its version is
	// unknown.
	ErrBadMagic = fmt.Errorf("%w: bad magic", ErrCodec)

	// ErrTruncatedNonce is returned when the file ends inside the nonce.
	ErrTruncatedNonce = fmt.Errorf("%w: truncated nonce", ErrCodec)

	// ErrCiphertextTooShort is returned when the remaining bytes cannot even
	// hold the authentication tag.
	ErrCiphertextTooShort = fmt.Errorf("%w: ciphertext shorter than authentication tag", ErrCodec)

	// ErrAuthenticationFailed is returned when AEAD verification fails: the
	// key is wrong or the file was tampered with. It is never returned for a
	// missing file.
	ErrAuthenticationFailed = fmt.Errorf("%w: authentication failed", ErrCodec)
)

// Credential file errors.
var (
	// ErrMalformedCredentials is returned when the credential file cannot be
	// parsed.
	ErrMalformedCredentials = errors.New("malformed credential file")
)

// Low-level database operation errors of the meta repository.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning a result row fails.
	ErrScanningRows = errors.New("failed to scan meta rows")
)
