package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle        = errors.New("title is required")
	ErrInvalidInterval   = errors.New("interval must be at least one day")
	ErrInvalidEaseFactor = errors.New("ease factor out of bounds")
	ErrInvalidTag        = errors.New("tag must not contain line breaks")
	ErrEmptyUsername     = errors.New("username is required")
	ErrEmptyPassword     = errors.New("password is required")
	ErrInvalidUsername   = errors.New("username must be a single line and not a record separator")
)
