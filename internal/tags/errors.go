package tags

import (
	"errors"
	"fmt"
)

// ErrData is the category of malformed serialized tag-weight records.
// Malformed lines are skipped on load; the error is only reported through
// ParseLine for callers that want per-line diagnostics.
var ErrData = errors.New("malformed tag weight record")

// ErrInvalidTag is returned by SetWeight for a tag containing a line break.
var ErrInvalidTag = errors.New("tag must not contain line breaks")

var (
	// ErrMissingSeparator is returned for a line without ':'.
	ErrMissingSeparator = fmt.Errorf("%w: missing ':' separator", ErrData)

	// ErrEmptyTag is returned for a line whose tag part is blank.
	ErrEmptyTag = fmt.Errorf("%w: empty tag", ErrData)

	// ErrInvalidWeight is returned when the weight is not an integer >= 1.
	ErrInvalidWeight = fmt.Errorf("%w: weight must be an integer >= 1", ErrData)
)
