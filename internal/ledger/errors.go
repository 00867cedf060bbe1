package ledger

import (
	"errors"
	"fmt"
)

// ErrData is the category of malformed serialized item records.
var ErrData = errors.New("malformed item record")

var (
	// ErrTruncatedRecord is returned when the input ends inside a record.
	ErrTruncatedRecord = fmt.Errorf("%w: truncated record", ErrData)

	// ErrBadField is returned when a numeric or timestamp field cannot be
	// parsed or is out of range.
	ErrBadField = fmt.Errorf("%w: bad field", ErrData)

	// ErrBadHistory is returned for a history line without exactly three
	// fields or with an invalid quality.
	ErrBadHistory = fmt.Errorf("%w: bad history entry", ErrData)

	// ErrMissingSeparator is returned when a record is not closed by "---".
	ErrMissingSeparator = fmt.Errorf("%w: missing record separator", ErrData)
)

var (
	// ErrDuplicateID is returned when an item with the same ID is already
	// present in the ledger.
	ErrDuplicateID = errors.New("duplicate item id")

	// ErrItemNotFound is returned when no item has the requested ID.
	ErrItemNotFound = errors.New("item not found")
)
