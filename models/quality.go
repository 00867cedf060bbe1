package models

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidQuality is returned when a recall rating is outside Again..Easy.
var ErrInvalidQuality = errors.New("invalid review quality")

// Quality is the self-reported recall rating given for a single review.
// The numeric values are part of the on-disk history format.
type Quality int

const (
	// Again means the item was not recalled. It counts as a lapse.
	Again Quality = iota
	// Hard means the item was recalled with significant effort.
	Hard
	// Good means the item was recalled with some effort.
	Good
	// Easy means the item was recalled effortlessly.
	Easy
)

var qualityNames = [...]string{Again: "again", Hard: "hard", Good: "good", Easy: "easy"}

// IsValid reports whether q is one of Again, Hard, Good or Easy.
func (q Quality) IsValid() bool {
	return q >= Again && q <= Easy
}

// String returns the lower-case name of the rating.
func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality accepts either the rating name ("good") or its numeric
// value ("2").
func ParseQuality(s string) (Quality, error) {
	for i, name := range qualityNames {
		if s == name {
			return Quality(i), nil
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || !Quality(n).IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
	}
	return Quality(n), nil
}
