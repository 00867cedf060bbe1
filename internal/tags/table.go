// Package tags holds the per-tag priority weights that shorten review
// intervals for items carrying important tags.
package tags

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-recall-keeper/internal/logger"
)

// DefaultWeight is the neutral weight of a tag with no entry.
const DefaultWeight = 1

// Table maps tag names to integer weights >= 1.
//
// Table implements encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// with the flat "tag:weight\n" text form so it can be stored by the
// encrypted container storage.
type Table struct {
	weights map[string]int
	logger  *logger.Logger
}

// NewTable returns an empty table.
func NewTable(log *logger.Logger) *Table {
	if log == nil {
		log = logger.Nop()
	}
	return &Table{weights: make(map[string]int), logger: log}
}

// Weight returns the weight of tag or DefaultWeight when it has none.
func (t *Table) Weight(tag string) int {
	if w, ok := t.weights[tag]; ok {
		return w
	}
	return DefaultWeight
}

// SetWeight stores w for tag, raising anything below 1 to 1. Blank tags
// are ignored; tags with line breaks cannot be stored in the line format
// and fail with ErrInvalidTag.
func (t *Table) SetWeight(tag string, w int) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	if strings.ContainsAny(tag, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	if w < DefaultWeight {
		w = DefaultWeight
	}
	t.weights[tag] = w
	t.logger.Info().Str("tag", tag).Int("weight", w).Msg("tag weight set")
	return nil
}

// RemoveWeight drops the entry for tag; it falls back to DefaultWeight.
func (t *Table) RemoveWeight(tag string) {
	tag = strings.TrimSpace(tag)
	delete(t.weights, tag)
	t.logger.Info().Str("tag", tag).Msg("tag weight removed")
}

// Len returns the number of explicit entries.
func (t *Table) Len() int {
	return len(t.weights)
}

// Weights returns a copy of all explicit entries.
func (t *Table) Weights() map[string]int {
	out := make(map[string]int, len(t.weights))
	for k, v := range t.weights {
		out[k] = v
	}
	return out
}

// MarshalBinary writes one "tag:weight" line per entry, sorted by tag.
func (t *Table) MarshalBinary() ([]byte, error) {
	keys := make([]string, 0, len(t.weights))
	for k := range t.weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&buf, "%s:%d\n", k, t.weights[k])
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the table contents with the entries in data.
// Malformed lines are skipped, never fatal.
func (t *Table) UnmarshalBinary(data []byte) error {
	weights := make(map[string]int)

	for i, raw := range bytes.Split(data, []byte{'\n'}) {
		line := string(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		tag, w, err := ParseLine(line)
		if err != nil {
			t.logger.Warn().Err(err).Int("line", i+1).Msg("skipping tag weight line")
			continue
		}
		weights[tag] = w
	}

	t.weights = weights
	return nil
}

// ParseLine parses a single "tag:weight" line. The separator is the last
// ':' so tags may themselves contain colons.
func ParseLine(line string) (string, int, error) {
	line = strings.TrimRight(line, "\r")
	pos := strings.LastIndexByte(line, ':')
	if pos < 0 {
		return "", 0, ErrMissingSeparator
	}

	tag := strings.TrimSpace(line[:pos])
	if tag == "" {
		return "", 0, ErrEmptyTag
	}

	w, err := strconv.Atoi(strings.TrimSpace(line[pos+1:]))
	if err != nil || w < DefaultWeight {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidWeight, line[pos+1:])
	}
	return tag, w, nil
}
