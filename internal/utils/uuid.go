// Package utils holds small helpers shared by the recall packages.
package utils

import "github.com/google/uuid"

// UUIDGenerator produces item identifiers. Version 7 UUIDs embed a
// millisecond Unix timestamp followed by random bits, so IDs sort by
// creation time and never collide in practice.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a ready generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to a random v4 if the
// v7 clock sequence cannot be produced.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
