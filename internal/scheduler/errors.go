package scheduler

import (
	"errors"

	"github.com/MKhiriev/go-recall-keeper/models"
)

var (
	ErrNilItem = errors.New("item cannot be nil")

	// ErrInvalidQuality is models.ErrInvalidQuality, re-exported so callers
	// of the engine need not import models for error matching.
	ErrInvalidQuality = models.ErrInvalidQuality
)
