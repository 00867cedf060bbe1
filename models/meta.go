package models

import "time"

// Meta is the per-item memory state kept by the scheduler.
type Meta struct {
	// Reps counts successful scheduler passes. Zero means the item has not
	// yet left the SM-2 warm-up phase in this session.
	Reps int

	// Stability in days, bounded to [0.5, 36500].
	Stability float64

	// Difficulty in [0.01, 0.99]; higher is harder.
	Difficulty float64

	LastReview time.Time
}
