// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Day is the scheduling unit: intervals are whole days.
const Day = 24 * time.Hour

// Ease factor bounds shared by every component that touches Item.EaseFactor.
const (
	EaseMin     = 1.3
	EaseMax     = 2.8
	EaseDefault = 2.5
)

// ReviewEntry is a single record of the append-only review history.
type ReviewEntry struct {
	// At is the moment the review was recorded.
	At time.Time

	// Quality is the rating given by the user.
	Quality Quality

	// IntervalAfter is the interval in days that the review produced.
	IntervalAfter int
}

// Item is a reviewable note together with its coarse scheduling state.
//
// The invariant NextReview == LastReview + Interval days holds after every
// call to ScheduleNext. Scheduling fields are only changed by the scheduler.
type Item struct {
	// ID is generated once at creation and never changes.
	ID string

	Title   string
	Content string

	// Tags are trimmed, non-empty and unique. Order is insertion order.
	Tags []string

	// Interval is the current review interval in days, always >= 1.
	Interval int

	// EaseFactor is kept within [EaseMin, EaseMax].
	EaseFactor float64

	LastReview time.Time
	NextReview time.Time

	// Lapses counts Again ratings. It never decreases.
	Lapses int

	// IsLeech is set once Lapses reaches the leech threshold and is never
	// cleared afterwards.
	IsLeech bool

	ReviewCount int
	Streak      int

	History []ReviewEntry
}

// ScheduleNext sets the interval and moves both review timestamps so that
// NextReview is exactly days after now.
func (i *Item) ScheduleNext(days int, now time.Time) {
	if days < 1 {
		days = 1
	}
	i.Interval = days
	i.LastReview = now
	i.NextReview = now.Add(time.Duration(days) * Day)
}

// IsDue reports whether the item should be reviewed at now.
func (i Item) IsDue(now time.Time) bool {
	return !i.NextReview.After(now)
}

// Clone returns a deep copy so callers cannot alias the ledger's slices.
func (i Item) Clone() Item {
	out := i
	if i.Tags != nil {
		out.Tags = append([]string(nil), i.Tags...)
	}
	if i.History != nil {
		out.History = append([]ReviewEntry(nil), i.History...)
	}
	return out
}
