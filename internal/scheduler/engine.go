// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package scheduler decides when an item is reviewed next.
//
// Items start cold and are scheduled with an SM-2 style multiplier on the
// ease factor. After the first successful review the item is warm and its
// interval is derived from an FSRS style stability estimate by inverting
// the forgetting curve at a per-quality target retention. Both regimes
// are shortened by the item's tag priority.
package scheduler

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/models"
)

// WeightSource resolves the priority weight of a tag.
type WeightSource interface {
	Weight(tag string) int
}

// Engine is a session-scoped scheduler. It owns the memory state of every
// item it has reviewed, keyed by item ID. Engine is not safe for
// concurrent use.
type Engine struct {
	params  *Params
	weights WeightSource
	meta    map[string]*models.Meta
	now     func() time.Time
	logger  *logger.Logger
}

// NewEngine creates an engine. weights may be nil, in which case every tag
// has neutral weight. now defaults to time.Now.
func NewEngine(params *Params, weights WeightSource, now func() time.Time, log *logger.Logger) *Engine {
	if params == nil {
		params = NewDefaultParams()
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		params:  params,
		weights: weights,
		meta:    make(map[string]*models.Meta),
		now:     now,
		logger:  log,
	}
}

// Review applies quality q to item in place and schedules its next review.
func (e *Engine) Review(item *models.Item, q models.Quality) error {
	if item == nil {
		return ErrNilItem
	}
	if !q.IsValid() {
		return ErrInvalidQuality
	}

	now := e.now()
	m := e.metaFor(item)

	item.ReviewCount++

	if q == models.Again {
		e.lapse(item, m, now)
		return nil
	}

	var interval int
	if m.Reps == 0 {
		interval = e.warmupInterval(item, q)
	} else {
		interval = e.retentionInterval(m, q)
	}
	interval = e.ApplyTagPriority(*item, interval)

	item.EaseFactor = clamp(item.EaseFactor+e.params.EaseAdjustment[q], models.EaseMin, models.EaseMax)
	item.ScheduleNext(interval, now)
	item.History = append(item.History, models.ReviewEntry{At: now, Quality: q, IntervalAfter: item.Interval})
	item.Streak++

	m.Reps++
	m.LastReview = now

	e.logger.Debug().
		Str("item_id", item.ID).
		Str("quality", q.String()).
		Int("interval", item.Interval).
		Int("reps", m.Reps).
		Float64("stability", m.Stability).
		Float64("difficulty", m.Difficulty).
		Msg("item reviewed")
	return nil
}

// lapse handles an Again rating. It never touches Meta.Reps.
func (e *Engine) lapse(item *models.Item, m *models.Meta, now time.Time) {
	item.Lapses++
	if !item.IsLeech && item.Lapses >= e.params.LeechThreshold {
		item.IsLeech = true
		e.logger.Warn().Str("item_id", item.ID).Int("lapses", item.Lapses).Msg("item marked as leech")
	}

	item.EaseFactor = clamp(item.EaseFactor-lapseEasePenalty, models.EaseMin, models.EaseMax)

	m.Stability = math.Max(minStability, m.Stability*lapseStability)
	if item.IsLeech {
		m.Stability = math.Min(m.Stability, leechStabilityCap)
	}
	m.LastReview = now

	item.ScheduleNext(lapseResetInterval, now)
	item.History = append(item.History, models.ReviewEntry{At: now, Quality: models.Again, IntervalAfter: item.Interval})
	item.Streak = 0

	e.logger.Debug().
		Str("item_id", item.ID).
		Int("lapses", item.Lapses).
		Bool("leech", item.IsLeech).
		Msg("item lapsed")
}

// warmupInterval is the SM-2 fallback for items without a trusted
// stability estimate. It uses the ease factor before this review's update.
func (e *Engine) warmupInterval(item *models.Item, q models.Quality) int {
	f := item.EaseFactor * e.params.WarmupMultiplier[q]
	return max(1, int(math.Ceil(float64(item.Interval)*f)))
}

// retentionInterval inverts the forgetting curve t = -s*ln(p*) at the
// current stability, then grows stability and adjusts difficulty.
func (e *Engine) retentionInterval(m *models.Meta, q models.Quality) int {
	s := clamp(m.Stability, minStability, maxStability)

	raw := int(math.Ceil(-s * math.Log(e.params.TargetRetention[q])))
	raw = min(max(raw, 1), maxInterval)

	difficultyFactor := clamp(1-m.Difficulty*0.5, 0.4, 1.0)
	intervalFactor := 1 + 0.05*math.Log(1+float64(max(1, raw)))
	growth := e.params.StabilityGrowth[q] * difficultyFactor * intervalFactor

	m.Stability = clamp(math.Min(s*growth, s+maxStabilityJump), minStability, maxStability)
	m.Difficulty = clamp(m.Difficulty+e.params.DifficultyDelta[q], minDifficulty, maxDifficulty)

	return raw
}

// metaFor returns the memory state of item, bootstrapping it from the
// persisted interval and ease factor the first time the item is seen.
func (e *Engine) metaFor(item *models.Item) *models.Meta {
	if m, ok := e.meta[item.ID]; ok {
		return m
	}

	difficulty := 1 - (item.EaseFactor-models.EaseMin)/(models.EaseMax-models.EaseMin)
	m := &models.Meta{
		Stability:  math.Max(minStability, float64(item.Interval)),
		Difficulty: clamp(difficulty, bootstrapMinDifficulty, bootstrapMaxDifficulty),
		LastReview: item.LastReview,
	}
	e.meta[item.ID] = m
	return m
}

// CombinedTagWeight returns the geometric mean of max(1, weight) over the
// item's tags, or 1 for an untagged item.
func (e *Engine) CombinedTagWeight(item models.Item) float64 {
	if len(item.Tags) == 0 || e.weights == nil {
		return 1
	}

	var sum float64
	for _, tag := range item.Tags {
		sum += math.Log(float64(max(1, e.weights.Weight(tag))))
	}
	return math.Exp(sum / float64(len(item.Tags)))
}

// ApplyTagPriority shortens interval for items with high priority tags.
// The result is never longer than interval and never below one day.
func (e *Engine) ApplyTagPriority(item models.Item, interval int) int {
	w := e.CombinedTagWeight(item)
	if w <= 1 {
		return interval
	}

	shortened := int(math.Floor(float64(interval) / math.Pow(tagPriorityBase, w-1)))
	return max(1, min(shortened, interval))
}

// DueItems returns the IDs of items due now, highest combined tag weight
// first and oldest due first among equal weights. The result is a
// snapshot: reviewing items afterwards does not reorder it.
func (e *Engine) DueItems(items []models.Item) []string {
	now := e.now()

	type candidate struct {
		id     string
		weight float64
		next   time.Time
	}
	var due []candidate
	for _, item := range items {
		if item.IsDue(now) {
			due = append(due, candidate{id: item.ID, weight: e.CombinedTagWeight(item), next: item.NextReview})
		}
	}

	slices.SortStableFunc(due, func(a, b candidate) int {
		if c := cmp.Compare(b.weight, a.weight); c != 0 {
			return c
		}
		return a.next.Compare(b.next)
	})

	ids := make([]string, len(due))
	for i, c := range due {
		ids[i] = c.id
	}
	return ids
}

// Meta returns a copy of the memory state for the item with the given ID.
func (e *Engine) Meta(id string) (models.Meta, bool) {
	m, ok := e.meta[id]
	if !ok {
		return models.Meta{}, false
	}
	return *m, true
}

// Export returns a copy of all memory state, keyed by item ID.
func (e *Engine) Export() map[string]models.Meta {
	out := make(map[string]models.Meta, len(e.meta))
	for id, m := range e.meta {
		out[id] = *m
	}
	return out
}

// Import merges previously exported memory state, replacing entries for
// the same IDs. Values are clamped to their valid ranges.
func (e *Engine) Import(state map[string]models.Meta) {
	for id, m := range state {
		m.Stability = clamp(m.Stability, minStability, maxStability)
		m.Difficulty = clamp(m.Difficulty, minDifficulty, maxDifficulty)
		m.Reps = max(0, m.Reps)
		e.meta[id] = &m
	}
}

// Forget drops the memory state of a removed item.
func (e *Engine) Forget(id string) {
	delete(e.meta, id)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
