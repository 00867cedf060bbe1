package scheduler

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/MKhiriev/go-recall-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWeights map[string]int

func (w stubWeights) Weight(tag string) int {
	if v, ok := w[tag]; ok {
		return v
	}
	return 1
}

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Set(t time.Time) { c.t = t }

var t0 = time.Unix(1_700_000_000, 0)

func newItem(id string, interval int, ease float64, tags ...string) *models.Item {
	item := &models.Item{ID: id, Title: id, Tags: tags, EaseFactor: ease}
	item.ScheduleNext(interval, t0)
	return item
}

func newTestEngine(weights WeightSource) (*Engine, *testClock) {
	clock := &testClock{t: t0}
	return NewEngine(nil, weights, clock.Now, nil), clock
}

func TestReview_Validation(t *testing.T) {
	e, _ := newTestEngine(nil)

	assert.ErrorIs(t, e.Review(nil, models.Good), ErrNilItem)
	assert.ErrorIs(t, e.Review(newItem("a", 1, 2.5), models.Quality(9)), ErrInvalidQuality)
}

func TestReview_BootstrapsMeta(t *testing.T) {
	e, _ := newTestEngine(nil)
	item := newItem("a", 3, 2.5)

	_, ok := e.Meta("a")
	require.False(t, ok)

	require.NoError(t, e.Review(item, models.Hard))

	m, ok := e.Meta("a")
	require.True(t, ok)
	assert.Equal(t, 1, m.Reps)
	assert.Equal(t, 3.0, m.Stability)
	assert.InDelta(t, 0.2, m.Difficulty, 1e-9)
}

func TestReview_BootstrapDifficultyBounds(t *testing.T) {
	e, _ := newTestEngine(nil)

	low := newItem("low", 1, models.EaseMin)
	high := newItem("high", 1, models.EaseMax)
	require.NoError(t, e.Review(low, models.Good))
	require.NoError(t, e.Review(high, models.Good))

	m, _ := e.Meta("low")
	assert.Equal(t, 0.95, m.Difficulty)
	m, _ = e.Meta("high")
	assert.Equal(t, 0.05, m.Difficulty)
}

func TestReview_ColdItem(t *testing.T) {
	tests := []struct {
		name         string
		quality      models.Quality
		wantInterval int
		wantEase     float64
	}{
		{name: "hard", quality: models.Hard, wantInterval: 7, wantEase: 2.45},
		{name: "good", quality: models.Good, wantInterval: 8, wantEase: 2.51},
		{name: "easy", quality: models.Easy, wantInterval: 10, wantEase: 2.65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEngine(nil)
			item := newItem("a", 3, 2.5)
			clock.Set(t0.Add(3 * models.Day))

			require.NoError(t, e.Review(item, tt.quality))

			assert.Equal(t, tt.wantInterval, item.Interval)
			assert.InDelta(t, tt.wantEase, item.EaseFactor, 1e-9)
			assert.Equal(t, clock.Now(), item.LastReview)
			assert.Equal(t, clock.Now().Add(time.Duration(tt.wantInterval)*models.Day), item.NextReview)
			assert.Equal(t, 1, item.ReviewCount)
			assert.Equal(t, 1, item.Streak)
			require.Len(t, item.History, 1)
			assert.Equal(t, models.ReviewEntry{At: clock.Now(), Quality: tt.quality, IntervalAfter: tt.wantInterval}, item.History[0])
		})
	}
}

func TestReview_WarmItem(t *testing.T) {
	e, _ := newTestEngine(nil)
	item := newItem("a", 5, 2.5)
	e.Import(map[string]models.Meta{"a": {Reps: 1, Stability: 10, Difficulty: 0.3}})

	require.NoError(t, e.Review(item, models.Good))

	assert.Equal(t, 2, item.Interval)
	m, _ := e.Meta("a")
	assert.Equal(t, 2, m.Reps)
	assert.InDelta(t, 16.1404, m.Stability, 1e-3)
	assert.InDelta(t, 0.29, m.Difficulty, 1e-9)
}

func TestReview_StabilityJumpIsCapped(t *testing.T) {
	e, _ := newTestEngine(nil)
	item := newItem("a", 1, 2.5)
	e.Import(map[string]models.Meta{"a": {Reps: 5, Stability: 30000, Difficulty: 0.01}})

	require.NoError(t, e.Review(item, models.Easy))

	assert.Equal(t, 1539, item.Interval)
	m, _ := e.Meta("a")
	assert.Equal(t, 31000.0, m.Stability)
	assert.Equal(t, 0.01, m.Difficulty)
}

func TestReview_StabilityUpperBound(t *testing.T) {
	e, _ := newTestEngine(nil)
	item := newItem("a", 1, 2.5)
	e.Import(map[string]models.Meta{"a": {Reps: 5, Stability: 36000, Difficulty: 0.5}})

	require.NoError(t, e.Review(item, models.Easy))

	m, _ := e.Meta("a")
	assert.Equal(t, 36500.0, m.Stability)
}

// Scenario: a fresh item reviewed Good three times, each time when due,
// moves its next review strictly forward.
func TestReview_GoodSequenceAdvances(t *testing.T) {
	e, clock := newTestEngine(nil)
	item := newItem("a", 1, 2.5)

	prev := item.NextReview
	for i := 0; i < 3; i++ {
		clock.Set(item.NextReview)
		require.NoError(t, e.Review(item, models.Good))
		assert.True(t, item.NextReview.After(prev), "review %d did not advance next_review", i+1)
		assert.Equal(t, item.LastReview.Add(time.Duration(item.Interval)*models.Day), item.NextReview)
		prev = item.NextReview
	}

	m, _ := e.Meta("a")
	assert.Equal(t, 3, m.Reps)
	assert.Equal(t, 3, item.Streak)
	assert.Len(t, item.History, 3)
}

func TestReview_AgainBecomesLeech(t *testing.T) {
	e, _ := newTestEngine(nil)
	item := newItem("a", 12, 2.0)
	item.Lapses = 7

	require.NoError(t, e.Review(item, models.Again))

	assert.Equal(t, 8, item.Lapses)
	assert.True(t, item.IsLeech)
	assert.Equal(t, 1, item.Interval)
	assert.InDelta(t, 1.75, item.EaseFactor, 1e-9)

	m, _ := e.Meta("a")
	assert.LessOrEqual(t, m.Stability, 2.0)
	assert.Equal(t, 0, m.Reps)
}

func TestReview_Again(t *testing.T) {
	e, clock := newTestEngine(nil)
	item := newItem("a", 10, 1.4)
	item.Streak = 4

	clock.Set(t0.Add(10 * models.Day))
	require.NoError(t, e.Review(item, models.Again))

	assert.Equal(t, 1, item.Lapses)
	assert.False(t, item.IsLeech)
	assert.Equal(t, models.EaseMin, item.EaseFactor)
	assert.Equal(t, 1, item.Interval)
	assert.Equal(t, clock.Now().Add(models.Day), item.NextReview)
	assert.Equal(t, 0, item.Streak)
	assert.Equal(t, 1, item.ReviewCount)
	require.Len(t, item.History, 1)
	assert.Equal(t, models.ReviewEntry{At: clock.Now(), Quality: models.Again, IntervalAfter: 1}, item.History[0])

	m, _ := e.Meta("a")
	assert.InDelta(t, 3.0, m.Stability, 1e-9)
	assert.Equal(t, 0, m.Reps, "a lapse must not count as a repetition")
}

func TestReview_LeechIsMonotonic(t *testing.T) {
	e, clock := newTestEngine(nil)
	item := newItem("a", 1, 2.5)

	for i := 1; i <= 8; i++ {
		clock.Set(item.NextReview)
		require.NoError(t, e.Review(item, models.Good))
		clock.Set(item.NextReview)
		require.NoError(t, e.Review(item, models.Again))

		assert.Equal(t, i, item.Lapses)
		assert.Equal(t, i >= 8, item.IsLeech, "after %d lapses", i)
	}

	for i := 0; i < 5; i++ {
		clock.Set(item.NextReview)
		require.NoError(t, e.Review(item, models.Easy))
		assert.True(t, item.IsLeech)
	}
	assert.Equal(t, 8, item.Lapses)
}

func TestReview_CustomLeechThreshold(t *testing.T) {
	e := NewEngine(NewParams(2), nil, func() time.Time { return t0 }, nil)
	item := newItem("a", 1, 2.5)

	require.NoError(t, e.Review(item, models.Again))
	assert.False(t, item.IsLeech)
	require.NoError(t, e.Review(item, models.Again))
	assert.True(t, item.IsLeech)
}

func TestReview_BoundsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	weights := stubWeights{"hot": 5}

	for run := 0; run < 20; run++ {
		e, clock := newTestEngine(weights)
		item := newItem("a", 1+rng.IntN(30), models.EaseMin+rng.Float64()*(models.EaseMax-models.EaseMin))
		if run%2 == 0 {
			item.Tags = []string{"hot"}
		}

		for i := 0; i < 200; i++ {
			q := models.Quality(rng.IntN(4))
			clock.Set(clock.Now().Add(time.Duration(rng.IntN(100)) * models.Day))
			require.NoError(t, e.Review(item, q))

			assert.GreaterOrEqual(t, item.EaseFactor, models.EaseMin)
			assert.LessOrEqual(t, item.EaseFactor, models.EaseMax)
			assert.GreaterOrEqual(t, item.Interval, 1)
			assert.Equal(t, item.LastReview.Add(time.Duration(item.Interval)*models.Day), item.NextReview)

			m, _ := e.Meta("a")
			assert.GreaterOrEqual(t, m.Stability, 0.5)
			assert.LessOrEqual(t, m.Stability, 36500.0)
			assert.GreaterOrEqual(t, m.Difficulty, 0.01)
			assert.LessOrEqual(t, m.Difficulty, 0.99)
		}
		assert.Len(t, item.History, 200)
		assert.Equal(t, 200, item.ReviewCount)
	}
}

func TestReview_TagPriorityShortensInterval(t *testing.T) {
	e, _ := newTestEngine(stubWeights{"go": 4})
	plain := newItem("plain", 4, 2.5)
	tagged := newItem("tagged", 4, 2.5, "go")

	require.NoError(t, e.Review(plain, models.Good))
	require.NoError(t, e.Review(tagged, models.Good))

	assert.Equal(t, 10, plain.Interval)
	assert.Equal(t, 5, tagged.Interval)
}

func TestCombinedTagWeight(t *testing.T) {
	e, _ := newTestEngine(stubWeights{"a": 4, "b": 1, "neg": -3})

	assert.Equal(t, 1.0, e.CombinedTagWeight(models.Item{}))
	assert.InDelta(t, 2.0, e.CombinedTagWeight(models.Item{Tags: []string{"a", "b"}}), 1e-9)
	assert.InDelta(t, 4.0, e.CombinedTagWeight(models.Item{Tags: []string{"a"}}), 1e-9)
	assert.InDelta(t, 1.0, e.CombinedTagWeight(models.Item{Tags: []string{"neg", "unknown"}}), 1e-9)

	noWeights, _ := newTestEngine(nil)
	assert.Equal(t, 1.0, noWeights.CombinedTagWeight(models.Item{Tags: []string{"a"}}))
}

func TestApplyTagPriority(t *testing.T) {
	e, _ := newTestEngine(stubWeights{"a": 4, "b": 1})

	assert.Equal(t, 10, e.ApplyTagPriority(models.Item{}, 10))
	assert.Equal(t, 8, e.ApplyTagPriority(models.Item{Tags: []string{"a", "b"}}, 10))
	assert.Equal(t, 5, e.ApplyTagPriority(models.Item{Tags: []string{"a"}}, 10))
	assert.Equal(t, 1, e.ApplyTagPriority(models.Item{Tags: []string{"a"}}, 1))
}

func TestApplyTagPriority_NeverLengthens(t *testing.T) {
	for w := -2; w <= 12; w++ {
		e, _ := newTestEngine(stubWeights{"t": w})
		item := models.Item{Tags: []string{"t", "other"}}
		for interval := 1; interval <= 500; interval++ {
			got := e.ApplyTagPriority(item, interval)
			require.LessOrEqual(t, got, interval, "weight %d interval %d", w, interval)
			require.GreaterOrEqual(t, got, 1, "weight %d interval %d", w, interval)
		}
	}
}

func TestDueItems_Ordering(t *testing.T) {
	e, _ := newTestEngine(stubWeights{"go": 4})
	at := func(id string, offset time.Duration, tags ...string) models.Item {
		return models.Item{ID: id, Tags: tags, NextReview: t0.Add(offset)}
	}
	items := []models.Item{
		at("a", -2*models.Day),
		at("b", -1*models.Day, "go"),
		at("c", -3*models.Day, "go"),
		at("d", models.Day, "go"),
		at("e", -5*models.Day),
		at("f", 0),
		at("g", 0),
	}

	got := e.DueItems(items)

	assert.Equal(t, []string{"c", "b", "e", "a", "f", "g"}, got)
	assert.Equal(t, got, e.DueItems(items), "repeated calls must agree")
}

func TestDueItems_Empty(t *testing.T) {
	e, _ := newTestEngine(nil)
	assert.Empty(t, e.DueItems(nil))
	assert.Empty(t, e.DueItems([]models.Item{{ID: "x", NextReview: t0.Add(time.Second)}}))
}

func TestDueItems_SnapshotIgnoresLaterReviews(t *testing.T) {
	e, _ := newTestEngine(nil)
	items := []models.Item{*newItem("a", 1, 2.5), *newItem("b", 1, 2.5)}
	items[0].NextReview = t0.Add(-2 * models.Day)
	items[1].NextReview = t0.Add(-1 * models.Day)

	due := e.DueItems(items)
	require.NoError(t, e.Review(&items[0], models.Good))

	assert.Equal(t, []string{"a", "b"}, due)
	assert.Equal(t, []string{"b"}, e.DueItems(items))
}

func TestMetaExportImportForget(t *testing.T) {
	e, _ := newTestEngine(nil)
	require.NoError(t, e.Review(newItem("a", 2, 2.5), models.Good))

	exported := e.Export()
	require.Contains(t, exported, "a")

	other, _ := newTestEngine(nil)
	other.Import(exported)
	m, ok := other.Meta("a")
	require.True(t, ok)
	assert.Equal(t, exported["a"], m)

	other.Import(map[string]models.Meta{"b": {Stability: -4, Difficulty: 7, Reps: -1}})
	m, _ = other.Meta("b")
	assert.Equal(t, models.Meta{Stability: 0.5, Difficulty: 0.99}, m)

	other.Forget("a")
	_, ok = other.Meta("a")
	assert.False(t, ok)
}
