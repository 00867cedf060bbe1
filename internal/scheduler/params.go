package scheduler

import "github.com/MKhiriev/go-recall-keeper/models"

// DefaultLeechThreshold is the number of lapses after which an item is
// flagged as a leech.
const DefaultLeechThreshold = 8

const (
	lapseResetInterval = 1

	minStability      = 0.5
	maxStability      = 36500.0
	leechStabilityCap = 2.0
	maxStabilityJump  = 1000.0
	lapseStability    = 0.3

	minDifficulty = 0.01
	maxDifficulty = 0.99

	// bootstrap bounds for difficulty inferred from the ease factor
	bootstrapMinDifficulty = 0.05
	bootstrapMaxDifficulty = 0.95

	maxInterval = 18250

	lapseEasePenalty = 0.25

	// tagPriorityBase^(w-1) divides the interval of an item with combined
	// tag weight w
	tagPriorityBase = 1.2
)

// Params holds the per-quality tables of the engine.
type Params struct {
	LeechThreshold int

	// EaseAdjustment is added to the ease factor after a successful review.
	EaseAdjustment map[models.Quality]float64

	// WarmupMultiplier scales the ease factor for cold items.
	WarmupMultiplier map[models.Quality]float64

	// TargetRetention is the recall probability the next interval aims for.
	TargetRetention map[models.Quality]float64

	// StabilityGrowth is the base stability multiplier per quality.
	StabilityGrowth map[models.Quality]float64

	// DifficultyDelta is added to difficulty after a warm review.
	DifficultyDelta map[models.Quality]float64
}

// NewDefaultParams returns the standard parameter set.
func NewDefaultParams() *Params {
	return &Params{
		LeechThreshold: DefaultLeechThreshold,
		EaseAdjustment: map[models.Quality]float64{
			models.Hard: -0.05,
			models.Good: 0.01,
			models.Easy: 0.15,
		},
		WarmupMultiplier: map[models.Quality]float64{
			models.Hard: 0.9,
			models.Good: 1.0,
			models.Easy: 1.3,
		},
		TargetRetention: map[models.Quality]float64{
			models.Hard: 0.80,
			models.Good: 0.90,
			models.Easy: 0.95,
		},
		StabilityGrowth: map[models.Quality]float64{
			models.Hard: 1.15,
			models.Good: 1.8,
			models.Easy: 2.8,
		},
		DifficultyDelta: map[models.Quality]float64{
			models.Hard: 0.03,
			models.Good: -0.01,
			models.Easy: -0.05,
		},
	}
}

// NewParams returns the default parameters with the given leech
// threshold. Values below 1 keep the default.
func NewParams(leechThreshold int) *Params {
	params := NewDefaultParams()
	if leechThreshold >= 1 {
		params.LeechThreshold = leechThreshold
	}
	return params
}
