package focus

import "math/rand/v2"

// Pattern is the attention label derived from a focus score.
type Pattern string

const (
	PatternHigh      Pattern = "high"
	PatternStable    Pattern = "stable"
	PatternDeclining Pattern = "declining"
	PatternLow       Pattern = "low"
)

const (
	// InitialScore is the score a fresh tracker starts from.
	InitialScore = 75.0

	// Spread bounds a single perturbation to [-Spread, +Spread).
	Spread = 10.0

	MinScore = 0.0
	MaxScore = 100.0
)

// Classify maps a score onto its attention pattern. Thresholds are strict,
// so 80 is stable and 81 is high.
func Classify(score float64) Pattern {
	switch {
	case score > 80:
		return PatternHigh
	case score > 60:
		return PatternStable
	case score > 40:
		return PatternDeclining
	default:
		return PatternLow
	}
}

// Clamp limits score to [MinScore, MaxScore].
func Clamp(score float64) float64 {
	return max(MinScore, min(MaxScore, score))
}

// Perturber produces the delta added to the score on each tick.
type Perturber interface {
	Perturb() float64
}

// PerturbFunc adapts a function to the Perturber interface.
type PerturbFunc func() float64

func (f PerturbFunc) Perturb() float64 { return f() }

// RandomWalk draws uniform deltas in [-spread, +spread) from a seeded PCG
// source, so equal seeds give equal trajectories.
type RandomWalk struct {
	rng    *rand.Rand
	spread float64
}

// NewRandomWalk returns a seeded random walk. A non-positive spread falls
// back to Spread.
func NewRandomWalk(seed uint64, spread float64) *RandomWalk {
	if spread <= 0 {
		spread = Spread
	}
	return &RandomWalk{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		spread: spread,
	}
}

func (w *RandomWalk) Perturb() float64 {
	return (w.rng.Float64()*2 - 1) * w.spread
}

// Fixed replays a scripted list of deltas, wrapping around at the end.
type Fixed struct {
	steps []float64
	next  int
}

// NewFixed returns a Fixed perturber. With no steps it always returns 0.
func NewFixed(steps ...float64) *Fixed {
	return &Fixed{steps: steps}
}

func (f *Fixed) Perturb() float64 {
	if len(f.steps) == 0 {
		return 0
	}
	d := f.steps[f.next%len(f.steps)]
	f.next++
	return d
}
