package place

import "math/rand"

// Engine runs actor placement over a finished terrain grid. All random
// draws (density skips, palette picks) come from the engine's own source,
// so a run's actor set is a pure function of the inputs and the seed.
type Engine struct {
	rng *rand.Rand
}

// NewEngine returns an engine drawing from a source seeded with seed.
func NewEngine(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
