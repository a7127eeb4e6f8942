package sim

import (
	"math"
	"math/rand"
)

// DurationSampler draws non-negative durations, in simulated hours, for a
// given rate (events per hour; the mean duration is 1/rate). Sources use
// it for inter-arrival times and devices for service times, so a
// deterministic implementation can be substituted in tests.
type DurationSampler interface {
	Sample(rate float64) float64
}

// ExponentialSampler draws from an exponential distribution using inverse
// transform sampling: X = -ln(U) / rate.
type ExponentialSampler struct {
	rng *rand.Rand
}

// NewExponentialSampler creates a sampler backed by the given random stream.
func NewExponentialSampler(rng *rand.Rand) *ExponentialSampler {
	return &ExponentialSampler{rng: rng}
}

func (s *ExponentialSampler) Sample(rate float64) float64 {
	u := s.rng.Float64()
	if u == 0 {
		u = 1e-10 // Avoid log(0)
	}
	return -math.Log(u) / rate
}

// FixedSampler returns the same duration on every draw, regardless of
// rate. Used for deterministic scenarios and tests.
type FixedSampler struct {
	Duration float64
}

func (s FixedSampler) Sample(_ float64) float64 {
	return s.Duration
}
