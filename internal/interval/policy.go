// Package interval computes jittered waits between polls.
package interval

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// MinWaitSeconds is the floor applied to every computed wait
const MinWaitSeconds = 5

// MaxWaitSeconds is the longest wait that still fits in a time.Duration
const MaxWaitSeconds = math.MaxInt64 / int64(time.Second)

// Policy draws a multiplicative jitter factor uniformly from [minFactor, maxFactor].
type Policy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPolicy creates a policy seeded from the runtime's random source
func NewPolicy() *Policy {
	return &Policy{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededPolicy creates a reproducible policy
func NewSeededPolicy(seed1, seed2 uint64) *Policy {
	return &Policy{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// NextWait returns max(5, round(basePeriod*factor)) in whole seconds, capped at MaxWaitSeconds.
// Swapped factors are tolerated; config validation rejects them upstream.
func (p *Policy) NextWait(basePeriodSeconds int, minFactor, maxFactor float64) int {
	if maxFactor < minFactor {
		minFactor, maxFactor = maxFactor, minFactor
	}

	factor := minFactor
	if maxFactor > minFactor {
		p.mu.Lock()
		// Float64 is in [0,1); scaling over the closed width lets round() reach both ends
		factor = minFactor + p.rng.Float64()*math.Nextafter(maxFactor-minFactor, math.Inf(1))
		p.mu.Unlock()
		if factor > maxFactor {
			factor = maxFactor
		}
	}

	return clampSeconds(float64(basePeriodSeconds) * factor)
}

// NextWaitDuration is NextWait as a time.Duration
func (p *Policy) NextWaitDuration(basePeriodSeconds int, minFactor, maxFactor float64) time.Duration {
	return time.Duration(p.NextWait(basePeriodSeconds, minFactor, maxFactor)) * time.Second
}

// Bounds returns the inclusive range NextWait can produce
func Bounds(basePeriodSeconds int, minFactor, maxFactor float64) (lo, hi int) {
	if maxFactor < minFactor {
		minFactor, maxFactor = maxFactor, minFactor
	}
	return clampSeconds(float64(basePeriodSeconds) * minFactor), clampSeconds(float64(basePeriodSeconds) * maxFactor)
}

// clampSeconds rounds half to even and keeps the result within [MinWaitSeconds, MaxWaitSeconds]
func clampSeconds(seconds float64) int {
	rounded := math.RoundToEven(seconds)
	if math.IsNaN(rounded) || rounded >= float64(MaxWaitSeconds) {
		return int(MaxWaitSeconds)
	}
	if rounded < MinWaitSeconds {
		return MinWaitSeconds
	}
	return int(rounded)
}
