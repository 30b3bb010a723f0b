package gesture

import (
	"math"
	"time"
)

// Sample is one recorded pointer position in viewport coordinates.
type Sample struct {
	X    float64
	Y    float64
	Time time.Time
}

// DistanceTo returns the Euclidean distance between two samples.
func (s Sample) DistanceTo(o Sample) float64 {
	return math.Hypot(o.X-s.X, o.Y-s.Y)
}

// Trajectory is the ordered list of samples recorded for one gesture attempt.
type Trajectory []Sample

// Sampler throttles incoming pointer positions by minimum spacing so the
// trajectory length is bounded by distance travelled, not event rate.
type Sampler struct {
	minSpacing float64
	trajectory Trajectory
}

// NewSampler creates a sampler that keeps samples at least minSpacingPx apart.
func NewSampler(minSpacingPx float64) *Sampler {
	if minSpacingPx < 0 || math.IsNaN(minSpacingPx) {
		minSpacingPx = 0
	}
	return &Sampler{minSpacing: minSpacingPx}
}

// Accept appends s if it is at least the minimum spacing away from the last
// stored sample, and reports whether it did. The first sample is always kept.
func (s *Sampler) Accept(sample Sample) bool {
	if n := len(s.trajectory); n > 0 {
		if s.trajectory[n-1].DistanceTo(sample) < s.minSpacing {
			return false
		}
	}
	s.trajectory = append(s.trajectory, sample)
	return true
}

// Len returns the number of stored samples.
func (s *Sampler) Len() int {
	return len(s.trajectory)
}

// Trajectory returns a copy of the stored samples.
func (s *Sampler) Trajectory() Trajectory {
	out := make(Trajectory, len(s.trajectory))
	copy(out, s.trajectory)
	return out
}

// Tail returns a copy of at most n of the most recent samples.
func (s *Sampler) Tail(n int) Trajectory {
	start := 0
	if n >= 0 && len(s.trajectory) > n {
		start = len(s.trajectory) - n
	}
	out := make(Trajectory, len(s.trajectory)-start)
	copy(out, s.trajectory[start:])
	return out
}
