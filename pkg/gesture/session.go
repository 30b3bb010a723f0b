package gesture

import (
	"time"

	"github.com/entrhq/strokes/pkg/types"
)

// State is the engine's session state.
type State string

const (
	StateIdle       State = "idle"
	StateTracking   State = "tracking"
	StateCancelled  State = "cancelled"
	StateFinalizing State = "finalizing"
)

// Session is the mutable state of one gesture attempt. It is created on a
// qualifying pointer-down and discarded on pointer-up or cancellation.
type Session struct {
	ID        string
	StartedAt time.Time
	Host      string

	cfg         Config
	button      types.Button
	start       types.Target
	origin      Sample
	moved       bool
	sampler     *Sampler
	accumulator *Accumulator
}

func newSession(id, host string, cfg Config, ev types.PointerEvent) *Session {
	rc := cfg.Recognition
	s := &Session{
		ID:          id,
		StartedAt:   ev.Timestamp,
		Host:        host,
		cfg:         cfg,
		button:      ev.Button,
		start:       ev.Target,
		origin:      Sample{X: ev.X, Y: ev.Y, Time: ev.Timestamp},
		sampler:     NewSampler(rc.SampleMinPx),
		accumulator: NewAccumulator(rc.Classifier(), rc.MinSegmentPx, rc.JitterPx),
	}
	s.sampler.Accept(s.origin)
	s.accumulator.Feed(s.origin)
	return s
}

// track feeds a pointer position through the sampler and accumulator. It
// reports whether the sample was kept and the token appended, if any.
func (s *Session) track(sample Sample) (bool, Direction) {
	if !s.moved && s.origin.DistanceTo(sample) >= s.cfg.Recognition.MovedPx {
		s.moved = true
	}
	if !s.sampler.Accept(sample) {
		return false, DirNone
	}
	return true, s.accumulator.Feed(sample)
}

// Moved reports whether the pointer travelled far enough to count as a gesture.
func (s *Session) Moved() bool {
	return s.moved
}

// Pattern returns the live, un-normalized pattern.
func (s *Session) Pattern() Pattern {
	return s.accumulator.Pattern()
}

// Trajectory returns a copy of the recorded samples.
func (s *Session) Trajectory() Trajectory {
	return s.sampler.Trajectory()
}

// Config returns the snapshot the session started with.
func (s *Session) Config() Config {
	return s.cfg
}

// finalPattern applies diagonal normalization when the snapshot asks for it.
func (s *Session) finalPattern() Pattern {
	p := s.accumulator.Pattern()
	if s.cfg.Recognition.NormalizeDiagonals {
		p = Normalize(p)
	}
	return p
}
