package gesture

import (
	"math"

	"github.com/entrhq/strokes/pkg/policy"
	"github.com/entrhq/strokes/pkg/types"
)

// Recognition defaults and the safe range each value is clamped into.
const (
	DefaultMinSegmentPx = 18.0
	MinMinSegmentPx     = 4.0
	MaxMinSegmentPx     = 200.0

	DefaultJitterPx = 4.0
	MinJitterPx     = 0.0
	MaxJitterPx     = 50.0

	DefaultSampleMinPx = 2.0
	MinSampleMinPx     = 0.0
	MaxSampleMinPx     = 50.0

	DefaultMovedPx = 10.0
	MinMovedPx     = 0.0
	MaxMovedPx     = 200.0
)

// LinkOverride controls when a forward gesture started on a link opens the
// link in a new tab instead.
type LinkOverride string

const (
	// LinkOverrideMappedForward fires for any pattern that resolves to forward.
	LinkOverrideMappedForward LinkOverride = "mapped_forward"
	// LinkOverrideCanonicalOnly fires only for CanonicalForwardPattern.
	LinkOverrideCanonicalOnly LinkOverride = "canonical_only"
	// LinkOverrideOff never rewrites the mapped action.
	LinkOverrideOff LinkOverride = "off"
)

// ParseLinkOverride maps a name to a LinkOverride, reporting whether it was
// recognized. Unknown names yield LinkOverrideMappedForward.
func ParseLinkOverride(name string) (LinkOverride, bool) {
	switch LinkOverride(name) {
	case LinkOverrideMappedForward, LinkOverrideCanonicalOnly, LinkOverrideOff:
		return LinkOverride(name), true
	default:
		return LinkOverrideMappedForward, false
	}
}

// CanonicalForwardPattern is the stock forward gesture, a single stroke right.
var CanonicalForwardPattern = NewPattern(DirRight)

// RecognitionConfig holds the numeric thresholds and recognition switches.
type RecognitionConfig struct {
	MinSegmentPx float64
	JitterPx     float64
	SampleMinPx  float64
	MovedPx      float64

	HorizontalToleranceDeg float64
	VerticalToleranceDeg   float64

	NormalizeDiagonals bool
	LinkOverride       LinkOverride
	TriggerButton      types.Button
}

// DefaultRecognitionConfig returns the stock thresholds.
func DefaultRecognitionConfig() RecognitionConfig {
	return RecognitionConfig{
		MinSegmentPx:           DefaultMinSegmentPx,
		JitterPx:               DefaultJitterPx,
		SampleMinPx:            DefaultSampleMinPx,
		MovedPx:                DefaultMovedPx,
		HorizontalToleranceDeg: DefaultToleranceDeg,
		VerticalToleranceDeg:   DefaultToleranceDeg,
		NormalizeDiagonals:     true,
		LinkOverride:           LinkOverrideMappedForward,
		TriggerButton:          types.ButtonRight,
	}
}

// Clamped returns a copy with every field forced into its safe range.
// NaN and infinities fall back to the default for that field.
func (c RecognitionConfig) Clamped() RecognitionConfig {
	c.MinSegmentPx = clampFloat(c.MinSegmentPx, MinMinSegmentPx, MaxMinSegmentPx, DefaultMinSegmentPx)
	c.JitterPx = clampFloat(c.JitterPx, MinJitterPx, MaxJitterPx, DefaultJitterPx)
	c.SampleMinPx = clampFloat(c.SampleMinPx, MinSampleMinPx, MaxSampleMinPx, DefaultSampleMinPx)
	c.MovedPx = clampFloat(c.MovedPx, MinMovedPx, MaxMovedPx, DefaultMovedPx)

	h, v := NewClassifier(c.HorizontalToleranceDeg, c.VerticalToleranceDeg).Tolerances()
	c.HorizontalToleranceDeg, c.VerticalToleranceDeg = h, v

	if lo, ok := ParseLinkOverride(string(c.LinkOverride)); ok {
		c.LinkOverride = lo
	} else {
		c.LinkOverride = LinkOverrideMappedForward
	}
	if c.TriggerButton == types.ButtonNone {
		c.TriggerButton = types.ButtonRight
	}
	return c
}

// Classifier returns the direction classifier for these tolerances.
func (c RecognitionConfig) Classifier() Classifier {
	return NewClassifier(c.HorizontalToleranceDeg, c.VerticalToleranceDeg)
}

// Trail style defaults and limits.
const (
	DefaultTrailColor     = "#FFB3BA"
	DefaultTrailWidth     = 3
	MinTrailWidth         = 1
	MaxTrailWidth         = 20
	DefaultTrailMaxPoints = 256
	MinTrailMaxPoints     = 16
	MaxTrailMaxPoints     = 4096
)

// TrailStyle carries rendering parameters passed through to the renderer.
type TrailStyle struct {
	Enabled   bool
	Color     string
	Width     int
	MaxPoints int
}

// DefaultTrailStyle returns the stock trail style.
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		Enabled:   true,
		Color:     DefaultTrailColor,
		Width:     DefaultTrailWidth,
		MaxPoints: DefaultTrailMaxPoints,
	}
}

// Clamped returns a copy with width and point budget in range.
func (s TrailStyle) Clamped() TrailStyle {
	s.Width = clampInt(s.Width, MinTrailWidth, MaxTrailWidth)
	s.MaxPoints = clampInt(s.MaxPoints, MinTrailMaxPoints, MaxTrailMaxPoints)
	if s.Color == "" {
		s.Color = DefaultTrailColor
	}
	return s
}

// Config is an immutable snapshot of everything a session needs. Sessions
// keep the snapshot that was active when they started.
type Config struct {
	Recognition RecognitionConfig
	Actions     ActionMap
	Gate        *policy.Gate
	Trail       TrailStyle
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Recognition: DefaultRecognitionConfig(),
		Actions:     DefaultActionMap(),
		Gate:        policy.DefaultGate(),
		Trail:       DefaultTrailStyle(),
	}
}

// normalized fills in missing parts and clamps values. The action map is
// copied so later edits to the caller's map never reach the snapshot.
func (c Config) normalized() Config {
	c.Recognition = c.Recognition.Clamped()
	c.Trail = c.Trail.Clamped()
	c.Actions = c.Actions.Clone()
	if c.Gate == nil {
		c.Gate = policy.DefaultGate()
	}
	return c
}

func clampInt(v, lo, hi int) int {
	return int(math.Max(float64(lo), math.Min(float64(hi), float64(v))))
}
