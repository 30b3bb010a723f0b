package gesture

// Accumulator turns a trajectory into a pattern. It keeps a floating anchor:
// once a sample is at least minSegment away from the anchor the displacement
// is classified and the anchor moves to that sample, whether or not a token
// was appended.
type Accumulator struct {
	classifier Classifier
	minSegment float64
	jitter     float64

	anchor    Sample
	hasAnchor bool
	pattern   Pattern
}

// NewAccumulator creates an accumulator with the given thresholds.
func NewAccumulator(classifier Classifier, minSegmentPx, jitterPx float64) *Accumulator {
	return &Accumulator{
		classifier: classifier,
		minSegment: minSegmentPx,
		jitter:     jitterPx,
	}
}

// Feed processes the next trajectory sample. It returns the appended token,
// or DirNone when the pattern did not change.
func (a *Accumulator) Feed(s Sample) Direction {
	if !a.hasAnchor {
		a.anchor = s
		a.hasAnchor = true
		return DirNone
	}
	if a.anchor.DistanceTo(s) < a.minSegment {
		return DirNone
	}

	d := a.classifier.Classify(s.X-a.anchor.X, s.Y-a.anchor.Y, a.jitter)
	a.anchor = s
	if a.pattern.Append(d) {
		return d
	}
	return DirNone
}

// Pattern returns the pattern accumulated so far.
func (a *Accumulator) Pattern() Pattern {
	return a.pattern
}

// Accumulate computes the pattern for a complete trajectory. It yields the
// same result as feeding the samples one at a time.
func Accumulate(t Trajectory, classifier Classifier, minSegmentPx, jitterPx float64) Pattern {
	a := NewAccumulator(classifier, minSegmentPx, jitterPx)
	for _, s := range t {
		a.Feed(s)
	}
	return a.Pattern()
}
