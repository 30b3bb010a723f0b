package gesture

import "math"

// Direction is a single classified stroke segment. The zero value means
// "no direction": movement too small or too ambiguous to carry signal.
type Direction string

const (
	DirNone      Direction = ""
	DirLeft      Direction = "L"
	DirRight     Direction = "R"
	DirUp        Direction = "U"
	DirDown      Direction = "D"
	DirUpLeft    Direction = "UL"
	DirUpRight   Direction = "UR"
	DirDownLeft  Direction = "DL"
	DirDownRight Direction = "DR"
)

// IsHorizontal reports whether d is L or R.
func (d Direction) IsHorizontal() bool {
	return d == DirLeft || d == DirRight
}

// IsVertical reports whether d is U or D.
func (d Direction) IsVertical() bool {
	return d == DirUp || d == DirDown
}

// IsDiagonal reports whether d is one of the four diagonal tokens.
func (d Direction) IsDiagonal() bool {
	switch d {
	case DirUpLeft, DirUpRight, DirDownLeft, DirDownRight:
		return true
	}
	return false
}

// diagonalOf combines a vertical and a horizontal cardinal into a diagonal.
func diagonalOf(vertical, horizontal Direction) Direction {
	return Direction(string(vertical) + string(horizontal))
}

// DefaultToleranceDeg is the half-width of every sector when all eight
// sectors are 45° wide.
const DefaultToleranceDeg = 22.5

// Classifier maps displacement vectors to directions.
//
// Horizontal and vertical tolerances are the half-widths, in degrees, of the
// L/R and U/D sectors. Diagonal sectors take whatever remains of each
// quadrant. With both tolerances at 22.5 this is nearest-of-eight-sectors;
// widening the horizontal tolerance gives the asymmetric band variant, and a
// pair summing to 90 disables diagonals entirely.
type Classifier struct {
	horizontal float64
	vertical   float64
}

// NewClassifier returns a classifier with the given tolerances. Each is
// clamped to [0, 90]; if their sum exceeds 90 the vertical tolerance is
// reduced so the horizontal sectors keep the width they were given.
func NewClassifier(horizontalDeg, verticalDeg float64) Classifier {
	h := clampFloat(horizontalDeg, 0, 90, DefaultToleranceDeg)
	v := clampFloat(verticalDeg, 0, 90, DefaultToleranceDeg)
	if h+v > 90 {
		v = 90 - h
	}
	return Classifier{horizontal: h, vertical: v}
}

// DefaultClassifier returns the symmetric eight-sector classifier.
func DefaultClassifier() Classifier {
	return NewClassifier(DefaultToleranceDeg, DefaultToleranceDeg)
}

// Tolerances returns the effective horizontal and vertical half-widths.
func (c Classifier) Tolerances() (horizontal, vertical float64) {
	return c.horizontal, c.vertical
}

// Classify returns the direction of the vector (dx, dy) in viewport
// coordinates, where y grows downwards. If both |dx| and |dy| are below
// jitterPx the result is DirNone. A vector exactly on a sector boundary is
// assigned to the cardinal sector.
func (c Classifier) Classify(dx, dy, jitterPx float64) Direction {
	if math.Abs(dx) < jitterPx && math.Abs(dy) < jitterPx {
		return DirNone
	}
	if dx == 0 && dy == 0 {
		return DirNone
	}

	// Flip y so positive angles point up the screen.
	deg := math.Atan2(-dy, dx) * 180 / math.Pi
	abs := math.Abs(deg)

	fromHorizontal := abs
	if fromHorizontal > 90 {
		fromHorizontal = 180 - abs
	}

	horizontal := DirRight
	if abs > 90 {
		horizontal = DirLeft
	}
	vertical := DirUp
	if deg < 0 {
		vertical = DirDown
	}

	if fromHorizontal <= c.horizontal {
		return horizontal
	}
	if 90-fromHorizontal <= c.vertical {
		return vertical
	}
	return diagonalOf(vertical, horizontal)
}

// Classify uses the symmetric eight-sector classifier.
func Classify(dx, dy, jitterPx float64) Direction {
	return DefaultClassifier().Classify(dx, dy, jitterPx)
}

func clampFloat(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
