package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// vec returns a displacement of length r at deg degrees, counter-clockwise
// from the positive x axis as seen on screen (y grows downwards).
func vec(r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return r * math.Cos(rad), -r * math.Sin(rad)
}

func TestClassify_EightSectors(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want Direction
	}{
		{"right", 0, DirRight},
		{"right near edge", 22, DirRight},
		{"up-right low", 23, DirUpRight},
		{"up-right", 45, DirUpRight},
		{"up-right high", 67, DirUpRight},
		{"up near edge", 68, DirUp},
		{"up", 90, DirUp},
		{"up-left", 135, DirUpLeft},
		{"left", 180, DirLeft},
		{"left wrap", -180, DirLeft},
		{"left just below", -170, DirLeft},
		{"down-left", -135, DirDownLeft},
		{"down", -90, DirDown},
		{"down-right", -45, DirDownRight},
		{"right just below", -10, DirRight},
	}

	c := DefaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := vec(30, tt.deg)
			assert.Equal(t, tt.want, c.Classify(dx, dy, 4))
		})
	}
}

func TestClassify_ScreenAxes(t *testing.T) {
	assert.Equal(t, DirDown, Classify(0, 20, 4), "positive dy points down the screen")
	assert.Equal(t, DirUp, Classify(0, -20, 4))
	assert.Equal(t, DirLeft, Classify(-20, 0, 4))
	assert.Equal(t, DirDownRight, Classify(20, 20, 4))
}

func TestClassify_Jitter(t *testing.T) {
	t.Run("both components below jitter", func(t *testing.T) {
		assert.Equal(t, DirNone, Classify(3.9, -3.9, 4))
	})

	t.Run("one component at jitter", func(t *testing.T) {
		assert.Equal(t, DirRight, Classify(4, 0, 4))
	})

	t.Run("zero vector with zero jitter", func(t *testing.T) {
		assert.Equal(t, DirNone, Classify(0, 0, 0))
	})
}

func TestClassifier_Tolerances(t *testing.T) {
	t.Run("wide horizontal band", func(t *testing.T) {
		c := NewClassifier(35, 10)
		dx, dy := vec(30, 30)
		assert.Equal(t, DirRight, c.Classify(dx, dy, 0))
		dx, dy = vec(30, 60)
		assert.Equal(t, DirUpRight, c.Classify(dx, dy, 0))
		dx, dy = vec(30, 82)
		assert.Equal(t, DirUp, c.Classify(dx, dy, 0))
	})

	t.Run("four direction mode", func(t *testing.T) {
		c := NewClassifier(45, 45)
		for deg := -180.0; deg <= 180; deg += 7.5 {
			dx, dy := vec(30, deg)
			assert.False(t, c.Classify(dx, dy, 0).IsDiagonal(), "deg=%v", deg)
		}
	})

	t.Run("sum above ninety shrinks vertical", func(t *testing.T) {
		h, v := NewClassifier(60, 60).Tolerances()
		assert.Equal(t, 60.0, h)
		assert.Equal(t, 30.0, v)
	})

	t.Run("invalid values clamp or fall back", func(t *testing.T) {
		h, v := NewClassifier(math.NaN(), -5).Tolerances()
		assert.Equal(t, DefaultToleranceDeg, h)
		assert.Equal(t, 0.0, v)
	})
}
