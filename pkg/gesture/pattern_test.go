package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allDirections = []Direction{
	DirLeft, DirRight, DirUp, DirDown,
	DirUpLeft, DirUpRight, DirDownLeft, DirDownRight,
}

func TestPattern_AppendDedups(t *testing.T) {
	var p Pattern
	assert.True(t, p.Append(DirRight))
	assert.False(t, p.Append(DirRight))
	assert.False(t, p.Append(DirNone))
	assert.True(t, p.Append(DirDown))
	assert.True(t, p.Append(DirRight))
	assert.Equal(t, "RD-R", p.String())
}

func TestPattern_AppendDoesNotAlias(t *testing.T) {
	p := NewPattern(DirRight)
	snapshot := p
	p.Append(DirDown)
	assert.Equal(t, "R", snapshot.String())
	assert.Equal(t, "RD", p.String())
}

func TestNewPattern_CollapsesRepeats(t *testing.T) {
	p := NewPattern(DirUp, DirUp, DirNone, DirUp, DirLeft, DirLeft)
	assert.Equal(t, []Direction{DirUp, DirLeft}, p.Tokens())
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		in   string
		want []Direction
	}{
		{"R", []Direction{DirRight}},
		{"RD", []Direction{DirRight, DirDown}},
		{"DR", []Direction{DirDownRight}},
		{"ud", []Direction{DirUp, DirDown}},
		{"UDR", []Direction{DirUp, DirDownRight}},
		{"D-R", []Direction{DirDown, DirRight}},
		{"u-d-r", []Direction{DirUp, DirDown, DirRight}},
		{"L, R", []Direction{DirLeft, DirRight}},
		{"RR", []Direction{DirRight}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePattern(tt.in)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), p.Len())
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, p.Tokens())
			}
		})
	}

	t.Run("rejects unknown letters", func(t *testing.T) {
		_, err := ParsePattern("RX")
		assert.Error(t, err)
	})
}

func TestParsePattern_RoundTripsSerializedForm(t *testing.T) {
	for _, s := range []string{"L", "RD", "DR", "D-R", "UDR", "LUR", "DLUR", "U-LD-R"} {
		key, err := CanonicalKey(s)
		require.NoError(t, err)
		assert.Equal(t, s, key)
	}
}

func TestPattern_CardinalPairNeverReadsAsDiagonal(t *testing.T) {
	pairs := map[Direction][2]Direction{
		DirUpLeft:    {DirUp, DirLeft},
		DirUpRight:   {DirUp, DirRight},
		DirDownLeft:  {DirDown, DirLeft},
		DirDownRight: {DirDown, DirRight},
	}

	for diag, pair := range pairs {
		raw := NewPattern(pair[0], pair[1])
		single := NewPattern(diag)
		assert.NotEqual(t, single.String(), raw.String(), "diagonal %s", diag)

		back, err := ParsePattern(raw.String())
		require.NoError(t, err)
		assert.True(t, back.Equal(raw), "raw %q", raw.String())

		back, err = ParsePattern(single.String())
		require.NoError(t, err)
		assert.True(t, back.Equal(single), "diagonal %q", single.String())
	}

	assert.Equal(t, "D-R", NewPattern(DirDown, DirRight).String())
	assert.Equal(t, "DR", NewPattern(DirDownRight).String())
	assert.Equal(t, "RD", NewPattern(DirRight, DirDown).String())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pattern
		want string
	}{
		{"right then down", NewPattern(DirRight, DirDown), "DR"},
		{"down then right", NewPattern(DirDown, DirRight), "DR"},
		{"left then up", NewPattern(DirLeft, DirUp), "UL"},
		{"up then left", NewPattern(DirUp, DirLeft), "UL"},
		{"two verticals untouched", NewPattern(DirUp, DirDown), "UD"},
		{"two horizontals untouched", NewPattern(DirLeft, DirRight), "LR"},
		{"diagonal plus cardinal untouched", NewPattern(DirUpRight, DirDown), "URD"},
		{"single token untouched", NewPattern(DirLeft), "L"},
		{"three tokens untouched", NewPattern(DirRight, DirDown, DirLeft), "RDL"},
		{"empty", Pattern{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in).String())
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	var patterns []Pattern
	patterns = append(patterns, Pattern{})
	for _, a := range allDirections {
		patterns = append(patterns, NewPattern(a))
		for _, b := range allDirections {
			patterns = append(patterns, NewPattern(a, b))
			for _, c := range allDirections {
				patterns = append(patterns, NewPattern(a, b, c))
			}
		}
	}

	for _, p := range patterns {
		once := Normalize(p)
		assert.True(t, once.Equal(Normalize(once)), "pattern %q", p.String())
	}
}
