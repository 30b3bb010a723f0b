package gesture

import (
	"fmt"
	"strings"
)

// Pattern is an ordered sequence of directions in which no two adjacent
// tokens are equal. The invariant is enforced by Append and NewPattern, so a
// Pattern can only be built through them.
type Pattern struct {
	tokens []Direction
}

// NewPattern builds a pattern from tokens, dropping DirNone and collapsing
// adjacent repeats.
func NewPattern(tokens ...Direction) Pattern {
	var p Pattern
	for _, t := range tokens {
		p.Append(t)
	}
	return p
}

// Append adds d unless it is DirNone or equal to the last token. It reports
// whether the token was added.
func (p *Pattern) Append(d Direction) bool {
	if d == DirNone || d == p.Last() {
		return false
	}
	// Copy on append so patterns handed out earlier never observe the growth.
	next := make([]Direction, len(p.tokens), len(p.tokens)+1)
	copy(next, p.tokens)
	p.tokens = append(next, d)
	return true
}

// Len returns the number of tokens.
func (p Pattern) Len() int {
	return len(p.tokens)
}

// IsEmpty reports whether the pattern has no tokens.
func (p Pattern) IsEmpty() bool {
	return len(p.tokens) == 0
}

// Last returns the final token, or DirNone for an empty pattern.
func (p Pattern) Last() Direction {
	if len(p.tokens) == 0 {
		return DirNone
	}
	return p.tokens[len(p.tokens)-1]
}

// Tokens returns a copy of the tokens.
func (p Pattern) Tokens() []Direction {
	out := make([]Direction, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// Equal reports whether two patterns have the same tokens.
func (p Pattern) Equal(o Pattern) bool {
	if len(p.tokens) != len(o.tokens) {
		return false
	}
	for i := range p.tokens {
		if p.tokens[i] != o.tokens[i] {
			return false
		}
	}
	return true
}

// String returns the serialized form: the tokens concatenated, e.g. "RD".
// A vertical cardinal followed by a horizontal one is separated by a dash,
// so the two-token [D, R] serializes to "D-R" and never reads as the
// diagonal "DR".
func (p Pattern) String() string {
	var b strings.Builder
	for i, t := range p.tokens {
		if i > 0 && t.IsHorizontal() && p.tokens[i-1].IsVertical() {
			b.WriteByte('-')
		}
		b.WriteString(string(t))
	}
	return b.String()
}

// ParsePattern parses a serialized pattern. Letters are case-insensitive and
// spaces and commas are ignored. A vertical letter directly followed by a
// horizontal one is read as the diagonal token, so "DR" is the single token
// DR while "RD" is R then D. A dash ends a token: "D-R" is D then R.
func ParsePattern(s string) (Pattern, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ',', '\t':
			return -1
		}
		return r
	}, strings.ToUpper(s))

	var p Pattern
	for i := 0; i < len(clean); i++ {
		if clean[i] == '-' {
			continue
		}
		c := Direction(clean[i : i+1])
		switch c {
		case DirLeft, DirRight:
			p.Append(c)
		case DirUp, DirDown:
			if i+1 < len(clean) {
				if next := Direction(clean[i+1 : i+2]); next.IsHorizontal() {
					p.Append(diagonalOf(c, next))
					i++
					continue
				}
			}
			p.Append(c)
		default:
			return Pattern{}, fmt.Errorf("invalid direction %q at offset %d in pattern %q", clean[i], i, s)
		}
	}
	return p, nil
}

// CanonicalKey returns the serialized form of a parsed pattern string.
func CanonicalKey(s string) (string, error) {
	p, err := ParsePattern(s)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}
