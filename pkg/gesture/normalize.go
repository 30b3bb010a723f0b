package gesture

// Normalize collapses a two-token pattern made of one horizontal and one
// vertical cardinal, in either order, into the matching diagonal. Every
// other pattern is returned unchanged.
func Normalize(p Pattern) Pattern {
	if p.Len() != 2 {
		return p
	}
	a, b := p.tokens[0], p.tokens[1]
	switch {
	case a.IsHorizontal() && b.IsVertical():
		return NewPattern(diagonalOf(b, a))
	case a.IsVertical() && b.IsHorizontal():
		return NewPattern(diagonalOf(a, b))
	}
	return p
}
