package entity

// Symmetry is one of the 8 transformations of the square: 4 rotations, each
// optionally mirrored.
type Symmetry struct {
	Rotations int // quarter turns clockwise
	Mirror    bool
}

// Symmetries lists all 8 transformations, identity first.
var Symmetries = []Symmetry{
	{0, false}, {1, false}, {2, false}, {3, false},
	{0, true}, {1, true}, {2, true}, {3, true},
}

// ApplyMove maps a square to its position under the transformation.
// Mirroring (left-right) is applied before rotating.
func (s Symmetry) ApplyMove(m Move) Move {
	if s.Mirror {
		m.Col = Size - 1 - m.Col
	}

	for range s.Rotations % 4 {
		m = Move{Row: m.Col, Col: Size - 1 - m.Row}
	}

	return m
}

func (s Symmetry) ApplyBoard(b Board) Board {
	var out Board
	for r := range Size {
		for c := range Size {
			to := s.ApplyMove(Move{Row: r, Col: c})
			out[to.Row][to.Col] = b[r][c]
		}
	}

	return out
}

// CanonicalKey returns the smallest Key over all symmetric images of b, so
// that equivalent positions share a key.
func CanonicalKey(b Board) string {
	best := b.Key()
	for _, s := range Symmetries[1:] {
		image := s.ApplyBoard(b)
		if key := image.Key(); key < best {
			best = key
		}
	}

	return best
}
