package sim

// View is the read access a material needs to pick a move.
type View interface {
	// At returns the material at c. Out-of-bounds coordinates read as Empty.
	At(c Coord) Material

	// Locked reports whether the cell at c already took part in a move
	// during the current tick.
	Locked(c Coord) bool
}

// Decide returns the neighbor this material wants to swap into, if any.
//
// Movable solids and liquids try, in order:
//  1. Lower
//  2. LowerLeft or LowerRight at random, when both are lighter
//  3. LowerLeft
//  4. LowerRight
//
// Liquids then also try Left/Right the same way. A candidate must exist,
// must not be locked this tick, and must be strictly lighter.
// Empty and immovable solids never move. Decide does not mutate anything.
func (m Material) Decide(n Neighbors, v View, r *RNG) (Coord, bool) {
	switch m.Kind {
	case KindMovableSolid:
		return m.fall(n, v, r)
	case KindLiquid:
		if c, ok := m.fall(n, v, r); ok {
			return c, true
		}
		return m.either(n, v, r, Left, Right)
	case KindEmpty, KindImmovableSolid:
		return Coord{}, false
	default:
		return Coord{}, false
	}
}

func (m Material) fall(n Neighbors, v View, r *RNG) (Coord, bool) {
	if c, ok := m.displaces(n, v, Lower); ok {
		return c, true
	}
	return m.either(n, v, r, LowerLeft, LowerRight)
}

// either picks a or b uniformly when both are open, else whichever is open,
// a first.
func (m Material) either(n Neighbors, v View, r *RNG, a, b Direction) (Coord, bool) {
	ca, okA := m.displaces(n, v, a)
	cb, okB := m.displaces(n, v, b)
	switch {
	case okA && okB:
		if r != nil && r.Bool() {
			return cb, true
		}
		return ca, true
	case okA:
		return ca, true
	case okB:
		return cb, true
	default:
		return Coord{}, false
	}
}

// displaces reports whether m can move into the neighbor in direction d.
func (m Material) displaces(n Neighbors, v View, d Direction) (Coord, bool) {
	c, ok := n.Get(d)
	if !ok || v.Locked(c) {
		return Coord{}, false
	}
	if m.Weight() > v.At(c).Weight() {
		return c, true
	}
	return Coord{}, false
}
