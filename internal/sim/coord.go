package sim

import "fmt"

// Coord is a cell position on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the componentwise sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Compare orders coordinates by X, then Y.
// Returns -1, 0 or +1.
func (c Coord) Compare(other Coord) int {
	switch {
	case c.X < other.X:
		return -1
	case c.X > other.X:
		return 1
	case c.Y < other.Y:
		return -1
	case c.Y > other.Y:
		return 1
	default:
		return 0
	}
}

// Less reports whether c sorts before other.
func (c Coord) Less(other Coord) bool {
	return c.Compare(other) < 0
}
