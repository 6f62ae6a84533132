package sim

// Direction names one of the eight Moore-neighborhood offsets.
type Direction uint8

const (
	Upper Direction = iota
	UpperRight
	Right
	LowerRight
	Lower
	LowerLeft
	Left
	UpperLeft
	directionCount
)

// offsets is indexed by Direction. Lower is +Y.
var offsets = [directionCount]Coord{
	Upper:      {0, -1},
	UpperRight: {1, -1},
	Right:      {1, 0},
	LowerRight: {1, 1},
	Lower:      {0, 1},
	LowerLeft:  {-1, 1},
	Left:       {-1, 0},
	UpperLeft:  {-1, -1},
}

// Directions returns all eight directions, clockwise from Upper.
func Directions() []Direction {
	return []Direction{Upper, UpperRight, Right, LowerRight, Lower, LowerLeft, Left, UpperLeft}
}

// Offset returns the unit offset for this direction.
func (d Direction) Offset() Coord {
	if d >= directionCount {
		return Coord{}
	}
	return offsets[d]
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Upper:
		return "Upper"
	case UpperRight:
		return "UpperRight"
	case Right:
		return "Right"
	case LowerRight:
		return "LowerRight"
	case Lower:
		return "Lower"
	case LowerLeft:
		return "LowerLeft"
	case Left:
		return "Left"
	case UpperLeft:
		return "UpperLeft"
	default:
		return "Unknown"
	}
}

// Neighbors holds the in-bounds neighbor coordinates of one cell.
// Directions that would leave the grid are absent.
type Neighbors struct {
	coords  [directionCount]Coord
	present uint8 // bit d set when direction d is in bounds
}

// NeighborsOf computes the neighbors of c on a grid whose largest valid
// coordinate is limit.
func NeighborsOf(c, limit Coord) Neighbors {
	var n Neighbors
	for d := Direction(0); d < directionCount; d++ {
		nc := c.Add(offsets[d])
		if nc.X < 0 || nc.X > limit.X || nc.Y < 0 || nc.Y > limit.Y {
			continue
		}
		n.coords[d] = nc
		n.present |= 1 << d
	}
	return n
}

// Get returns the neighbor in direction d and whether it exists.
func (n Neighbors) Get(d Direction) (Coord, bool) {
	if d >= directionCount || n.present&(1<<d) == 0 {
		return Coord{}, false
	}
	return n.coords[d], true
}

// Len returns how many neighbors exist.
func (n Neighbors) Len() int {
	count := 0
	for d := Direction(0); d < directionCount; d++ {
		if n.present&(1<<d) != 0 {
			count++
		}
	}
	return count
}

// Coords returns the existing neighbor coordinates in direction order.
func (n Neighbors) Coords() []Coord {
	out := make([]Coord, 0, directionCount)
	for d := Direction(0); d < directionCount; d++ {
		if c, ok := n.Get(d); ok {
			out = append(out, c)
		}
	}
	return out
}
