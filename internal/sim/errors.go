package sim

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every out-of-bounds error from this package.
var ErrOutOfBounds = errors.New("sim: coordinate out of bounds")

// OutOfBoundsError reports a coordinate outside [0,W-1]x[0,H-1].
type OutOfBoundsError struct {
	Coord  Coord
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("sim: coordinate %v out of bounds for %dx%d grid", e.Coord, e.Width, e.Height)
}

// Is makes errors.Is(err, ErrOutOfBounds) hold.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
