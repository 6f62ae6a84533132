package sim

// Move records one swap performed during a tick.
type Move struct {
	From Coord
	To   Coord
	Kind Kind // kind of the material that initiated the move
}

// StepResult contains information about what happened during a tick.
type StepResult struct {
	Tick  uint64
	Moves []Move
}

// Step advances the simulation by one tick.
//
// Rows are scanned from the bottom up. Within a row, columns are visited
// middle-out (see ScanOrder); a plain left-to-right or right-to-left scan
// makes material visibly drift in the scan direction. Each cell takes part in
// at most one swap per tick, either as mover or as target.
func (g *Grid) Step() StepResult {
	for i := range g.cells {
		g.cells[i].updated = false
		g.cells[i].swapped = false
	}

	var result StepResult
	for y := g.max.Y; y >= 0; y-- {
		row := y * g.w
		for _, x := range g.order {
			if mv, ok := g.evaluate(row + x); ok {
				result.Moves = append(result.Moves, mv)
			}
		}
	}

	g.tick++
	result.Tick = g.tick
	return result
}

// evaluate lets the cell at index i decide and perform its move.
func (g *Grid) evaluate(i int) (Move, bool) {
	cell := &g.cells[i]
	if cell.updated || cell.Material.Ignorable() {
		return Move{}, false
	}

	target, ok := cell.Material.Decide(cell.Neighbors, g, g.rng)
	if !ok {
		cell.updated = true
		return Move{}, false
	}

	other := &g.cells[g.index(target)]
	mv := Move{From: g.coord(i), To: target, Kind: cell.Material.Kind}
	cell.Material, other.Material = other.Material, cell.Material
	cell.updated, cell.swapped = true, true
	other.updated, other.swapped = true, true
	return mv, true
}
