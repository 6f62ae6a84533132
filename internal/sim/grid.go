// Package sim implements the falling-sand engine: a fixed-size grid of
// material cells advanced one tick at a time by local movement rules.
// This package is UI-agnostic and deterministic for a given seed.
package sim

import "time"

// Cell is one slot of the grid.
type Cell struct {
	Material  Material
	Neighbors Neighbors // bounds-filtered, computed once
	updated   bool      // evaluated or swapped this tick
	swapped   bool      // took part in a swap this tick
}

// Grid owns all cells in row-major order: index = y*W + x.
type Grid struct {
	w, h     int
	max      Coord
	midpoint int
	cells    []Cell
	order    []int // x visiting order within a row
	rng      *RNG
	tick     uint64
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithSeed seeds the grid's random source.
func WithSeed(seed int64) Option {
	return func(g *Grid) {
		g.rng = NewRNG(seed)
	}
}

// WithRNG makes the grid draw from an existing random source.
func WithRNG(r *RNG) Option {
	return func(g *Grid) {
		if r != nil {
			g.rng = r
		}
	}
}

// New creates a w x h grid with every cell empty.
// Non-positive dimensions are clamped to 1. Without WithSeed the grid is
// seeded from the current time.
func New(w, h int, opts ...Option) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	g := &Grid{
		w:     w,
		h:     h,
		max:   C(w-1, h-1),
		cells: make([]Cell, w*h),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRNG(time.Now().UnixNano())
	}

	g.midpoint = midpointOf(g.max.X)
	g.order = middleOut(g.midpoint, g.max.X)

	for i := range g.cells {
		g.cells[i] = Cell{
			Material:  Empty(),
			Neighbors: NeighborsOf(g.coord(i), g.max),
		}
	}
	return g
}

// midpointOf returns maxX/2, bumped to the next even column when odd.
func midpointOf(maxX int) int {
	mid := maxX / 2
	if mid%2 == 1 {
		mid++
	}
	return mid
}

// middleOut returns every column of [0, maxX] exactly once, starting at mid
// and alternating one step left, one step right until both edges are done.
func middleOut(mid, maxX int) []int {
	order := make([]int, 0, maxX+1)
	order = append(order, mid)
	for d := 1; len(order) < maxX+1; d++ {
		if mid-d >= 0 {
			order = append(order, mid-d)
		}
		if mid+d <= maxX {
			order = append(order, mid+d)
		}
	}
	return order
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.w + c.X
}

// coord converts a flat array index to a coordinate.
func (g *Grid) coord(i int) Coord {
	return C(i%g.w, i/g.w)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Max returns the largest valid coordinate.
func (g *Grid) Max() Coord { return g.max }

// Midpoint returns the column each row scan starts from.
func (g *Grid) Midpoint() int { return g.midpoint }

// Tick returns how many steps have run.
func (g *Grid) Tick() uint64 { return g.tick }

// RNG returns the grid's random source.
func (g *Grid) RNG() *RNG { return g.rng }

// ScanOrder returns a copy of the column visiting order used for every row.
func (g *Grid) ScanOrder() []int {
	out := make([]int, len(g.order))
	copy(out, g.order)
	return out
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X <= g.max.X && c.Y >= 0 && c.Y <= g.max.Y
}

func (g *Grid) outOfBounds(c Coord) error {
	return &OutOfBoundsError{Coord: c, Width: g.w, Height: g.h}
}

// At returns the material at c. It is the lenient read behind View:
// out-of-bounds coordinates read as Empty instead of failing. Callers that
// must not silently read outside the grid use MaterialAt or ColorAt.
func (g *Grid) At(c Coord) Material {
	if !g.InBounds(c) {
		return Empty()
	}
	return g.cells[g.index(c)].Material
}

// Locked reports whether the cell at c already took part in a swap this tick.
func (g *Grid) Locked(c Coord) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.cells[g.index(c)].swapped
}

// MaterialAt returns the material at c, or an OutOfBounds error.
func (g *Grid) MaterialAt(c Coord) (Material, error) {
	if !g.InBounds(c) {
		return Material{}, g.outOfBounds(c)
	}
	return g.cells[g.index(c)].Material, nil
}

// ColorAt returns the display color at c, or an OutOfBounds error.
func (g *Grid) ColorAt(c Coord) (Color, error) {
	m, err := g.MaterialAt(c)
	if err != nil {
		return "", err
	}
	return m.Color, nil
}

// Neighbors returns the precomputed neighbors of c.
func (g *Grid) Neighbors(c Coord) (Neighbors, error) {
	if !g.InBounds(c) {
		return Neighbors{}, g.outOfBounds(c)
	}
	return g.cells[g.index(c)].Neighbors, nil
}

// Spawn overwrites the material at c with a fresh one from f.
// The grid is left unchanged when c is out of bounds.
func (g *Grid) Spawn(f Factory, c Coord) error {
	if !g.InBounds(c) {
		return g.outOfBounds(c)
	}
	g.cells[g.index(c)].Material = f(g.rng)
	return nil
}

// SpawnMaterial overwrites the material at c with m as given.
// The grid is left unchanged when c is out of bounds.
func (g *Grid) SpawnMaterial(m Material, c Coord) error {
	if !g.InBounds(c) {
		return g.outOfBounds(c)
	}
	g.cells[g.index(c)].Material = m
	return nil
}

// Fill spawns a fresh material from f into every cell of the inclusive
// rectangle spanned by corners a and b. Both corners must be in bounds;
// otherwise nothing is written.
func (g *Grid) Fill(f Factory, a, b Coord) error {
	if !g.InBounds(a) {
		return g.outOfBounds(a)
	}
	if !g.InBounds(b) {
		return g.outOfBounds(b)
	}
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.cells[g.index(C(x, y))].Material = f(g.rng)
		}
	}
	return nil
}

// SpawnKind spawns the default material of kind k at c.
func (g *Grid) SpawnKind(k Kind, c Coord) error {
	return g.Spawn(KindFactory(k), c)
}

// Clear resets every cell to empty. The tick counter is kept.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].Material = Empty()
		g.cells[i].updated = false
		g.cells[i].swapped = false
	}
}

// Counts returns how many cells hold each kind.
func (g *Grid) Counts() map[Kind]int {
	counts := make(map[Kind]int, KindCount)
	for _, cell := range g.cells {
		counts[cell.Material.Kind]++
	}
	return counts
}
