// Package scenario describes initial grid layouts. A scenario is a list of
// region fills and single-cell placements applied through sim.Grid.Spawn.
// Built-in scenarios register themselves in init(); more can be loaded from
// YAML files.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// Units selects how a Region is measured.
type Units string

const (
	UnitsRatio Units = "ratio" // fractions of the grid size
	UnitsCells Units = "cells" // absolute cell coordinates
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid scenario")

// Region is a rectangle in either grid fractions or cells.
type Region struct {
	X, Y, W, H float64
	Units      Units
}

// Ratio builds a region measured in grid fractions.
func Ratio(x, y, w, h float64) Region {
	return Region{X: x, Y: y, W: w, H: h, Units: UnitsRatio}
}

// Cells builds a region measured in cells.
func Cells(x, y, w, h int) Region {
	return Region{X: float64(x), Y: float64(y), W: float64(w), H: float64(h), Units: UnitsCells}
}

// Resolve converts the region to cells for a w x h grid and clips it to
// the grid. Ratio edges are truncated.
func (r Region) Resolve(w, h int) core.Rect {
	var rect core.Rect
	switch r.Units {
	case UnitsCells:
		rect = core.NewRect(int(r.X), int(r.Y), int(r.W), int(r.H))
	default:
		x0 := scale(r.X, w)
		y0 := scale(r.Y, h)
		rect = core.NewRect(x0, y0, scale(r.X+r.W, w)-x0, scale(r.Y+r.H, h)-y0)
	}
	return rect.Clip(core.NewRect(0, 0, w, h))
}

func scale(f float64, n int) int {
	return int(math.Floor(f*float64(n) + 1e-9))
}

// Fill scatters a material over a region. Each cell in the region is
// filled with probability Density.
type Fill struct {
	Material string
	Region   Region
	Density  float64
}

// Pixel places a material at one cell.
type Pixel struct {
	At       sim.Coord
	Material string
}

// Scenario is a named initial layout.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Width       int // fixed grid width, 0 means use the caller's size
	Height      int // fixed grid height, 0 means use the caller's size
	Fills       []Fill
	Pixels      []Pixel
	FilePath    string // set for scenarios loaded from disk
}

// Validate reports the first problem with the scenario definition.
func (s Scenario) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: %s: negative size %dx%d", ErrInvalid, s.ID, s.Width, s.Height)
	}
	for i, f := range s.Fills {
		if _, ok := sim.ParseMaterial(f.Material); !ok {
			return fmt.Errorf("%w: %s: fill %d: unknown material %q", ErrInvalid, s.ID, i, f.Material)
		}
		if f.Density < 0 || f.Density > 1 {
			return fmt.Errorf("%w: %s: fill %d: density %v outside [0, 1]", ErrInvalid, s.ID, i, f.Density)
		}
		if f.Region.W <= 0 || f.Region.H <= 0 {
			return fmt.Errorf("%w: %s: fill %d: empty region", ErrInvalid, s.ID, i)
		}
		switch f.Region.Units {
		case UnitsRatio, UnitsCells:
		default:
			return fmt.Errorf("%w: %s: fill %d: unknown units %q", ErrInvalid, s.ID, i, f.Region.Units)
		}
	}
	for i, p := range s.Pixels {
		if _, ok := sim.ParseMaterial(p.Material); !ok {
			return fmt.Errorf("%w: %s: pixel %d: unknown material %q", ErrInvalid, s.ID, i, p.Material)
		}
	}
	return nil
}

// Size returns the grid size to build, preferring the scenario's fixed size.
func (s Scenario) Size(w, h int) (int, int) {
	if s.Width > 0 {
		w = s.Width
	}
	if s.Height > 0 {
		h = s.Height
	}
	return w, h
}

// Build creates a grid for the scenario and applies it.
func (s Scenario) Build(w, h int, opts ...sim.Option) (*sim.Grid, error) {
	w, h = s.Size(w, h)
	g := sim.New(w, h, opts...)
	if err := s.Apply(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply spawns the scenario's fills then its pixels into g. Fills are
// clipped to the grid; a pixel outside the grid is an error.
func (s Scenario) Apply(g *sim.Grid) error {
	if err := s.Validate(); err != nil {
		return err
	}

	rng := g.RNG()
	for _, f := range s.Fills {
		factory, _ := sim.ParseMaterial(f.Material)
		rect := f.Region.Resolve(g.Width(), g.Height())
		density := core.ClampF(f.Density, 0, 1)
		if rect.Empty() {
			continue
		}
		if density >= 1 {
			err := g.Fill(factory, sim.C(rect.X, rect.Y), sim.C(rect.Right()-1, rect.Bottom()-1))
			if err != nil {
				return fmt.Errorf("scenario %s: %w", s.ID, err)
			}
			continue
		}
		for y := rect.Y; y < rect.Bottom(); y++ {
			for x := rect.X; x < rect.Right(); x++ {
				if rng.Float64() >= density {
					continue
				}
				if err := g.Spawn(factory, sim.C(x, y)); err != nil {
					return fmt.Errorf("scenario %s: %w", s.ID, err)
				}
			}
		}
	}

	for _, p := range s.Pixels {
		factory, _ := sim.ParseMaterial(p.Material)
		if err := g.Spawn(factory, p.At); err != nil {
			return fmt.Errorf("scenario %s: %w", s.ID, err)
		}
	}
	return nil
}
