package render

import (
	"strings"

	"github.com/vovakirdan/tui-sand/internal/sim"
)

// Glyph returns the ASCII character for a material.
func Glyph(m sim.Material) byte {
	switch m.Name {
	case "glass":
		return '='
	}
	switch m.Kind {
	case sim.KindMovableSolid:
		return 's'
	case sim.KindLiquid:
		return '~'
	case sim.KindImmovableSolid:
		return '#'
	default:
		return '.'
	}
}

// ASCII renders one character per cell, rows separated by newlines.
func ASCII(g *sim.Grid) string {
	var sb strings.Builder
	sb.Grow((g.Width() + 1) * g.Height())
	for y := 0; y < g.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.Width(); x++ {
			sb.WriteByte(Glyph(g.At(sim.C(x, y))))
		}
	}
	return sb.String()
}
