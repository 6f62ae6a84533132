package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// HalfBlock is drawn for every text cell: the background shows the upper
// grid cell and the foreground the lower one.
const HalfBlock = "▄"

type pair struct {
	top, bottom sim.Color
}

// Renderer draws frames with a theme, caching one style per color pair.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	theme  Theme
	styles map[pair]lipgloss.Style
}

// NewRenderer creates a renderer for the theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme, styles: make(map[pair]lipgloss.Style)}
}

// Frame renders g with a throwaway renderer.
func Frame(g *sim.Grid, theme Theme) string {
	return NewRenderer(theme).Frame(g)
}

// Lines returns the number of text rows Frame produces for a grid height.
func Lines(height int) int {
	return (height + 1) / 2
}

// Frame converts the grid to a styled string, two grid rows per line.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
// A trailing odd row is drawn over the theme background.
func (r *Renderer) Frame(g *sim.Grid) string {
	w, h := g.Width(), g.Height()

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(w*Lines(h)*8 + Lines(h))

	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < w {
			start := r.pairAt(g, x, y)

			// Collect consecutive cells with the same pair
			n := 0
			for x < w && r.pairAt(g, x, y) == start {
				n++
				x++
			}

			sb.WriteString(r.style(start).Render(strings.Repeat(HalfBlock, n)))
		}
	}
	return sb.String()
}

func (r *Renderer) pairAt(g *sim.Grid, x, y int) pair {
	p := pair{
		top:    r.theme.Color(g.At(sim.C(x, y)).Color),
		bottom: r.theme.Background,
	}
	if y+1 < g.Height() {
		p.bottom = r.theme.Color(g.At(sim.C(x, y+1)).Color)
	}
	return p
}

func (r *Renderer) style(p pair) lipgloss.Style {
	if s, ok := r.styles[p]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.bottom)).
		Background(lipgloss.Color(p.top))
	r.styles[p] = s
	return s
}
