// Package render draws a sim.Grid for terminals. Frame packs two grid rows
// into each text row with half-block characters; ASCII gives one character
// per cell for logs and tests.
package render

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// Theme maps material colors to display colors.
type Theme struct {
	Name       string
	Background sim.Color
	transform  func(sim.Color) sim.Color
}

// Color returns the display color for a material color.
func (t Theme) Color(c sim.Color) sim.Color {
	if t.transform == nil {
		return c
	}
	return t.transform(c)
}

var themes = map[string]Theme{
	"default": {Name: "default", Background: sim.Background},
	"mono":    {Name: "mono", Background: sim.Background, transform: desaturate},
}

// DefaultTheme returns the material palette unchanged.
func DefaultTheme() Theme {
	return themes["default"]
}

// ThemeByName returns a named theme. An empty name selects the default.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("render: unknown theme %q", name)
	}
	return t, nil
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// desaturate keeps a color's lightness and drops its chroma.
func desaturate(c sim.Color) sim.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	_, _, l := col.Hcl()
	return sim.Color(colorful.Hcl(0, 0, l).Clamped().Hex())
}
