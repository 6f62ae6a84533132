package render

import (
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

func TestASCII(t *testing.T) {
	g := sim.New(4, 2, sim.WithSeed(1))
	g.Spawn(sim.NewSand, sim.C(0, 0))
	g.Spawn(sim.NewWater, sim.C(1, 0))
	g.Spawn(sim.NewRock, sim.C(2, 1))
	g.Spawn(sim.NewGlass, sim.C(3, 1))

	expected := "s~..\n..#="
	if got := ASCII(g); got != expected {
		t.Errorf("ASCII() = %q, expected %q", got, expected)
	}
}

func TestFrameShape(t *testing.T) {
	tests := []struct {
		w, h  int
		lines int
	}{
		{3, 4, 2},
		{3, 3, 2}, // odd height draws the last row over the background
		{5, 1, 1},
	}

	for _, tc := range tests {
		g := sim.New(tc.w, tc.h, sim.WithSeed(1))
		out := Frame(g, DefaultTheme())

		lines := strings.Split(out, "\n")
		if len(lines) != tc.lines {
			t.Errorf("%dx%d: %d lines, expected %d", tc.w, tc.h, len(lines), tc.lines)
		}
		if got := strings.Count(out, HalfBlock); got != tc.w*tc.lines {
			t.Errorf("%dx%d: %d half blocks, expected %d", tc.w, tc.h, got, tc.w*tc.lines)
		}
		if Lines(tc.h) != tc.lines {
			t.Errorf("Lines(%d) = %d, expected %d", tc.h, Lines(tc.h), tc.lines)
		}
	}
}

func TestRendererCachesStylesPerPair(t *testing.T) {
	g := sim.New(4, 2, sim.WithSeed(1))
	g.Spawn(sim.NewGlass, sim.C(0, 0))
	g.Spawn(sim.NewGlass, sim.C(1, 0))

	r := NewRenderer(DefaultTheme())
	r.Frame(g)
	r.Frame(g)

	// glass over empty, and empty over empty
	if len(r.styles) != 2 {
		t.Errorf("cached %d styles, expected 2", len(r.styles))
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		if _, err := ThemeByName(name); err != nil {
			t.Errorf("ThemeByName(%q): %v", name, err)
		}
	}
	if th, err := ThemeByName(""); err != nil || th.Name != "default" {
		t.Errorf("ThemeByName(\"\") = %q, %v; expected default", th.Name, err)
	}
	if _, err := ThemeByName("neon"); err == nil {
		t.Error("ThemeByName(neon) should fail")
	}
}

func TestMonoThemeIsGray(t *testing.T) {
	mono, _ := ThemeByName("mono")

	for _, c := range append(append([]sim.Color{}, sim.SandColors...), sim.WaterColors...) {
		out, err := colorful.Hex(string(mono.Color(c)))
		if err != nil {
			t.Fatalf("mono.Color(%s) is not a hex color: %v", c, err)
		}
		if math.Abs(out.R-out.G) > 0.02 || math.Abs(out.G-out.B) > 0.02 {
			t.Errorf("mono.Color(%s) = %s, expected a gray", c, out.Hex())
		}
	}

	if got := DefaultTheme().Color(sim.GlassColor); got != sim.GlassColor {
		t.Errorf("default theme changed %s to %s", sim.GlassColor, got)
	}
}
