package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/scenario/formats"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

func TestBuiltinsRegistered(t *testing.T) {
	expected := []string{"empty", "hills", "hourglass", "pool", "rain"}
	ids := IDs(List())
	if strings.Join(ids, ",") != strings.Join(expected, ",") {
		t.Errorf("List() = %v, expected %v", ids, expected)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate id should panic")
		}
	}()
	Register(Scenario{ID: "hills"})
}

func TestRegionResolve(t *testing.T) {
	tests := []struct {
		name     string
		region   Region
		expected core.Rect
	}{
		{"ratio quarter", Ratio(0.25, 0.6, 0.25, 0.4), core.NewRect(10, 12, 10, 8)},
		{"ratio full", Ratio(0, 0, 1, 1), core.NewRect(0, 0, 40, 20)},
		{"cells inside", Cells(1, 2, 3, 4), core.NewRect(1, 2, 3, 4)},
		{"cells clipped", Cells(38, 18, 5, 5), core.NewRect(38, 18, 2, 2)},
		{"cells outside", Cells(50, 50, 2, 2), core.Rect{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.region.Resolve(40, 20)
			if got != tc.expected {
				t.Errorf("Resolve() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestBuildHills(t *testing.T) {
	s, err := Get("hills")
	if err != nil {
		t.Fatalf("Get(hills): %v", err)
	}

	g, err := s.Build(40, 20, sim.WithSeed(7))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	counts := g.Counts()
	if counts[sim.KindMovableSolid] == 0 {
		t.Error("hills should contain sand")
	}
	if counts[sim.KindLiquid] == 0 {
		t.Error("hills should contain water")
	}

	// Nothing is placed left of the first quarter.
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < 10; x++ {
			if m := g.At(sim.C(x, y)); m.Kind != sim.KindEmpty {
				t.Fatalf("cell (%d,%d) = %s, expected empty", x, y, m.Kind)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	s, _ := Get("rain")
	a, err := s.Build(30, 30, sim.WithSeed(99))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, _ := s.Build(30, 30, sim.WithSeed(99))

	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			c := sim.C(x, y)
			if a.At(c).Kind != b.At(c).Kind {
				t.Fatalf("cell %v differs between runs with the same seed", c)
			}
		}
	}
}

func TestFullDensityFillsEveryCell(t *testing.T) {
	s := Scenario{
		ID:    "block",
		Fills: []Fill{{Material: "rock", Region: Cells(1, 1, 2, 2), Density: 1}},
	}
	g, err := s.Build(4, 4, sim.WithSeed(1))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.Counts()[sim.KindImmovableSolid]; got != 4 {
		t.Errorf("rock count = %d, expected 4", got)
	}
}

func TestFixedSizeOverridesCaller(t *testing.T) {
	s := Scenario{ID: "fixed", Width: 12, Height: 6}
	g, err := s.Build(80, 40)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Width() != 12 || g.Height() != 6 {
		t.Errorf("size = %dx%d, expected 12x6", g.Width(), g.Height())
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	s := Scenario{
		ID:     "bad-pixel",
		Pixels: []Pixel{{At: sim.C(10, 0), Material: "sand"}},
	}
	_, err := s.Build(5, 5)
	if !errors.Is(err, sim.ErrOutOfBounds) {
		t.Errorf("Build error = %v, expected ErrOutOfBounds", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Scenario
		ok   bool
	}{
		{"valid", Scenario{ID: "ok", Fills: []Fill{{Material: "sand", Region: Ratio(0, 0, 1, 1), Density: 0.5}}}, true},
		{"missing id", Scenario{}, false},
		{"unknown material", Scenario{ID: "x", Fills: []Fill{{Material: "lava", Region: Ratio(0, 0, 1, 1), Density: 1}}}, false},
		{"density too high", Scenario{ID: "x", Fills: []Fill{{Material: "sand", Region: Ratio(0, 0, 1, 1), Density: 2}}}, false},
		{"empty region", Scenario{ID: "x", Fills: []Fill{{Material: "sand", Region: Ratio(0, 0, 0, 1), Density: 1}}}, false},
		{"bad units", Scenario{ID: "x", Fills: []Fill{{Material: "sand", Region: Region{W: 1, H: 1, Units: "px"}, Density: 1}}}, false},
		{"bad pixel material", Scenario{ID: "x", Pixels: []Pixel{{Material: "plasma"}}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

const dunesYAML = `id: dunes
name: Dunes
description: Sand over a glass floor
size:
  w: 20
  h: 10
fills:
  - material: sand
    rect: {x: 0, y: 0, w: 1, h: 0.5}
    density: 0.5
  - material: glass
    units: cells
    rect: {x: 0, y: 9, w: 20, h: 1}
pixels:
  - {x: 10, y: 0, material: water}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dunes.yaml", dunesYAML)
	writeFile(t, dir, "alpha.yml", "id: alpha\nname: Alpha\n")
	writeFile(t, dir, "broken.yaml", "id: [not a string\n")
	writeFile(t, dir, "lava.yaml", "id: lava\nfills:\n  - material: lava\n    rect: {x: 0, y: 0, w: 1, h: 1}\n")
	writeFile(t, dir, "notes.txt", "id: ignored\n")

	scenarios, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("LoadAll returned %d scenarios, expected 2", len(scenarios))
	}
	if scenarios[0].ID != "alpha" || scenarios[1].ID != "dunes" {
		t.Errorf("order = [%s %s], expected [alpha dunes]", scenarios[0].ID, scenarios[1].ID)
	}

	dunes := scenarios[1]
	if dunes.Width != 20 || dunes.Height != 10 {
		t.Errorf("size = %dx%d, expected 20x10", dunes.Width, dunes.Height)
	}
	if dunes.Fills[1].Region.Units != UnitsCells {
		t.Errorf("units = %q, expected cells", dunes.Fills[1].Region.Units)
	}
	if dunes.Fills[1].Density != 1 {
		t.Errorf("default density = %v, expected 1", dunes.Fills[1].Density)
	}

	g, err := dunes.Build(0, 0, sim.WithSeed(3))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.At(sim.C(10, 0)).Kind; got != sim.KindLiquid {
		t.Errorf("pixel kind = %s, expected liquid", got)
	}
	if got := g.At(sim.C(0, 9)).Name; got != "glass" {
		t.Errorf("floor = %s, expected glass", got)
	}
}

func TestLoaderMissingDir(t *testing.T) {
	scenarios, err := NewLoader(filepath.Join(t.TempDir(), "nope")).LoadAll()
	if err != nil {
		t.Errorf("LoadAll on missing dir returned error: %v", err)
	}
	if len(scenarios) != 0 {
		t.Errorf("LoadAll on missing dir returned %d scenarios", len(scenarios))
	}
}

func TestLookupAndCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dunes.yaml", dunesYAML)
	writeFile(t, dir, "hills.yaml", "id: hills\nname: Shadowed\n")

	s, err := Lookup("dunes", dir)
	if err != nil {
		t.Fatalf("Lookup(dunes): %v", err)
	}
	if s.FilePath == "" {
		t.Error("file scenario should carry its path")
	}

	s, err = Lookup("hills", dir)
	if err != nil || s.Name != "Hills" {
		t.Errorf("Lookup(hills) = %q, %v; built-in should win", s.Name, err)
	}

	if _, err := Lookup("missing", dir); err == nil {
		t.Error("Lookup(missing) should fail")
	}

	infos, err := Catalog(dir)
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(infos) != len(List())+1 {
		t.Errorf("Catalog has %d entries, expected %d", len(infos), len(List())+1)
	}
	if last := infos[len(infos)-1]; last.ID != "dunes" || last.Source == "builtin" {
		t.Errorf("last entry = %+v, expected file scenario dunes", last)
	}
}

func TestYAMLRoundTripKeepsLayout(t *testing.T) {
	orig, _ := Get("pool")
	data, err := formats.MarshalYAML(ToYAML(orig))
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	doc, err := formats.ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	a, _ := orig.Build(30, 20, sim.WithSeed(5))
	b, err := FromYAML(doc).Build(30, 20, sim.WithSeed(5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			c := sim.C(x, y)
			if a.At(c).Kind != b.At(c).Kind {
				t.Fatalf("cell %v differs after YAML round trip", c)
			}
		}
	}
}

func TestAllAndIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dunes.yaml", dunesYAML)

	all, err := All(dir)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != len(List())+1 {
		t.Fatalf("All returned %d scenarios, expected %d", len(all), len(List())+1)
	}
	if i := Index(all, "dunes"); i != len(all)-1 {
		t.Errorf("Index(dunes) = %d, expected %d", i, len(all)-1)
	}
	if i := Index(all, "nope"); i != -1 {
		t.Errorf("Index(nope) = %d, expected -1", i)
	}

	builtins, err := All("")
	if err != nil || len(builtins) != len(List()) {
		t.Errorf("All(\"\") = %d scenarios, %v", len(builtins), err)
	}
}
