package scenario

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-sand/internal/scenario/formats"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// Loader handles loading scenarios from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scenario files.
// Invalid files are skipped. Returns scenarios sorted by ID.
// A missing root directory yields no scenarios.
func (l *Loader) LoadAll() ([]Scenario, error) {
	var scenarios []Scenario

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		s, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		scenarios = append(scenarios, s)
		return nil
	})

	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})

	return scenarios, nil
}

// LoadFile loads and validates a single scenario file.
func (l *Loader) LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	doc, err := formats.ParseYAML(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	s := FromYAML(doc)
	s.FilePath = path
	if err := s.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("loading file %s: %w", path, err)
	}
	return s, nil
}

// LoadByID loads a specific scenario by ID.
func (l *Loader) LoadByID(id string) (Scenario, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return Scenario{}, err
	}

	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}

	return Scenario{}, fmt.Errorf("scenario: unknown scenario %q", id)
}

// FromYAML converts a parsed file into a Scenario.
func FromYAML(doc formats.YAMLScenario) Scenario {
	s := Scenario{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Width:       doc.Size.W,
		Height:      doc.Size.H,
	}
	if s.Name == "" {
		s.Name = s.ID
	}

	for _, f := range doc.Fills {
		units := Units(strings.ToLower(f.Units))
		if units == "" {
			units = UnitsRatio
		}
		density := 1.0
		if f.Density != nil {
			density = *f.Density
		}
		s.Fills = append(s.Fills, Fill{
			Material: f.Material,
			Region:   Region{X: f.Rect.X, Y: f.Rect.Y, W: f.Rect.W, H: f.Rect.H, Units: units},
			Density:  density,
		})
	}

	for _, p := range doc.Pixels {
		s.Pixels = append(s.Pixels, Pixel{At: sim.C(p.X, p.Y), Material: p.Material})
	}
	return s
}

// ToYAML converts a Scenario into its file representation.
func ToYAML(s Scenario) formats.YAMLScenario {
	doc := formats.YAMLScenario{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Size:        formats.YAMLSize{W: s.Width, H: s.Height},
	}
	for _, f := range s.Fills {
		density := f.Density
		doc.Fills = append(doc.Fills, formats.YAMLFill{
			Material: f.Material,
			Rect:     formats.YAMLRect{X: f.Region.X, Y: f.Region.Y, W: f.Region.W, H: f.Region.H},
			Units:    string(f.Region.Units),
			Density:  &density,
		})
	}
	for _, p := range s.Pixels {
		doc.Pixels = append(doc.Pixels, formats.YAMLPixel{X: p.At.X, Y: p.At.Y, Material: p.Material})
	}
	return doc
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, e := range formats.FormatExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}
