// Package formats provides pluggable scenario file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLScenario represents the YAML structure for a scenario file.
type YAMLScenario struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Size        YAMLSize    `yaml:"size,omitempty"`
	Fills       []YAMLFill  `yaml:"fills,omitempty"`
	Pixels      []YAMLPixel `yaml:"pixels,omitempty"`
}

// YAMLSize represents fixed grid dimensions. Zero means "use the screen".
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLRect is a region either in grid fractions or in cells.
type YAMLRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLFill scatters one material over a region.
type YAMLFill struct {
	Material string   `yaml:"material"`
	Rect     YAMLRect `yaml:"rect"`
	Units    string   `yaml:"units,omitempty"`   // "ratio" (default) or "cells"
	Density  *float64 `yaml:"density,omitempty"` // nil means 1
}

// YAMLPixel places one material at an exact cell.
type YAMLPixel struct {
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Material string `yaml:"material"`
}

// ParseYAML parses a YAML scenario file.
func ParseYAML(data []byte) (YAMLScenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return YAMLScenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.ID == "" {
		return YAMLScenario{}, fmt.Errorf("yaml: missing scenario id")
	}
	return ys, nil
}

// MarshalYAML encodes a scenario document.
func MarshalYAML(ys YAMLScenario) ([]byte, error) {
	data, err := yaml.Marshal(ys)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
