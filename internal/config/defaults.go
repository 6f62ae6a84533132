package config

import (
	_ "embed"
)

//go:embed defaults/sand.yaml
var defaultSandYAML []byte

// DefaultSimConfig returns the default simulator configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		TickRate:   60,
		Duration:   0,
		Render:     true,
		Scenario:   "hills",
		Theme:      "default",
		StatsEvery: 60,
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSandYAML
}
