// Package config provides YAML-based simulator configuration loading.
package config

import (
	"errors"
	"fmt"
)

// SimConfig contains all configuration for a simulation run.
type SimConfig struct {
	TickRate    int    `yaml:"tick_rate"`    // Ticks per second, also the render refresh rate; 0 = unpaced (headless only)
	Duration    int    `yaml:"duration"`     // Ticks to run, 0 = unbounded
	Render      bool   `yaml:"render"`       // Draw frames; false runs headless
	Debug       bool   `yaml:"debug"`        // Headless with debug logging
	Seed        int64  `yaml:"seed"`         // 0 = time-based
	Scenario    string `yaml:"scenario"`     // Scenario ID to start with
	ScenarioDir string `yaml:"scenario_dir"` // Extra YAML scenarios
	Theme       string `yaml:"theme"`        // "default" or "mono"
	Width       int    `yaml:"width"`        // Grid width, 0 = terminal width
	Height      int    `yaml:"height"`       // Grid height, 0 = from terminal height
	DBPath      string `yaml:"db_path"`      // Run history database, empty = ~/.sand/runs.db
	StatsEvery  int    `yaml:"stats_every"`  // Headless stats log interval in ticks
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the configuration for values the simulator cannot use.
func (c SimConfig) Validate() error {
	// Headless runs may go unpaced; a display needs a refresh rate.
	if c.TickRate < 0 || (c.TickRate == 0 && !c.Headless()) {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %d", ErrInvalidConfig, c.Duration)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: size must not be negative, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.StatsEvery < 0 {
		return fmt.Errorf("%w: stats_every must not be negative, got %d", ErrInvalidConfig, c.StatsEvery)
	}
	switch c.Theme {
	case "", "default", "mono":
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme)
	}
	return nil
}

// Headless reports whether the run should skip rendering.
func (c SimConfig) Headless() bool {
	return !c.Render || c.Debug
}
