package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultSimConfig()
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != DefaultSimConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultSimConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("tick_rate: 30\nscenario: rain\nseed: 42\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.TickRate)
	}
	if cfg.Scenario != "rain" {
		t.Errorf("Scenario = %q, expected rain", cfg.Scenario)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, expected 42", cfg.Seed)
	}
	// Unset fields keep defaults.
	if !cfg.Render || cfg.StatsEvery != 60 {
		t.Errorf("unset fields lost defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("tick_rate: [1, 2"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("Load of malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("tick_rate: 0\n"), 0o644)
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load of zero tick rate = %v, expected ErrInvalidConfig", err)
	}

	unpaced := filepath.Join(dir, "unpaced.yaml")
	os.WriteFile(unpaced, []byte("tick_rate: 0\nrender: false\n"), 0o644)
	cfg, err := Load(unpaced)
	if err != nil {
		t.Fatalf("Load of headless zero tick rate failed: %v", err)
	}
	if cfg.TickRate != 0 {
		t.Errorf("TickRate = %d, expected 0", cfg.TickRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SimConfig)
		ok     bool
	}{
		{"defaults", func(*SimConfig) {}, true},
		{"zero tick rate when rendering", func(c *SimConfig) { c.TickRate = 0 }, false},
		{"zero tick rate headless", func(c *SimConfig) { c.TickRate, c.Render = 0, false }, true},
		{"zero tick rate in debug", func(c *SimConfig) { c.TickRate, c.Debug = 0, true }, true},
		{"negative tick rate headless", func(c *SimConfig) { c.TickRate, c.Render = -1, false }, false},
		{"negative duration", func(c *SimConfig) { c.Duration = -1 }, false},
		{"negative width", func(c *SimConfig) { c.Width = -5 }, false},
		{"negative stats interval", func(c *SimConfig) { c.StatsEvery = -1 }, false},
		{"mono theme", func(c *SimConfig) { c.Theme = "mono" }, true},
		{"unknown theme", func(c *SimConfig) { c.Theme = "neon" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSimConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestHeadless(t *testing.T) {
	cfg := DefaultSimConfig()
	if cfg.Headless() {
		t.Error("default config should render")
	}
	cfg.Debug = true
	if !cfg.Headless() {
		t.Error("debug should run headless")
	}
	cfg.Debug, cfg.Render = false, false
	if !cfg.Headless() {
		t.Error("render=false should run headless")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultSimConfig()
	cfg.Scenario = "pool"
	cfg.Width = 100

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, expected %+v", loaded, cfg)
	}
}
