package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads simulator configuration.
// Search order: customPath -> ~/.sand/config.yaml -> ./configs/sand.yaml -> embedded default
// Values missing from a file keep their defaults.
func Load(customPath string) (SimConfig, error) {
	cfg := DefaultSimConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if loaded, ok := parse(data); ok {
				return loaded, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/sand.yaml"); err == nil {
		if loaded, ok := parse(data); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if loaded, ok := parse(defaultSandYAML); ok {
		return loaded, nil
	}
	return DefaultSimConfig(), nil // Fallback to hardcoded if embed fails
}

// parse decodes data over the defaults; unreadable or invalid data is ignored.
func parse(data []byte) (SimConfig, bool) {
	cfg := DefaultSimConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// UserPath returns a path inside ~/.sand, or empty if home is unavailable.
func UserPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sand", filename)
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg SimConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
