package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCopter loads Copter configuration.
// Search order: customPath -> ~/.arcade/configs/copter.yaml -> ./configs/copter.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names.
func LoadCopter(customPath string) (CopterConfig, error) {
	cfg := DefaultCopterConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("copter.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "copter.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	embedded := DefaultCopterConfig()
	if err := yaml.Unmarshal(defaultCopterYAML, &embedded); err != nil {
		return DefaultCopterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Missing or malformed files are skipped.
func tryLoad(path string) (CopterConfig, bool) {
	cfg := DefaultCopterConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyCopterPreset modifies the config based on a difficulty preset.
func ApplyCopterPreset(cfg *CopterConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Crash budget follows the preset
	switch preset {
	case DifficultyEasy:
		cfg.Session.MaxCrashes = 75
	case DifficultyHard:
		cfg.Session.MaxCrashes = 25
	}
}
