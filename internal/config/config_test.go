package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg CopterConfig
	if err := yaml.Unmarshal(GetDefaultYAML("copter"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultCopterConfig()) {
		t.Errorf("embedded defaults differ from DefaultCopterConfig():\n got %+v\nwant %+v", cfg, DefaultCopterConfig())
	}
}

func TestGetDefaultYAMLUnknownGame(t *testing.T) {
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no embedded YAML")
	}
}

func TestLoadCopterCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copter.yaml")
	data := []byte("physics:\n  gravity: 0.1\nsession:\n  max_crashes: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadCopter(path)
	if err != nil {
		t.Fatalf("LoadCopter() failed: %v", err)
	}

	if cfg.Physics.Gravity != 0.1 {
		t.Errorf("Gravity = %f, expected 0.1", cfg.Physics.Gravity)
	}
	if cfg.Session.MaxCrashes != 3 {
		t.Errorf("MaxCrashes = %d, expected 3", cfg.Session.MaxCrashes)
	}
	// Keys missing from the file keep their defaults
	if cfg.Physics.LiftForce != 1.2 {
		t.Errorf("LiftForce = %f, expected default 1.2", cfg.Physics.LiftForce)
	}
	if cfg.Obstacles.Count != 5 {
		t.Errorf("Obstacles.Count = %d, expected default 5", cfg.Obstacles.Count)
	}
}

func TestLoadCopterMissingFile(t *testing.T) {
	_, err := LoadCopter(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("LoadCopter() should fail for a missing custom file")
	}
}

func TestLoadCopterBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [not, a, map"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := LoadCopter(path); err == nil {
		t.Error("LoadCopter() should fail for malformed YAML")
	}
}

func TestApplyCopterPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		level      float64
		maxCrashes int
	}{
		{DifficultyEasy, true, 0.0, 75},
		{DifficultyNormal, true, 0.3, 50},
		{DifficultyHard, true, 0.7, 25},
		{DifficultyFixed, false, 0.0, 50},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultCopterConfig()
			ApplyCopterPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %f, expected %f", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Session.MaxCrashes != tc.maxCrashes {
				t.Errorf("MaxCrashes = %d, expected %d", cfg.Session.MaxCrashes, tc.maxCrashes)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error(`ParsePreset("hard") should be DifficultyHard`)
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should parse to empty")
	}
	if !IsFixedPreset(ParsePreset("fixed")) {
		t.Error(`"fixed" should be a fixed preset`)
	}
}
