package config

import "testing"

func TestDifficultyDisabledKeepsBaseSpeed(t *testing.T) {
	d := NewDifficultyManager(DefaultCopterConfig().Difficulty)

	if d.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	if got := d.Speed(0.5, 1000, 100000); got != 0.5 {
		t.Errorf("Speed() = %f, expected base 0.5", got)
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.5},
		{50, 0.75},
		{100, 1.0},
		{500, 1.0}, // capped at max level
	}
	for _, tc := range tests {
		if got := d.Speed(0.5, tc.score, 0); got != tc.expected {
			t.Errorf("Speed(score=%d) = %f, expected %f", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 1000},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level at tick 0 = %f, expected 0.5", got)
	}
	if got := d.Level(0, 1000); got != 1.0 {
		t.Errorf("Level at max_at = %f, expected 1.0", got)
	}
}

func TestDifficultyInitialLevelClamped(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{InitialLevel: 3})
	if got := d.Level(0, 0); got != 1.0 {
		t.Errorf("Level = %f, expected clamp to 1.0", got)
	}
}
