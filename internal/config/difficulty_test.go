package config

import (
	"math"
	"testing"
)

func TestDifficultyDisabledIsNeutral(t *testing.T) {
	d := NewDifficultyManager(DefaultBruinWalkConfig().Difficulty)

	if d.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	if f := d.SpeedFactor(500, 100000); f != 1.0 {
		t.Errorf("SpeedFactor() = %v, expected exactly 1", f)
	}
	if p := d.SafeProbability(0.125, 500, 0); p != 0.125 {
		t.Errorf("SafeProbability() = %v, expected base", p)
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.5, SafeReduction: 0.1},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		level float64
	}{
		{-10, 0.0},
		{0, 0.0},
		{50, 0.5},
		{100, 1.0},
		{400, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); math.Abs(got-tc.level) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.level)
		}
	}

	if got := d.SpeedFactor(100, 0); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("SpeedFactor at max = %v, expected 1.5", got)
	}
	if got := d.SafeProbability(0.05, 100, 0); got != 0 {
		t.Errorf("SafeProbability should clamp at zero, got %v", got)
	}
}

func TestDifficultyTimeProgressionFromInitialLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 1000},
	})

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level at start = %v, expected 0.5", got)
	}
	if got := d.Level(0, 500); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Level halfway = %v, expected 0.75", got)
	}

	d = NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 1000},
	})
	if got := d.Level(0, 1000); got != 0.5 {
		t.Errorf("disabled Level = %v, expected initial 0.5", got)
	}
}
