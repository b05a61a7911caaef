// Package config provides YAML/TOML game configuration loading and
// difficulty management for Bruin Walk.
package config

import (
	"errors"
	"fmt"
)

// BruinWalkConfig contains all tunables of the lane-crossing simulation.
type BruinWalkConfig struct {
	Lanes      LaneConfig       `yaml:"lanes" toml:"lanes"`
	Movement   MovementConfig   `yaml:"movement" toml:"movement"`
	Obstacles  ObstacleConfig   `yaml:"obstacles" toml:"obstacles"`
	Collision  CollisionConfig  `yaml:"collision" toml:"collision"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// LaneConfig defines lane generation and the sliding window.
type LaneConfig struct {
	Width           float64 `yaml:"lane_width" toml:"lane_width"`             // Grid spacing L in world units
	InitialEnd      int     `yaml:"initial_end_lane" toml:"initial_end_lane"` // Last lane generated at start
	WindowSpan      int     `yaml:"window_span" toml:"window_span"`           // Max end_lane - start_lane
	EvictMargin     int     `yaml:"evict_margin" toml:"evict_margin"`         // Lanes kept behind start_lane
	SafeProbability float64 `yaml:"safe_probability" toml:"safe_probability"` // Chance a lane has no scooter
	SpeedMin        float64 `yaml:"speed_min" toml:"speed_min"`
	SpeedMax        float64 `yaml:"speed_max" toml:"speed_max"`
}

// MovementConfig defines how fast the player crosses one cell.
type MovementConfig struct {
	Velocity float64 `yaml:"velocity" toml:"velocity"` // World units per second
}

// ObstacleConfig defines the scooter sawtooth track.
type ObstacleConfig struct {
	Cycle      float64 `yaml:"cycle" toml:"cycle"`             // Track length in speed units
	Span       float64 `yaml:"span" toml:"span"`               // Start edge before scaling
	SpeedScale float64 `yaml:"speed_scale" toml:"speed_scale"` // Lane speed to units per second
	Offset     float64 `yaml:"offset" toml:"offset"`
	Scale      float64 `yaml:"scale" toml:"scale"`
}

// CollisionConfig defines hit boxes as half extents.
type CollisionConfig struct {
	PlayerHalfX     float64 `yaml:"player_half_x" toml:"player_half_x"`
	PlayerHalfY     float64 `yaml:"player_half_y" toml:"player_half_y"`
	ObstacleHalfX   float64 `yaml:"obstacle_half_x" toml:"obstacle_half_x"`
	ObstacleHalfY   float64 `yaml:"obstacle_half_y" toml:"obstacle_half_y"`
	AirborneCeiling float64 `yaml:"airborne_ceiling" toml:"airborne_ceiling"` // Hop height that clears scooters
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Added to lane speed factor at max difficulty
	SafeReduction   float64 `yaml:"safe_reduction" toml:"safe_reduction"`     // Safe-lane probability removed at max difficulty
}

// Validate reports every invalid setting at once.
func (c BruinWalkConfig) Validate() error {
	var errs []error

	if c.Lanes.Width <= 0 {
		errs = append(errs, fmt.Errorf("lanes.lane_width must be positive, got %v", c.Lanes.Width))
	}
	if c.Lanes.InitialEnd < 0 {
		errs = append(errs, fmt.Errorf("lanes.initial_end_lane must not be negative, got %d", c.Lanes.InitialEnd))
	}
	if c.Lanes.WindowSpan < 1 {
		errs = append(errs, fmt.Errorf("lanes.window_span must be at least 1, got %d", c.Lanes.WindowSpan))
	}
	if c.Lanes.EvictMargin < 0 {
		errs = append(errs, fmt.Errorf("lanes.evict_margin must not be negative, got %d", c.Lanes.EvictMargin))
	}
	if c.Lanes.SafeProbability < 0 || c.Lanes.SafeProbability > 1 {
		errs = append(errs, fmt.Errorf("lanes.safe_probability must be within [0, 1], got %v", c.Lanes.SafeProbability))
	}
	if c.Lanes.SpeedMin <= 0 || c.Lanes.SpeedMax <= c.Lanes.SpeedMin {
		errs = append(errs, fmt.Errorf("lanes speed range [%v, %v) must be positive and non-empty", c.Lanes.SpeedMin, c.Lanes.SpeedMax))
	}
	if c.Movement.Velocity <= 0 {
		errs = append(errs, fmt.Errorf("movement.velocity must be positive, got %v", c.Movement.Velocity))
	}
	if c.Obstacles.Cycle <= 0 || c.Obstacles.SpeedScale <= 0 {
		errs = append(errs, errors.New("obstacles.cycle and obstacles.speed_scale must be positive"))
	}
	if c.Collision.PlayerHalfX <= 0 || c.Collision.PlayerHalfY <= 0 ||
		c.Collision.ObstacleHalfX <= 0 || c.Collision.ObstacleHalfY <= 0 {
		errs = append(errs, errors.New("collision half extents must be positive"))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level must be within [0, 1], got %v", c.Difficulty.InitialLevel))
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid bruinwalk config: %w", errors.Join(errs...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown or empty strings
// return "" meaning "keep the config file's difficulty".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
