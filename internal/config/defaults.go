package config

import (
	_ "embed"
)

//go:embed defaults/bruinwalk.yaml
var defaultBruinWalkYAML []byte

// DefaultBruinWalkConfig returns the built-in Bruin Walk configuration.
// It mirrors defaults/bruinwalk.yaml and is the fallback if the embed fails to parse.
func DefaultBruinWalkConfig() BruinWalkConfig {
	return BruinWalkConfig{
		Lanes: LaneConfig{
			Width:           2.5,
			InitialEnd:      19,
			WindowSpan:      28,
			EvictMargin:     32,
			SafeProbability: 0.125,
			SpeedMin:        0.4,
			SpeedMax:        1.4,
		},
		Movement: MovementConfig{
			Velocity: 1.0,
		},
		Obstacles: ObstacleConfig{
			Cycle:      52,
			Span:       25,
			SpeedScale: 10,
			Offset:     -10,
			Scale:      1.4,
		},
		Collision: CollisionConfig{
			PlayerHalfX:     0.7,
			PlayerHalfY:     1.0,
			ObstacleHalfX:   1.7,
			ObstacleHalfY:   1.0,
			AirborneCeiling: 2.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				SafeReduction:   0.075,
			},
		},
	}
}

// ApplyClassicTrack switches the obstacle track to the prototype layout:
// scooters sweep around the origin without the widened scale.
func ApplyClassicTrack(cfg *BruinWalkConfig) {
	cfg.Obstacles.Offset = 0
	cfg.Obstacles.Scale = 1.0
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "bruinwalk", "bruinwalk_classic":
		return defaultBruinWalkYAML
	default:
		return nil
	}
}
