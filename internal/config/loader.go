package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the encoding from a file extension. Anything that is
// not .toml is treated as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadBruinWalk loads Bruin Walk configuration.
// Search order: customPath -> ~/.arcade/configs/bruinwalk.{yaml,toml} ->
// ./configs/bruinwalk.{yaml,toml} -> embedded default.
// Files are overlaid on the defaults, so partial files are fine.
func LoadBruinWalk(customPath string) (BruinWalkConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := make([]string, 0, 4)
	if p := userConfigPath("bruinwalk.yaml"); p != "" {
		candidates = append(candidates, p, userConfigPath("bruinwalk.toml"))
	}
	candidates = append(candidates,
		filepath.Join("configs", "bruinwalk.yaml"),
		filepath.Join("configs", "bruinwalk.toml"),
	)

	for _, path := range candidates {
		cfg, err := loadFile(path)
		if err != nil {
			continue
		}
		if cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg := DefaultBruinWalkConfig()
	if err := yaml.Unmarshal(defaultBruinWalkYAML, &cfg); err != nil {
		return DefaultBruinWalkConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile decodes one file over the defaults.
func loadFile(path string) (BruinWalkConfig, error) {
	cfg := DefaultBruinWalkConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(data, FormatForPath(path), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data in the given format into cfg, keeping fields the
// document does not mention.
func Decode(data []byte, format Format, cfg *BruinWalkConfig) error {
	switch format {
	case FormatTOML:
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Encode renders cfg in the given format.
func Encode(cfg BruinWalkConfig, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: encode yaml: %w", err)
		}
		return data, nil
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBruinWalkPreset modifies the config based on a difficulty preset.
func ApplyBruinWalkPreset(cfg *BruinWalkConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// More grass on easy, barely any on hard
	switch preset {
	case DifficultyEasy:
		cfg.Lanes.SafeProbability = 0.25
	case DifficultyHard:
		cfg.Lanes.SafeProbability = 0.0625
	}
}
