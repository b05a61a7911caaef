package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bruin-walk/internal/config"
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
)

var (
	flagTOML     bool
	flagDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config [track]",
	Short: "Print the effective configuration",
	Long: `Print the configuration a track runs with after the config file,
difficulty preset and track overrides are applied. The output is a valid
config file: save it to ~/.arcade/configs/bruinwalk.yaml (or .toml) and
edit it to tune the game.

Examples:
  bruinwalk config
  bruinwalk config bruinwalk_classic --difficulty hard
  bruinwalk config --toml > ~/.arcade/configs/bruinwalk.toml
  bruinwalk config --defaults`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagTOML, "toml", false, "Print TOML instead of YAML")
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults file")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := bruinwalk.VariantBruinWalk.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	v, ok := bruinwalk.VariantByID(gameID)
	if !ok {
		checkGame(gameID)
	}

	checkConfig(flagConfig)

	if flagDefaults {
		//nolint:errcheck // Nothing to do when stdout is gone
		os.Stdout.Write(config.GetDefaultYAML(gameID))
		return
	}

	cfg := bruinwalk.LoadConfig(v, config.ParsePreset(flagDifficulty))

	format := config.FormatYAML
	if flagTOML {
		format = config.FormatTOML
	}
	data, err := config.Encode(cfg, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Nothing to do when stdout is gone
	os.Stdout.Write(data)
}
