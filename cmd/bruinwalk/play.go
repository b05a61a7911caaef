package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bruin-walk/internal/config"
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
	"github.com/vovakirdan/bruin-walk/internal/platform/tui"
	"github.com/vovakirdan/bruin-walk/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [track]",
	Short: "Play a track",
	Long: `Start playing the given track (default: bruinwalk).

Controls:
  W/Up/Y     - Step forward (+1)
  S/Down/H   - Step back (-1)
  A/Left/G   - Step left
  D/Right/J  - Step right
  P          - Pause
  R          - Restart (after game over)
  B/Esc      - Leave (when paused or over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options (a picker is shown when omitted):
  easy   - Start at lowest difficulty, more grass
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, barely any grass
  fixed  - No progression, stays at config's initial level

Examples:
  bruinwalk play
  bruinwalk play bruinwalk_classic
  bruinwalk play --difficulty hard
  bruinwalk play --config ./my-walk.toml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := bruinwalk.VariantBruinWalk.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	checkGame(gameID)

	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}
	checkConfig(flagConfig)
	bruinwalk.SetDifficultyPreset(flagDifficulty)

	cfg := terminalConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if flagDifficulty == "" {
		choice, selErr := tui.RunDifficultySelector(game.Title(), cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if choice == nil {
			return
		}
		if bw, ok := game.(*bruinwalk.Game); ok {
			bw.SetPreset(choice.Preset)
		}
	}

	store := openStoreOrWarn()
	runErr := tui.Run(game, store, cfg)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
