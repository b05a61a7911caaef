// bruinwalk is an endless lane-crossing game for the terminal, SSH and the
// browser: hop across campus streets without getting hit by a scooter.
//
// Usage:
//
//	bruinwalk list                 - List available tracks
//	bruinwalk play [track]         - Play a track
//	bruinwalk menu                 - Start the menu to pick tracks interactively
//	bruinwalk serve                - Start SSH server for remote play
//	bruinwalk web                  - Start HTTP server with the WebSocket feed
//	bruinwalk scores <track>       - Show high scores for a track
//	bruinwalk runs                 - Show recent runs
//	bruinwalk replay <run-id|file> - Re-simulate, watch or export a run
//	bruinwalk config               - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/bruinwalk.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bruin-walk/internal/config"
	"github.com/vovakirdan/bruin-walk/internal/core"
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
	"github.com/vovakirdan/bruin-walk/internal/registry"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bruinwalk",
	Short: "Bruin Walk - cross campus without getting hit by a scooter",
	Long: `Bruin Walk is an endless lane-crossing game. Every street you cross
scores a point; stepping back costs one. Scooters never stop.

Available commands:
  list     - Show all available tracks
  play     - Play a track directly
  menu     - Interactive track picker menu
  serve    - Start SSH server for remote play
  web      - Start HTTP server for browser clients
  scores   - View high scores
  runs     - View recent runs
  replay   - Re-simulate, watch or export a stored run
  config   - Print the effective configuration

Examples:
  bruinwalk play
  bruinwalk play bruinwalk_classic --difficulty hard
  bruinwalk menu
  bruinwalk serve --ssh :2222
  bruinwalk replay 3f2a9c1e --watch`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to runs database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// terminalConfig builds the runtime config from the global flags and the
// size of the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStoreOrWarn opens the database. Play still works without one, so a
// failure only prints a warning.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// useConfig validates a custom config file and makes every new game load it.
// An empty path restores the default search order.
func useConfig(path string) error {
	if path != "" {
		if _, err := config.LoadBruinWalk(path); err != nil {
			return err
		}
	}
	bruinwalk.SetConfigPath(path)
	return nil
}

// checkConfig applies --config or exits when the file cannot be used.
func checkConfig(path string) {
	if err := useConfig(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// checkGame exits with a hint when gameID is not registered.
func checkGame(gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown track %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'bruinwalk list' to see available tracks.")
		os.Exit(1)
	}
}
