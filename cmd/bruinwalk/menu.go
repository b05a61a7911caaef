package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bruin-walk/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a track picker menu",
	Long: `Start in interactive menu mode.

Pick a track and a difficulty, play, and come back to the menu when the
run is over. The menu also opens the high scores and the run history,
where any stored run can be watched again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  V            - Recent runs
  Q            - Quit

Examples:
  bruinwalk menu
  bruinwalk menu --fps 30
  bruinwalk menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStoreOrWarn()

	err := tui.RunSession(store, terminalConfig())

	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
