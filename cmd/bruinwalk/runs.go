package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagRunsGame  string
	flagRunsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent runs",
	Long: `List the most recent stored runs, newest first. Any run can be
re-simulated or watched with 'bruinwalk replay <run-id>'; the first
eight characters of the ID are enough.

Examples:
  bruinwalk runs
  bruinwalk runs --game bruinwalk_classic -n 50`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsGame, "game", "", "Only show runs of this track")
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 20, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) {
	if flagRunsGame != "" {
		checkGame(flagRunsGame)
	}

	store := mustOpenStore()
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsGame, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-18s  %-12s  %6s  %6s  %8s  %s\n", "Run", "Track", "Player", "Score", "Lanes", "Time", "Date")
	fmt.Printf("  %-8s  %-18s  %-12s  %6s  %6s  %8s  %s\n", "---", "-----", "------", "-----", "-----", "----", "----")
	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		seconds := 0.0
		if r.TickRate > 0 {
			seconds = float64(r.Ticks) / float64(r.TickRate)
		}
		fmt.Printf("  %-8s  %-18s  %-12s  %6d  %6d  %7.1fs  %s\n",
			r.RunID[:8], r.GameID, player, r.Score, r.LanesReached, seconds,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
