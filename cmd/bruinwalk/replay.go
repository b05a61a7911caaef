package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bruin-walk/internal/platform/tui"
	"github.com/vovakirdan/bruin-walk/internal/replay"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

var (
	flagWatch  bool
	flagExport string
	flagBest   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id|file|track>",
	Short: "Re-simulate, watch or export a run",
	Long: `Load a run from the database (by ID or 8+ character prefix) or from an
exported .bwr file and re-simulate it. Without flags the run is played
headlessly and the final score and death tick are printed. With --best
the argument names a track and its highest scoring run is loaded.

Examples:
  bruinwalk replay 3f2a9c1e
  bruinwalk replay 3f2a9c1e --watch
  bruinwalk replay 3f2a9c1e --export best.bwr
  bruinwalk replay best.bwr --watch
  bruinwalk replay bruinwalk --best --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Play the run back in the terminal")
	replayCmd.Flags().StringVarP(&flagExport, "export", "o", "", "Write the recording to a file")
	replayCmd.Flags().BoolVar(&flagBest, "best", false, "Load the best run of the named track")
}

// loadRecording reads ref as a file when one exists, otherwise as a run ID.
func loadRecording(ref string) (replay.Recording, error) {
	if flagBest {
		checkGame(ref)
	} else if _, err := os.Stat(ref); err == nil || strings.HasSuffix(ref, replay.FileExt) {
		return replay.ReadFile(ref)
	}

	store := mustOpenStore()
	defer store.Close()

	var (
		run storage.Run
		err error
	)
	if flagBest {
		run, err = store.BestRun(ref)
	} else {
		run, err = store.RunByID(ref)
	}
	if err != nil {
		return replay.Recording{}, err
	}
	return replay.Decode(run.Replay)
}

func runReplay(_ *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "replay",
	})

	rec, err := loadRecording(args[0])
	if err != nil {
		logger.Error("cannot load run", "ref", args[0], "error", err)
		os.Exit(1)
	}

	if flagExport != "" {
		path := flagExport
		if !strings.HasSuffix(path, replay.FileExt) {
			path += replay.FileExt
		}
		if err := replay.WriteFile(path, rec); err != nil {
			logger.Error("cannot export run", "error", err)
			os.Exit(1)
		}
		logger.Info("run exported", "run", rec.RunID, "path", path)
	}

	if flagWatch {
		if err := tui.RunReplay(rec, terminalConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	res, err := replay.Play(rec)
	if err != nil {
		logger.Error("cannot replay run", "run", rec.RunID, "error", err)
		os.Exit(1)
	}
	if res.Score != rec.Score {
		logger.Warn("replay diverged from the live run",
			"recorded_score", rec.Score,
			"replayed_score", res.Score,
		)
	}

	fmt.Printf("Run %s (%s)\n", rec.RunID, rec.GameID)
	fmt.Printf("  Seed:       %d\n", rec.Seed)
	fmt.Printf("  Tick rate:  %d\n", rec.TickRate)
	fmt.Printf("  Duration:   %.1fs (%d ticks)\n", rec.Duration(), res.Ticks)
	fmt.Printf("  Score:      %d\n", res.Score)
	fmt.Printf("  Lanes:      %d\n", res.LanesReached)
	if res.Dead {
		fmt.Printf("  Death tick: %d\n", res.DeathTick)
	} else {
		fmt.Println("  Still alive when the recording ended")
	}
}
