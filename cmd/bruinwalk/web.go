package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bruin-walk/internal/platform/web"
)

var (
	flagHTTPAddr string
	flagOrigin   string
	flagVerbose  bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP server for browser clients",
	Long: `Start an HTTP server with a JSON API and a WebSocket game feed.

Endpoints:
  GET /api/games                 - Tracks with their high score
  GET /api/scores/{track}        - Top scores (?limit=)
  GET /api/runs                  - Recent runs (?game=, ?limit=)
  GET /api/runs/{id}             - One run, by ID or 8+ character prefix
  GET /api/runs/{id}/replay      - The run's recording (.bwr)
  GET /ws/play/{track}           - WebSocket: one game per connection
                                   (?difficulty=, ?seed=, ?name=)

The feed sends {"type":"frame","frame":{...}} every tick and
{"type":"over","run_id":...} when the run ends. Clients send
{"type":"move","intent":"forward"}, {"type":"pause"} and {"type":"restart"}.

Examples:
  bruinwalk web
  bruinwalk web --http :9000 --origin https://bruinwalk.example`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().StringVar(&flagOrigin, "origin", "*", "Allowed browser origin")
	webCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every connection event")
	webCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
}

func runWeb(_ *cobra.Command, _ []string) {
	checkConfig(flagConfig)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bruinwalk-web",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagHTTPAddr
	cfg.TickRate = flagFPS
	cfg.AllowedOrigin = flagOrigin

	fmt.Printf("Starting Bruin Walk web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signalContext()
	defer stop()

	if err := web.NewServer(cfg, store, logger).ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
