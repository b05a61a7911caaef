// Package web serves the game to browsers: a small JSON API over the stored
// scores and runs, and a WebSocket feed that runs one game per connection
// and streams a frame every tick.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/bruin-walk/internal/core"
	"github.com/vovakirdan/bruin-walk/internal/registry"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate of every connection.
	TickRate int

	// AllowedOrigin is sent as Access-Control-Allow-Origin and checked on
	// WebSocket upgrades. "*" allows any origin.
	AllowedOrigin string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:       ":8080",
		TickRate:      core.DefaultConfig().TickRate,
		AllowedOrigin: "*",
	}
}

// Server is the HTTP and WebSocket front end. The store may be nil, in which
// case nothing is persisted and the API answers with empty lists.
type Server struct {
	config   Config
	store    *storage.Store
	logger   *log.Logger
	router   *mux.Router
	upgrader websocket.Upgrader
	sessions atomic.Int64
}

// NewServer creates a server and registers its routes.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Prefix: "bruinwalk-web"})
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		router: mux.NewRouter(),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	s.router.Use(s.withCORS)
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", s.handleGames).Methods(http.MethodGet)
	api.HandleFunc("/scores/{game}", s.handleScores).Methods(http.MethodGet)
	api.HandleFunc("/runs", s.handleRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", s.handleRun).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}/replay", s.handleReplay).Methods(http.MethodGet)
	s.router.HandleFunc("/ws/play/{game}", s.handlePlay)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ActiveSessions returns the number of open game connections.
func (s *Server) ActiveSessions() int64 {
	return s.sessions.Load()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// Cancelling ctx also ends every running game connection.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "sessions", s.ActiveSessions())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.config.AllowedOrigin == "*" || s.config.AllowedOrigin == "" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.config.AllowedOrigin
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.AllowedOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.config.AllowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// gameView is the JSON shape of a registered game.
type gameView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	HighScore   int    `json:"high_score"`
}

type scoreView struct {
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// runView is a stored run without its replay blob.
type runView struct {
	RunID        string    `json:"run_id"`
	GameID       string    `json:"game"`
	Player       string    `json:"player,omitempty"`
	Score        int       `json:"score"`
	LanesReached int       `json:"lanes_reached"`
	Ticks        uint64    `json:"ticks"`
	DeathTick    uint64    `json:"death_tick"`
	Seed         int64     `json:"seed"`
	TickRate     int       `json:"tick_rate"`
	CreatedAt    time.Time `json:"created_at"`
}

func newRunView(r storage.Run) runView {
	return runView{
		RunID:        r.RunID,
		GameID:       r.GameID,
		Player:       r.Player,
		Score:        r.Score,
		LanesReached: r.LanesReached,
		Ticks:        r.Ticks,
		DeathTick:    r.DeathTick,
		Seed:         r.Seed,
		TickRate:     r.TickRate,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]gameView, 0, len(games))
	for _, g := range games {
		v := gameView{ID: g.ID, Title: g.Title, Description: g.Description}
		if s.store != nil {
			v.HighScore, _ = s.store.HighScore(g.ID)
		}
		out = append(out, v)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["game"]
	if !registry.Exists(gameID) {
		s.writeError(w, http.StatusNotFound, "unknown game "+gameID)
		return
	}

	out := []scoreView{}
	if s.store != nil {
		scores, err := s.store.TopScores(gameID, queryInt(r, "limit", 10))
		if err != nil {
			s.logger.Error("cannot load scores", "game", gameID, "error", err)
			s.writeError(w, http.StatusInternalServerError, "cannot load scores")
			return
		}
		for _, e := range scores {
			out = append(out, scoreView{Score: e.Score, CreatedAt: e.CreatedAt})
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID != "" && !registry.Exists(gameID) {
		s.writeError(w, http.StatusNotFound, "unknown game "+gameID)
		return
	}

	out := []runView{}
	if s.store != nil {
		runs, err := s.store.RecentRuns(gameID, queryInt(r, "limit", 20))
		if err != nil {
			s.logger.Error("cannot load runs", "game", gameID, "error", err)
			s.writeError(w, http.StatusInternalServerError, "cannot load runs")
			return
		}
		for _, run := range runs {
			out = append(out, newRunView(run))
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

// lookupRun resolves the {id} route variable, writing the error response
// itself when the run cannot be served.
func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (storage.Run, bool) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "runs are not stored")
		return storage.Run{}, false
	}
	run, err := s.store.RunByID(mux.Vars(r)["id"])
	switch {
	case errors.Is(err, storage.ErrRunNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
		return storage.Run{}, false
	case err != nil:
		s.writeError(w, http.StatusBadRequest, err.Error())
		return storage.Run{}, false
	}
	return run, true
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if run, ok := s.lookupRun(w, r); ok {
		s.writeJSON(w, http.StatusOK, newRunView(run))
	}
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/x-msgpack")
	w.Header().Set("Content-Disposition", `attachment; filename="`+run.RunID+`.bwr"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Client went away
	w.Write(run.Replay)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("cannot write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// queryInt reads a positive integer query parameter.
func queryInt(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
