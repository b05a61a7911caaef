package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("storage: run not found")

// Run is one finished game together with its replay.
type Run struct {
	ID           int64
	RunID        string // UUID, generated by SaveRun when empty
	GameID       string
	Player       string // SSH user or web client, empty for local play
	Score        int
	LanesReached int
	Ticks        uint64
	DeathTick    uint64
	Seed         int64
	TickRate     int
	Replay       []byte // Encoded recording
	CreatedAt    time.Time
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// SaveRun stores a finished run and returns its run ID.
func (s *Store) SaveRun(run Run) (string, error) {
	return insertRun(s.db, run)
}

// SaveRunAndScore stores a finished run and, when its score is positive,
// the matching high score entry. Both rows are written or neither is.
func (s *Store) SaveRunAndScore(run Run) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // No-op after Commit
	defer tx.Rollback()

	runID, err := insertRun(tx, run)
	if err != nil {
		return "", err
	}
	if run.Score > 0 {
		if _, err := insertScore(tx, run.GameID, run.Score); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return runID, nil
}

func insertRun(ex execer, run Run) (string, error) {
	if run.RunID == "" {
		run.RunID = NewRunID()
	} else if _, err := uuid.Parse(run.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", run.RunID, err)
	}

	_, err := ex.Exec(
		`INSERT INTO runs
		 (run_id, game_id, player, score, lanes_reached, ticks, death_tick, seed, tick_rate, replay)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.GameID,
		run.Player,
		run.Score,
		run.LanesReached,
		int64(run.Ticks),
		int64(run.DeathTick),
		run.Seed,
		run.TickRate,
		run.Replay,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.RunID, nil
}

const runColumns = `id, run_id, game_id, player, score, lanes_reached, ticks, death_tick, seed, tick_rate, replay, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var ticks, deathTick int64
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.RunID,
		&r.GameID,
		&r.Player,
		&r.Score,
		&r.LanesReached,
		&ticks,
		&deathTick,
		&r.Seed,
		&r.TickRate,
		&r.Replay,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.Ticks = uint64(ticks)
	r.DeathTick = uint64(deathTick)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RunByID retrieves a run by its run ID. A unique prefix of at least eight
// characters is accepted as well.
func (s *Store) RunByID(runID string) (Run, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return s.runByPrefix(runID)
	}

	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

func (s *Store) runByPrefix(prefix string) (Run, error) {
	if len(prefix) < 8 {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	}
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE substr(run_id, 1, length(?1)) = ?1 LIMIT 2`, prefix)
	if err != nil {
		return Run{}, err
	}
	switch len(runs) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return runs[0], nil
	default:
		return Run{}, fmt.Errorf("storage: run id prefix %q is ambiguous", prefix)
	}
}

// RecentRuns retrieves the most recent runs, newest first. An empty gameID
// matches every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	if gameID == "" {
		return s.queryRuns(`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		gameID, limit,
	)
}

// BestRun returns the highest scoring run of a game.
func (s *Store) BestRun(gameID string) (Run, error) {
	runs, err := s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT 1`,
		gameID,
	)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("%w: no runs for %s", ErrRunNotFound, gameID)
	}
	return runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
