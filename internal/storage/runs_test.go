package storage

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		GameID:       "bruinwalk",
		Player:       "joe",
		Score:        17,
		LanesReached: 36,
		Ticks:        4000,
		DeathTick:    3990,
		Seed:         -42,
		TickRate:     60,
		Replay:       []byte{0x85, 0x01, 0x02},
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("run id %q is not a UUID: %v", id, err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.RunID != id || run.GameID != "bruinwalk" || run.Player != "joe" {
		t.Errorf("unexpected run header: %+v", run)
	}
	if run.Score != 17 || run.LanesReached != 36 || run.Ticks != 4000 || run.DeathTick != 3990 {
		t.Errorf("unexpected run stats: %+v", run)
	}
	if run.Seed != -42 || run.TickRate != 60 {
		t.Errorf("unexpected runtime: seed=%d tick_rate=%d", run.Seed, run.TickRate)
	}
	if !bytes.Equal(run.Replay, []byte{0x85, 0x01, 0x02}) {
		t.Errorf("replay = %x", run.Replay)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestSaveRunAndScore(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRunAndScore(Run{GameID: "bruinwalk", Score: 5, TickRate: 60})
	if err != nil {
		t.Fatalf("SaveRunAndScore() failed: %v", err)
	}
	if _, err := store.SaveRunAndScore(Run{GameID: "bruinwalk", Score: -2, TickRate: 60}); err != nil {
		t.Fatalf("SaveRunAndScore(negative) failed: %v", err)
	}

	// A run that cannot be stored leaves no score behind.
	if _, err := store.SaveRunAndScore(Run{RunID: id, GameID: "bruinwalk", Score: 9, TickRate: 60}); err == nil {
		t.Fatal("duplicate run id accepted")
	}

	stats, err := store.GetGameStats("bruinwalk")
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesCount != 1 || stats.HighScore != 5 {
		t.Errorf("stats = %+v, want one score of 5", stats)
	}
	runs, err := store.RecentRuns("bruinwalk", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("stored %d runs, want 2", len(runs))
	}
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	want := NewRunID()

	got, err := store.SaveRun(Run{RunID: want, GameID: "bruinwalk", TickRate: 60})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if got != want {
		t.Errorf("SaveRun() = %q, want %q", got, want)
	}

	if _, err := store.SaveRun(Run{RunID: want, GameID: "bruinwalk"}); err == nil {
		t.Error("duplicate run id accepted")
	}
	if _, err := store.SaveRun(Run{RunID: "not-a-uuid", GameID: "bruinwalk"}); err == nil {
		t.Error("malformed run id accepted")
	}
}

func TestRunByPrefix(t *testing.T) {
	store := openTestStore(t)
	id, _ := store.SaveRun(Run{GameID: "bruinwalk", Score: 3})

	run, err := store.RunByID(id[:8])
	if err != nil {
		t.Fatalf("RunByID(prefix) failed: %v", err)
	}
	if run.RunID != id {
		t.Errorf("RunByID(prefix) = %q, want %q", run.RunID, id)
	}

	if _, err := store.RunByID(id[:4]); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("short prefix error = %v, want ErrRunNotFound", err)
	}
}

func TestRunByPrefixIsLiteral(t *testing.T) {
	store := openTestStore(t)
	id, _ := store.SaveRun(Run{GameID: "bruinwalk", Score: 3})

	for _, prefix := range []string{"%%%%%%%%", "________", id[:7] + "%", id[:7] + "_"} {
		if run, err := store.RunByID(prefix); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("RunByID(%q) = %q, %v; want ErrRunNotFound", prefix, run.RunID, err)
		}
	}
}

func TestRunNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RunByID(NewRunID()); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunByID() error = %v, want ErrRunNotFound", err)
	}
	if _, err := store.BestRun("bruinwalk"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("BestRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i, game := range []string{"bruinwalk", "bruinwalk_classic", "bruinwalk", "bruinwalk"} {
		id, err := store.SaveRun(Run{GameID: game, Score: i * 5, TickRate: 60})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 || all[0].RunID != ids[3] || all[3].RunID != ids[0] {
		t.Errorf("RecentRuns() not newest first: %v", all)
	}

	some, err := store.RecentRuns("bruinwalk", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(some) != 2 || some[0].RunID != ids[3] || some[1].RunID != ids[2] {
		t.Errorf("RecentRuns(bruinwalk, 2) = %v", some)
	}

	best, err := store.BestRun("bruinwalk")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best.RunID != ids[3] || best.Score != 15 {
		t.Errorf("BestRun() = %+v", best)
	}
}
