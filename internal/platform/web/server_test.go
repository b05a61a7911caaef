package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/bruin-walk/internal/config"
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
	"github.com/vovakirdan/bruin-walk/internal/replay"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

// useParkedScooters points the game at a config where every lane holds a
// scooter that barely moves away from the start column.
func useParkedScooters(t *testing.T) {
	t.Helper()
	cfg := config.DefaultBruinWalkConfig()
	cfg.Lanes.SafeProbability = 0
	cfg.Lanes.SpeedMin = 1
	cfg.Lanes.SpeedMax = 1.5
	cfg.Obstacles = config.ObstacleConfig{Cycle: 52, Span: 0, SpeedScale: 1e-6, Offset: 0, Scale: 1}

	data, err := config.Encode(cfg, config.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "bruinwalk.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	bruinwalk.SetConfigPath(path)
	t.Cleanup(func() { bruinwalk.SetConfigPath("") })
}

func newTestServer(t *testing.T, withStore bool) (*httptest.Server, *storage.Store) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "runs.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { store.Close() })
	}

	cfg := DefaultConfig()
	cfg.TickRate = 30
	ts := httptest.NewServer(NewServer(cfg, store, nil).Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("GET %s: %v", url, err)
		}
	}
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(10 * time.Second)); err != nil {
		t.Fatal(err)
	}
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

// readUntil reads messages until match accepts one or the limit runs out.
func readUntil(t *testing.T, conn *websocket.Conn, limit int, match func(ServerMessage) bool) ServerMessage {
	t.Helper()
	for i := 0; i < limit; i++ {
		if msg := readMessage(t, conn); match(msg) {
			return msg
		}
	}
	t.Fatalf("no matching message in %d reads", limit)
	return ServerMessage{}
}

func TestGamesEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, false)

	var games []gameView
	getJSON(t, ts.URL+"/api/games", http.StatusOK, &games)
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	if games[0].ID != bruinwalk.VariantBruinWalk.ID || games[1].ID != bruinwalk.VariantClassic.ID {
		t.Errorf("games = %+v", games)
	}
}

func TestUnknownGame(t *testing.T) {
	ts, _ := newTestServer(t, true)

	getJSON(t, ts.URL+"/api/scores/frogger", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/api/runs?game=frogger", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/api/runs/00000000", http.StatusNotFound, nil)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/play/frogger"
	if _, resp, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Error("dial succeeded for an unknown game")
	} else if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("dial error %v, want 404", err)
	}
}

func TestPlayStreamsFrames(t *testing.T) {
	ts, _ := newTestServer(t, false)
	conn := dial(t, ts, "/ws/play/bruinwalk?seed=1")

	hello := readMessage(t, conn)
	if hello.Type != MsgHello || hello.Session == "" || hello.Game != "bruinwalk" {
		t.Fatalf("hello = %+v", hello)
	}

	first := readUntil(t, conn, 5, func(m ServerMessage) bool { return m.Type == MsgFrame })
	if first.Frame.Score != 0 || len(first.Frame.Lanes) == 0 {
		t.Errorf("first frame = %+v", first.Frame)
	}

	if err := conn.WriteJSON(ClientMessage{Type: MsgMove, Intent: "forward"}); err != nil {
		t.Fatal(err)
	}
	moved := readUntil(t, conn, 60, func(m ServerMessage) bool {
		return m.Frame != nil && m.Frame.Score == 1
	})
	if !moved.Frame.Player.Moving && moved.Type != MsgOver {
		t.Errorf("player not moving after forward: %+v", moved.Frame.Player)
	}
}

func TestPlayStoresRunOnDeath(t *testing.T) {
	useParkedScooters(t)
	ts, store := newTestServer(t, true)
	conn := dial(t, ts, "/ws/play/bruinwalk?seed=3&name=josie")

	readMessage(t, conn)
	if err := conn.WriteJSON(ClientMessage{Type: MsgMove, Intent: "forward"}); err != nil {
		t.Fatal(err)
	}
	over := readUntil(t, conn, 300, func(m ServerMessage) bool { return m.Type == MsgOver })
	if !over.Frame.Dead || over.RunID == "" {
		t.Fatalf("over = %+v", over)
	}

	run, err := store.RunByID(over.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Player != "josie" || run.Score != over.Frame.Score {
		t.Errorf("stored run = %+v", run)
	}

	var runs []runView
	getJSON(t, ts.URL+"/api/runs", http.StatusOK, &runs)
	if len(runs) != 1 || runs[0].RunID != over.RunID {
		t.Errorf("runs = %+v", runs)
	}

	resp, err := http.Get(ts.URL + "/api/runs/" + over.RunID[:8] + "/replay")
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	rec, err := replay.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	res, err := replay.Play(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Dead || res.DeathTick != run.DeathTick || res.Score != run.Score {
		t.Errorf("replay = %+v, stored %+v", res, run)
	}

	// A restart begins a fresh run on the same connection
	if err := conn.WriteJSON(ClientMessage{Type: MsgRestart}); err != nil {
		t.Fatal(err)
	}
	hello := readUntil(t, conn, 5, func(m ServerMessage) bool { return m.Type == MsgHello })
	if hello.RunID == "" || hello.RunID == over.RunID {
		t.Errorf("restart hello = %+v", hello)
	}
}

func TestPlayerName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "web"},
		{"   ", "web"},
		{" josie ", "josie"},
		{strings.Repeat("a", 40), strings.Repeat("a", 32)},
		{strings.Repeat("é", 40), strings.Repeat("é", 32)},
		{"ok\xffname", "okname"},
	}
	for _, tc := range tests {
		got := playerName(tc.in)
		if got != tc.want {
			t.Errorf("playerName(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("playerName(%q) = %q is not valid UTF-8", tc.in, got)
		}
	}
}
