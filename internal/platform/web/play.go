package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/bruin-walk/internal/config"
	"github.com/vovakirdan/bruin-walk/internal/core"
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
	"github.com/vovakirdan/bruin-walk/internal/replay"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	inboxSize      = 16
	maxPlayerName  = 32
)

// Message types of the play feed.
const (
	MsgHello   = "hello"   // server: session and run IDs
	MsgFrame   = "frame"   // server: one tick of the world
	MsgOver    = "over"    // server: final frame and stored run ID
	MsgMove    = "move"    // client: intent forward|backward|left|right
	MsgPause   = "pause"   // client: toggle pause
	MsgRestart = "restart" // client: new run after game over
)

// ClientMessage is a command sent by the browser.
type ClientMessage struct {
	Type   string `json:"type"`
	Intent string `json:"intent,omitempty"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type    string           `json:"type"`
	Session string           `json:"session,omitempty"`
	Game    string           `json:"game,omitempty"`
	RunID   string           `json:"run_id,omitempty"`
	Frame   *bruinwalk.Frame `json:"frame,omitempty"`
}

// handlePlay upgrades the request and runs a game until the client leaves.
// Query parameters: difficulty (easy|normal|hard|fixed), seed, name.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["game"]
	v, ok := bruinwalk.VariantByID(gameID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown game "+gameID)
		return
	}

	q := r.URL.Query()
	seed, _ := strconv.ParseInt(q.Get("seed"), 10, 64)
	player := playerName(q.Get("name"))

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already answered the request
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess := newSession(s, conn, v, config.ParsePreset(q.Get("difficulty")), seed, player)
	active := s.sessions.Add(1)
	s.logger.Info("game connected",
		"session", sess.id,
		"game", gameID,
		"player", player,
		"remote", r.RemoteAddr,
		"active", active,
	)

	sess.run(r.Context())

	active = s.sessions.Add(-1)
	s.logger.Info("game disconnected",
		"session", sess.id,
		"runs", sess.runs,
		"active", active,
	)
}

// playerName cleans the name a client asked for, keeping at most
// maxPlayerName runes.
func playerName(name string) string {
	name = strings.TrimSpace(strings.ToValidUTF8(name, ""))
	if r := []rune(name); len(r) > maxPlayerName {
		name = strings.TrimSpace(string(r[:maxPlayerName]))
	}
	if name == "" {
		return "web"
	}
	return name
}

// session is one browser connection. Its tick goroutine exclusively owns
// the game; the reader goroutine only forwards decoded messages.
type session struct {
	id       string
	server   *Server
	conn     *websocket.Conn
	game     *bruinwalk.Game
	runtime  core.RuntimeConfig
	player   string
	inbox    chan ClientMessage
	recorder *replay.Recorder
	runID    string
	runs     int
}

func newSession(s *Server, conn *websocket.Conn, v bruinwalk.Variant, preset config.DifficultyPreset, seed int64, player string) *session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.DefaultConfig()
	rt.TickRate = s.config.TickRate
	rt.Seed = seed

	game := bruinwalk.New(v)
	game.SetPreset(preset)

	sess := &session{
		id:      uuid.NewString(),
		server:  s,
		conn:    conn,
		game:    game,
		runtime: rt,
		player:  player,
		inbox:   make(chan ClientMessage, inboxSize),
	}
	sess.reset()
	return sess
}

// reset starts a new run with the current seed.
func (c *session) reset() {
	c.game.Reset(c.runtime)
	c.runID = storage.NewRunID()
	c.recorder = replay.NewRecorder(c.runID, c.game.ID(), c.runtime, c.game.Config())
}

func (c *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.conn.Close()

	go c.readLoop(ctx, cancel)

	if err := c.send(ServerMessage{Type: MsgHello, Session: c.id, Game: c.game.ID(), RunID: c.runID}); err != nil {
		return
	}

	ticker := time.NewTicker(c.runtime.TickInterval())
	defer ticker.Stop()
	pinger := time.NewTicker(pingPeriod)
	defer pinger.Stop()

	pending := core.NewInputFrame()
	for {
		select {
		case <-ctx.Done():
			//nolint:errcheck // Best-effort goodbye
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return

		case msg := <-c.inbox:
			c.apply(msg, &pending)

		case <-pinger.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.tick(pending); err != nil {
				c.server.logger.Debug("write failed", "session", c.id, "error", err)
				return
			}
			pending.Clear()
		}
	}
}

// apply folds a client message into the input of the next tick.
func (c *session) apply(msg ClientMessage, pending *core.InputFrame) {
	switch msg.Type {
	case MsgMove:
		if in, ok := bruinwalk.ParseIntent(msg.Intent); ok {
			pending.Set(in.Action())
		}
	case MsgPause:
		pending.Set(core.ActionPause)
	case MsgRestart:
		if c.game.State().GameOver {
			c.runtime.Seed = time.Now().UnixNano()
			c.reset()
			pending.Clear()
			//nolint:errcheck // A failed write ends the session on the next tick
			c.send(ServerMessage{Type: MsgHello, Session: c.id, Game: c.game.ID(), RunID: c.runID})
		}
	default:
		c.server.logger.Debug("unknown message", "session", c.id, "type", msg.Type)
	}
}

// tick advances the game and pushes the new frame. A finished run is stored
// once and then left frozen until the client restarts.
func (c *session) tick(in core.InputFrame) error {
	if c.game.State().GameOver {
		return nil
	}

	c.game.Step(in)
	c.recorder.Record(in)
	frame := c.game.Frame()
	if !frame.Dead {
		return c.send(ServerMessage{Type: MsgFrame, Frame: &frame})
	}

	c.runs++
	runID := c.save(frame.Score)
	return c.send(ServerMessage{Type: MsgOver, RunID: runID, Frame: &frame})
}

// save stores the finished run and returns its ID, or "" when nothing was
// stored.
func (c *session) save(score int) string {
	if c.server.store == nil {
		return ""
	}
	runID, err := replay.Save(c.server.store, c.recorder.Finish(score), c.player, c.game.World())
	if err != nil {
		c.server.logger.Error("cannot save run", "session", c.id, "run", c.runID, "error", err)
		return ""
	}
	c.server.logger.Info("run saved", "session", c.id, "run", runID, "score", score)
	return runID
}

func (c *session) send(msg ServerMessage) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// readLoop decodes client messages until the connection fails. Malformed
// messages are skipped.
func (c *session) readLoop(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.logger.Debug("connection closed", "session", c.id, "error", err)
			}
			return
		}
		//nolint:errcheck // Deadline errors surface on the next read
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		select {
		case c.inbox <- msg:
		case <-ctx.Done():
			return
		}
	}
}
