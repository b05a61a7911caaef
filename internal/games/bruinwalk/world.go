package bruinwalk

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/bruin-walk/internal/config"
)

// Params are the resolved tunables of one world.
type Params struct {
	Cell        float64 // Lane width L
	InitialEnd  int
	WindowSpan  int
	EvictMargin int
	Lanes       LaneParams
	Velocity    float64
	Track       Track
	Hitbox      Hitbox
}

// ParamsFromConfig converts a loaded configuration into world parameters.
func ParamsFromConfig(cfg config.BruinWalkConfig) Params {
	return Params{
		Cell:        cfg.Lanes.Width,
		InitialEnd:  cfg.Lanes.InitialEnd,
		WindowSpan:  cfg.Lanes.WindowSpan,
		EvictMargin: cfg.Lanes.EvictMargin,
		Lanes: LaneParams{
			SafeProbability: cfg.Lanes.SafeProbability,
			SpeedMin:        cfg.Lanes.SpeedMin,
			SpeedMax:        cfg.Lanes.SpeedMax,
			SpeedFactor:     1,
		},
		Velocity: cfg.Movement.Velocity,
		Track: Track{
			Cycle:      cfg.Obstacles.Cycle,
			Span:       cfg.Obstacles.Span,
			SpeedScale: cfg.Obstacles.SpeedScale,
			Offset:     cfg.Obstacles.Offset,
			Scale:      cfg.Obstacles.Scale,
		},
		Hitbox: Hitbox{
			PlayerHalfX:   cfg.Collision.PlayerHalfX,
			PlayerHalfY:   cfg.Collision.PlayerHalfY,
			ObstacleHalfX: cfg.Collision.ObstacleHalfX,
			ObstacleHalfY: cfg.Collision.ObstacleHalfY,
			Ceiling:       cfg.Collision.AirborneCeiling,
		},
	}
}

// DefaultParams returns the parameters of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultBruinWalkConfig())
}

// World is the whole simulation state of one run. It is advanced only by
// Step and never reads the wall clock.
type World struct {
	params     Params
	difficulty *config.DifficultyManager

	lanes    *LaneRegistry
	mover    Mover
	detector Detector

	clock     float64
	ticks     uint64
	score     int
	dead      bool
	deathTick uint64
	pending   Intent

	visible   []Lane
	obstacles []Obstacle
}

// NewWorld creates a world with the player on the sidewalk and lanes
// 0..InitialEnd generated. A nil difficulty manager means no progression.
func NewWorld(p Params, difficulty *config.DifficultyManager, seed int64) *World {
	if difficulty == nil {
		difficulty = config.NewDifficultyManager(config.DifficultyConfig{})
	}
	w := &World{
		params:     p,
		difficulty: difficulty,
		lanes:      NewLaneRegistry(seed, p.Lanes, p.EvictMargin),
		mover:      NewMover(p.Cell, p.Velocity),
		detector:   NewDetector(p.Hitbox),
	}
	w.lanes.SetParams(w.laneParams())
	w.lanes.ExtendWindow(p.InitialEnd)
	w.refresh()
	return w
}

// laneParams applies the current difficulty to the base lane parameters.
func (w *World) laneParams() LaneParams {
	lp := w.params.Lanes
	lp.SpeedFactor = w.difficulty.SpeedFactor(w.score, w.ticks)
	lp.SafeProbability = w.difficulty.SafeProbability(lp.SafeProbability, w.score, w.ticks)
	return lp
}

// Queue offers a move for the next tick. Only one intent may be outstanding:
// it is dropped while a move is running, while another intent waits, or
// after death.
func (w *World) Queue(in Intent) bool {
	if w.dead || in == IntentNone || w.pending != IntentNone || w.mover.State() == MoveMoving {
		return false
	}
	w.pending = in
	return true
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float64) {
	if w.dead {
		return
	}
	w.clock += max(dt, 0)
	w.ticks++

	if w.pending != IntentNone {
		w.begin(w.pending)
		w.pending = IntentNone
	}
	w.mover.Advance(w.clock)

	w.refresh()

	if w.detector.Check() {
		w.dead = true
		w.deathTick = w.ticks
	}
	w.detector.Record(w.mover.Position(), w.obstacles)
}

// begin applies the score and window effects of a move and starts it.
func (w *World) begin(in Intent) {
	if !w.mover.Begin(in, w.clock) {
		return
	}
	switch in {
	case IntentForward:
		w.score++
		_, end := w.lanes.Window()
		w.lanes.SetParams(w.laneParams())
		w.lanes.ExtendWindow(end + 1)
		w.lanes.ShrinkFront(max(0, end+1-w.params.WindowSpan))
	case IntentBackward:
		w.score--
		w.lanes.RetreatEnd()
		w.lanes.RetreatFront()
	}
}

// refresh recomputes the visible lanes and this tick's scooters.
func (w *World) refresh() {
	w.visible = w.lanes.Visible(w.visible[:0])
	w.obstacles = w.params.Track.Obstacles(w.visible, w.clock, w.params.Cell, w.obstacles[:0])
}

// Score returns forward moves minus backward moves. It can be negative.
func (w *World) Score() int { return w.score }

// Dead reports whether the player was hit.
func (w *World) Dead() bool { return w.dead }

// DeathTick returns the tick on which the player died, 0 while alive.
func (w *World) DeathTick() uint64 { return w.deathTick }

// Clock returns the simulated seconds since the start.
func (w *World) Clock() float64 { return w.clock }

// Ticks returns the number of live ticks simulated.
func (w *World) Ticks() uint64 { return w.ticks }

// Window returns the visible lane bounds, inclusive.
func (w *World) Window() (start, end int) { return w.lanes.Window() }

// VisibleLanes returns the lanes of the window. The slice is reused by the
// next Step.
func (w *World) VisibleLanes() []Lane { return w.visible }

// Obstacles returns this tick's scooters. The slice is reused by the next
// Step.
func (w *World) Obstacles() []Obstacle { return w.obstacles }

// Lane returns a retained lane.
func (w *World) Lane(index int) (Lane, bool) { return w.lanes.Lane(index) }

// Player returns the player position, hop height on the z axis.
func (w *World) Player() mgl64.Vec3 { return w.mover.Position() }

// PlayerTransform returns the model matrix a renderer places the player with.
func (w *World) PlayerTransform() mgl64.Mat4 {
	p := w.mover.Position()
	return mgl64.Translate3D(p.X(), p.Y(), p.Z())
}

// Moving reports whether a move is in progress.
func (w *World) Moving() bool { return w.mover.State() == MoveMoving }

// Mover exposes the movement controller for renderers and tests.
func (w *World) Mover() *Mover { return &w.mover }

// Params returns the parameters the world was built with.
func (w *World) Params() Params { return w.params }

// Pending returns the intent waiting for the next tick.
func (w *World) Pending() Intent { return w.pending }

// LanesReached returns the furthest lane the window has reached.
func (w *World) LanesReached() int {
	_, hi := w.lanes.Retained()
	return hi
}
