package bruinwalk

import "github.com/go-gl/mathgl/mgl64"

// Frame is everything a renderer needs to draw one tick.
type Frame struct {
	Game      string         `json:"game"`
	Tick      uint64         `json:"tick"`
	Time      float64        `json:"time"`
	Score     int            `json:"score"`
	Dead      bool           `json:"dead"`
	Paused    bool           `json:"paused"`
	StartLane int            `json:"start_lane"`
	EndLane   int            `json:"end_lane"`
	Lanes     []LaneView     `json:"lanes"`
	Player    PlayerView     `json:"player"`
	Obstacles []ObstacleView `json:"obstacles"`
}

// LaneView describes a visible lane. Safe lanes carry a tree.
type LaneView struct {
	Index     int         `json:"index"`
	Y         float64     `json:"y"`
	Safe      bool        `json:"safe"`
	Direction int         `json:"direction"`
	Speed     float64     `json:"speed"`
	Tree      *mgl64.Vec2 `json:"tree,omitempty"`
}

type PlayerView struct {
	Position  mgl64.Vec3 `json:"position"`
	Transform mgl64.Mat4 `json:"transform"`
	Moving    bool       `json:"moving"`
	Intent    string     `json:"intent,omitempty"`
	Progress  float64    `json:"progress"`
}

type ObstacleView struct {
	Lane      int     `json:"lane"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction int     `json:"direction"`
}

// Frame captures the current state. The result shares nothing with the
// world and stays valid after further steps.
func (w *World) Frame() Frame {
	start, end := w.Window()
	f := Frame{
		Tick:      w.ticks,
		Time:      w.clock,
		Score:     w.score,
		Dead:      w.dead,
		StartLane: start,
		EndLane:   end,
		Lanes:     make([]LaneView, 0, len(w.visible)),
		Obstacles: make([]ObstacleView, 0, len(w.obstacles)),
		Player: PlayerView{
			Position:  w.Player(),
			Transform: w.PlayerTransform(),
			Moving:    w.Moving(),
			Progress:  w.mover.Progress(),
		},
	}
	if w.Moving() {
		f.Player.Intent = w.mover.Intent().String()
	}

	for _, l := range w.visible {
		lv := LaneView{
			Index:     l.Index,
			Y:         LaneY(l.Index, w.params.Cell),
			Safe:      l.Safe,
			Direction: l.Direction,
			Speed:     l.Speed,
		}
		if l.Safe {
			tree := mgl64.Vec2{TreeX, lv.Y}
			lv.Tree = &tree
		}
		f.Lanes = append(f.Lanes, lv)
	}
	for _, o := range w.obstacles {
		f.Obstacles = append(f.Obstacles, ObstacleView{
			Lane:      o.Lane,
			X:         o.Pos.X(),
			Y:         o.Pos.Y(),
			Direction: o.Direction,
		})
	}
	return f
}
