package bruinwalk

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/bruin-walk/internal/core"
)

// Intent is a requested one-cell move.
type Intent int

const (
	IntentNone Intent = iota
	IntentForward
	IntentBackward
	IntentLeft
	IntentRight
)

var intentNames = map[Intent]string{
	IntentNone:     "none",
	IntentForward:  "forward",
	IntentBackward: "backward",
	IntentLeft:     "left",
	IntentRight:    "right",
}

// String returns the wire name of an intent.
func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// ParseIntent converts a wire name back to an intent.
func ParseIntent(s string) (Intent, bool) {
	for in, name := range intentNames {
		if name == s && in != IntentNone {
			return in, true
		}
	}
	return IntentNone, false
}

// IntentFromAction maps a movement action to its intent.
func IntentFromAction(a core.Action) Intent {
	switch a {
	case core.ActionForward:
		return IntentForward
	case core.ActionBackward:
		return IntentBackward
	case core.ActionLeft:
		return IntentLeft
	case core.ActionRight:
		return IntentRight
	default:
		return IntentNone
	}
}

// Action maps an intent back to its input action.
func (i Intent) Action() core.Action {
	switch i {
	case IntentForward:
		return core.ActionForward
	case IntentBackward:
		return core.ActionBackward
	case IntentLeft:
		return core.ActionLeft
	case IntentRight:
		return core.ActionRight
	default:
		return core.ActionNone
	}
}

// step returns the unit direction of the intent on the grid.
func (i Intent) step() mgl64.Vec2 {
	switch i {
	case IntentForward:
		return mgl64.Vec2{0, 1}
	case IntentBackward:
		return mgl64.Vec2{0, -1}
	case IntentLeft:
		return mgl64.Vec2{-1, 0}
	case IntentRight:
		return mgl64.Vec2{1, 0}
	default:
		return mgl64.Vec2{}
	}
}

// roundsDown reports whether a finished move snaps with floor rather than ceil.
func (i Intent) roundsDown() bool {
	return i == IntentForward || i == IntentRight
}

// MoveState is the movement controller state.
type MoveState int

const (
	MoveIdle MoveState = iota
	MoveMoving
)

func (s MoveState) String() string {
	if s == MoveMoving {
		return "moving"
	}
	return "idle"
}

// snapEpsilon absorbs float noise when snapping to a cell boundary.
const snapEpsilon = 1e-9

// HopHeight returns the parabolic hop height after covering distance c of a
// cell of width l. It is zero at both ends of the move and peaks at l/2.
func HopHeight(l, c float64) float64 {
	c = core.ClampF(c, 0, l)
	return 2 * (l*c - c*c)
}

// Mover moves the player one cell at a time. Between moves the position is
// an exact multiple of the cell width on both axes.
type Mover struct {
	cell     float64
	velocity float64

	pos      mgl64.Vec2
	baseline mgl64.Vec2
	hop      float64

	state  MoveState
	intent Intent
	start  float64
}

// NewMover creates an idle mover at the origin.
func NewMover(cell, velocity float64) Mover {
	if velocity <= 0 {
		velocity = 1
	}
	return Mover{cell: cell, velocity: velocity}
}

// State returns the current movement state.
func (m *Mover) State() MoveState { return m.state }

// Intent returns the move in progress, IntentNone when idle.
func (m *Mover) Intent() Intent { return m.intent }

// Begin starts a move at time now. It is rejected while another move runs.
func (m *Mover) Begin(in Intent, now float64) bool {
	if m.state == MoveMoving || in == IntentNone {
		return false
	}
	m.state = MoveMoving
	m.intent = in
	m.start = now
	m.baseline = m.pos
	m.hop = 0
	return true
}

// Advance moves the player to where it should be at time now and reports
// whether the move finished during this call.
func (m *Mover) Advance(now float64) bool {
	if m.state != MoveMoving {
		return false
	}

	c := max((now-m.start)*m.velocity, 0)
	if c >= m.cell {
		m.pos = m.baseline.Add(m.intent.step().Mul(m.cell))
		m.pos = m.snap(m.pos, m.intent.roundsDown())
		m.hop = 0
		m.state = MoveIdle
		m.intent = IntentNone
		m.start = 0
		return true
	}

	m.pos = m.baseline.Add(m.intent.step().Mul(c))
	m.hop = HopHeight(m.cell, c)
	return false
}

func (m *Mover) snap(v mgl64.Vec2, down bool) mgl64.Vec2 {
	for i := range v {
		k := v[i] / m.cell
		if down {
			k = math.Floor(k + snapEpsilon)
		} else {
			k = math.Ceil(k - snapEpsilon)
		}
		v[i] = k * m.cell
	}
	return v
}

// Progress returns the fraction of the current move covered, 0 when idle.
func (m *Mover) Progress() float64 {
	if m.state != MoveMoving {
		return 0
	}
	d := m.pos.Sub(m.baseline).Len()
	return core.ClampF(d/m.cell, 0, 1)
}

// Grid returns the planar position in world units.
func (m *Mover) Grid() mgl64.Vec2 { return m.pos }

// Hop returns the current height above ground.
func (m *Mover) Hop() float64 { return m.hop }

// Position returns the player position with the hop as the third axis.
func (m *Mover) Position() mgl64.Vec3 { return m.pos.Vec3(m.hop) }

// Cell returns the integer grid cell of the last completed move.
func (m *Mover) Cell() (x, y int) {
	p := m.pos
	if m.state == MoveMoving {
		p = m.baseline
	}
	return int(math.Round(p.X() / m.cell)), int(math.Round(p.Y() / m.cell))
}
