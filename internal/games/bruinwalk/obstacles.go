package bruinwalk

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TreeX is where the decorative tree of a safe lane stands.
const TreeX = -10.0

// Track describes the sawtooth path scooters follow along their lane.
type Track struct {
	Cycle      float64 // Track length in lane speed units
	Span       float64 // Start edge before scaling
	SpeedScale float64 // Lane speed to units per second
	Offset     float64
	Scale      float64
}

// Period returns the seconds a scooter at the given lane speed needs to run
// the whole track once.
func (t Track) Period(speed float64) float64 {
	return t.Cycle / (speed * t.SpeedScale)
}

// X returns the scooter x coordinate on lane l at clock time now. The
// scooter runs against the lane direction from the start edge and wraps
// back to it every period.
func (t Track) X(l Lane, now float64) float64 {
	p := t.Period(l.Speed)
	phase := math.Mod(now, p)
	if phase < 0 {
		phase += p
	}
	return t.Offset + float64(l.Direction)*(t.Span-l.Speed*t.SpeedScale*phase)*t.Scale
}

// Extent returns the x range every scooter position falls in.
func (t Track) Extent() (lo, hi float64) {
	reach := max(t.Span, t.Cycle-t.Span) * t.Scale
	return t.Offset - reach, t.Offset + reach
}

// LaneY returns the y coordinate of lane index for cell width l.
func LaneY(index int, l float64) float64 {
	return l * float64(index+1)
}

// Obstacle is one scooter at one instant.
type Obstacle struct {
	Lane      int
	Direction int
	Pos       mgl64.Vec2
}

// Obstacles appends the scooter of every unsafe lane in lanes to dst.
func (t Track) Obstacles(lanes []Lane, now, cell float64, dst []Obstacle) []Obstacle {
	for _, l := range lanes {
		if l.Safe {
			continue
		}
		dst = append(dst, Obstacle{
			Lane:      l.Index,
			Direction: l.Direction,
			Pos:       mgl64.Vec2{t.X(l, now), LaneY(l.Index, cell)},
		})
	}
	return dst
}
