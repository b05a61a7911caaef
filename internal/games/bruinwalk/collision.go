package bruinwalk

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/bruin-walk/internal/core"
)

// Hitbox holds the collision half extents of the player and the scooters.
type Hitbox struct {
	PlayerHalfX   float64
	PlayerHalfY   float64
	ObstacleHalfX float64
	ObstacleHalfY float64
	Ceiling       float64 // A player hopping higher than this clears scooters
}

// Collide reports whether a player at (px, py) with hop height pz touches a
// scooter at (ox, oy). Boxes that only share an edge do not collide.
func (h Hitbox) Collide(px, py, pz, ox, oy float64) bool {
	if pz > h.Ceiling {
		return false
	}
	player := core.NewBox(px, py, h.PlayerHalfX, h.PlayerHalfY)
	scooter := core.NewBox(ox, oy, h.ObstacleHalfX, h.ObstacleHalfY)
	return player.Overlaps(scooter)
}

// Detector checks collisions one frame late: a tick tests the positions
// recorded at the tick before it.
type Detector struct {
	hitbox    Hitbox
	player    mgl64.Vec3
	obstacles []mgl64.Vec2
	recorded  bool
}

// NewDetector creates a detector with nothing recorded yet.
func NewDetector(h Hitbox) Detector {
	return Detector{hitbox: h}
}

// Check tests the recorded frame. It reports false before the first Record.
func (d *Detector) Check() bool {
	if !d.recorded {
		return false
	}
	p := d.player
	for _, o := range d.obstacles {
		if d.hitbox.Collide(p.X(), p.Y(), p.Z(), o.X(), o.Y()) {
			return true
		}
	}
	return false
}

// Record stores this frame for the next Check.
func (d *Detector) Record(player mgl64.Vec3, obstacles []Obstacle) {
	d.player = player
	d.obstacles = d.obstacles[:0]
	for _, o := range obstacles {
		d.obstacles = append(d.obstacles, o.Pos)
	}
	d.recorded = true
}

// Reset forgets the recorded frame.
func (d *Detector) Reset() {
	d.obstacles = d.obstacles[:0]
	d.recorded = false
}
