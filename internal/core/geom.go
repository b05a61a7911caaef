// Package core provides the grid, geometry, colour and input primitives shared by the game and its front ends.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an integer rectangle on the screen grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned box in world units, described by its center and
// half extents. World y grows forward (away from the start line).
type Box struct {
	CX, CY float64 // Center
	HX, HY float64 // Half extents
}

// NewBox creates a box centered at (cx, cy) with the given half extents.
func NewBox(cx, cy, hx, hy float64) Box {
	return Box{CX: cx, CY: cy, HX: hx, HY: hy}
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(other Box) bool {
	if b.CX-b.HX >= other.CX+other.HX || other.CX-other.HX >= b.CX+b.HX {
		return false
	}
	if b.CY-b.HY >= other.CY+other.HY || other.CY-other.HY >= b.CY+b.HY {
		return false
	}
	return true
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
