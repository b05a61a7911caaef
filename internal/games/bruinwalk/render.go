package bruinwalk

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bruin-walk/internal/core"
)

// Visual characters for rendering
const (
	GrassChar    = '░'
	RoadChar     = '─'
	SidewalkChar = '▒'
	TreeChar     = '♣'
	BruinChar    = 'B'
)

var (
	scooterLeft  = "<o="
	scooterRight = "=o>"
)

// DeathMessage is the end screen headline for a final score.
func DeathMessage(score int) string {
	return fmt.Sprintf("Game has ended. Your score was %d!", score)
}

// camera maps world coordinates to screen cells. The player sits at a fixed
// row and the view scrolls with its y position.
type camera struct {
	top, bottom int // Inclusive world rows
	playerRow   int
	cameraY     float64
	cell        float64
	xLo, xHi    float64
	width       int
}

func newCamera(w *World, width, height int) camera {
	lo, hi := w.params.Track.Extent()
	pad := w.params.Hitbox.ObstacleHalfX
	top, bottom := 1, height-2
	return camera{
		top:       top,
		bottom:    bottom,
		playerRow: top + (bottom-top)*3/4,
		cameraY:   w.Player().Y(),
		cell:      w.params.Cell,
		xLo:       lo - pad,
		xHi:       hi + pad,
		width:     width,
	}
}

func (c camera) row(y float64) int {
	return c.playerRow - int(math.Round((y-c.cameraY)/c.cell))
}

func (c camera) col(x float64) int {
	if c.xHi <= c.xLo || c.width < 2 {
		return 0
	}
	return int(math.Round((x - c.xLo) / (c.xHi - c.xLo) * float64(c.width-1)))
}

func (c camera) visible(row int) bool {
	return row >= c.top && row <= c.bottom
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	w := g.world

	if w.Dead() {
		dst.DrawCenteredMessage(DeathMessage(w.Score()), "R: restart  |  B: menu  |  Q: quit")
		return
	}

	if dst.Height() >= 4 {
		g.drawWorld(dst, newCamera(w, dst.Width(), dst.Height()))
		dst.DrawTextColor(1, dst.Height()-1, "W/A/S/D move  P pause  B menu  Q quit", core.ColorGray)
	}

	// HUD
	start, end := w.Window()
	dst.DrawTextColor(1, 0, fmt.Sprintf(" Score: %d ", w.Score()), core.ColorHUD)
	lanesText := fmt.Sprintf(" Lanes %d-%d ", start, end)
	dst.DrawTextColor(dst.Width()-len(lanesText)-1, 0, lanesText, core.ColorGray)

	if g.paused {
		dst.DrawCenteredMessage("PAUSED", "Press P to resume")
	}
}

func (g *Game) drawWorld(dst *core.Screen, cam camera) {
	w := g.world

	if row := cam.row(0); cam.visible(row) {
		dst.DrawHLine(0, row, dst.Width(), SidewalkChar, core.ColorGray)
	}

	for _, l := range w.VisibleLanes() {
		row := cam.row(LaneY(l.Index, w.params.Cell))
		if !cam.visible(row) {
			continue
		}
		if l.Safe {
			dst.DrawHLine(0, row, dst.Width(), GrassChar, core.ColorGrass)
			dst.SetColor(cam.col(TreeX), row, TreeChar, core.ColorTree)
			continue
		}
		for x := 0; x < dst.Width(); x++ {
			if x%4 < 2 {
				dst.SetColor(x, row, RoadChar, core.ColorRoad)
			}
		}
	}

	for _, o := range w.Obstacles() {
		row := cam.row(o.Pos.Y())
		if !cam.visible(row) {
			continue
		}
		glyph := scooterRight
		if o.Direction > 0 {
			glyph = scooterLeft
		}
		dst.DrawTextColor(cam.col(o.Pos.X())-1, row, glyph, core.ColorScooter)
	}

	p := w.Player()
	color := core.ColorBruin
	if p.Z() > w.params.Hitbox.Ceiling {
		color = core.ColorBrightYellow
	}
	dst.SetColor(cam.col(p.X()), cam.playerRow, BruinChar, color)
}
