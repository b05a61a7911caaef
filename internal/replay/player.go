package replay

import (
	"fmt"

	"github.com/vovakirdan/bruin-walk/internal/core"
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
)

// Player feeds a recording back into a fresh game one tick at a time.
type Player struct {
	rec  Recording
	game *bruinwalk.Game
	tick uint64
	next int // Index into rec.Inputs
}

// NewPlayer prepares a recording for playback.
func NewPlayer(rec Recording) (*Player, error) {
	v, ok := bruinwalk.VariantByID(rec.GameID)
	if !ok {
		return nil, fmt.Errorf("replay: unknown game %q", rec.GameID)
	}
	g := bruinwalk.New(v)
	g.ResetWith(rec.Runtime(), rec.Config)
	return &Player{rec: rec, game: g}, nil
}

// Done reports whether every recorded tick has been played.
func (p *Player) Done() bool {
	return p.tick >= p.rec.Ticks
}

// Step plays one recorded tick. It returns false once the recording is over.
func (p *Player) Step() bool {
	if p.Done() {
		return false
	}
	in := core.NewInputFrame()
	if p.next < len(p.rec.Inputs) && p.rec.Inputs[p.next].Tick == p.tick {
		for _, a := range p.rec.Inputs[p.next].Actions {
			in.Set(a)
		}
		p.next++
	}
	p.game.Step(in)
	p.tick++
	return true
}

// Tick returns the number of ticks played.
func (p *Player) Tick() uint64 {
	return p.tick
}

// Game returns the game being replayed.
func (p *Player) Game() *bruinwalk.Game {
	return p.game
}

// Recording returns the recording being played.
func (p *Player) Recording() Recording {
	return p.rec
}

// Result summarizes a finished simulation.
type Result struct {
	Score        int
	Dead         bool
	DeathTick    uint64
	Ticks        uint64
	LanesReached int
}

// Play re-simulates a recording to its end without rendering.
func Play(rec Recording) (Result, error) {
	p, err := NewPlayer(rec)
	if err != nil {
		return Result{}, err
	}
	for p.Step() {
	}
	w := p.game.World()
	return Result{
		Score:        w.Score(),
		Dead:         w.Dead(),
		DeathTick:    w.DeathTick(),
		Ticks:        p.tick,
		LanesReached: w.LanesReached(),
	}, nil
}
