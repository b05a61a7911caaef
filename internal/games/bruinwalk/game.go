// Package bruinwalk implements Bruin Walk, an endless lane-crossing game.
// The player hops one cell at a time across an ever-extending strip of
// lanes while scooters sweep along the unsafe ones.
package bruinwalk

import (
	"github.com/vovakirdan/bruin-walk/internal/config"
	"github.com/vovakirdan/bruin-walk/internal/core"
	"github.com/vovakirdan/bruin-walk/internal/registry"
)

// Variant is one registered flavour of the game.
type Variant struct {
	ID          string
	Title       string
	Description string
	Classic     bool // Prototype scooter track
}

var (
	VariantBruinWalk = Variant{
		ID:          "bruinwalk",
		Title:       "Bruin Walk",
		Description: "Cross campus one lane at a time without meeting a scooter",
	}
	VariantClassic = Variant{
		ID:          "bruinwalk_classic",
		Title:       "Bruin Walk Classic",
		Description: "The original narrow scooter track",
		Classic:     true,
	}
)

// VariantByID looks up a registered variant.
func VariantByID(id string) (Variant, bool) {
	for _, v := range []Variant{VariantBruinWalk, VariantClassic} {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// movementOrder is the order in which simultaneous keys are offered to the
// single intent slot. The first accepted one wins.
var movementOrder = []core.Action{
	core.ActionForward,
	core.ActionBackward,
	core.ActionLeft,
	core.ActionRight,
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// configured difficulty.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig resolves the configuration a variant runs with. An empty
// preset falls back to the one set with SetDifficultyPreset.
func LoadConfig(v Variant, preset config.DifficultyPreset) config.BruinWalkConfig {
	cfg, err := config.LoadBruinWalk(configPath)
	if err != nil {
		cfg = config.DefaultBruinWalkConfig()
	}
	if preset == "" {
		preset = difficultyPreset
	}
	if preset != "" {
		config.ApplyBruinWalkPreset(&cfg, preset)
	}
	if v.Classic {
		config.ApplyClassicTrack(&cfg)
	}
	return cfg
}

// Game adapts a World to the arcade registry.
type Game struct {
	variant Variant
	runtime core.RuntimeConfig
	cfg     config.BruinWalkConfig
	world   *World
	paused  bool
	preset  config.DifficultyPreset
}

// New creates a game for the given variant. Call Reset before stepping.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description returns the menu blurb.
func (g *Game) Description() string {
	return g.variant.Description
}

// SetPreset picks the difficulty preset for this instance only. It takes
// effect on the next Reset.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// Reset starts a new run seeded with runtime.Seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.ResetWith(runtime, LoadConfig(g.variant, g.preset))
}

// ResetWith starts a new run with an explicit configuration.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.BruinWalkConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.paused = false
	g.world = NewWorld(ParamsFromConfig(cfg), config.NewDifficultyManager(cfg.Difficulty), runtime.Seed)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world.Dead() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range movementOrder {
		if in.Has(a) {
			g.world.Queue(IntentFromAction(a))
		}
	}
	g.world.Step(g.runtime.DeltaTime())

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: g.world.Dead(),
		Paused:   g.paused,
	}
}

// World returns the running simulation.
func (g *Game) World() *World {
	return g.world
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.BruinWalkConfig {
	return g.cfg
}

// Frame captures the current tick for renderers.
func (g *Game) Frame() Frame {
	f := g.world.Frame()
	f.Game = g.variant.ID
	f.Paused = g.paused
	return f
}

// Register the variants with the registry
func init() {
	for _, v := range []Variant{VariantBruinWalk, VariantClassic} {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
