package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bruin-walk/internal/core"
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
	"github.com/vovakirdan/bruin-walk/internal/registry"
	"github.com/vovakirdan/bruin-walk/internal/replay"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

// GameModel runs one game, records it and stores the run when it ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	recorder   *replay.Recorder
	runID      string
	standalone bool // Back quits the program instead of returning to a parent
	quitting   bool
	backToMenu bool
	runSaved   bool
	saveErr    error
}

// NewGameModel creates a game model and starts the first run.
// player names the SSH user or web client; it is empty for local play.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		player:     player,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	m.reset()
	return m
}

// reset starts a new run with the current seed.
func (m *GameModel) reset() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.saveErr = nil
	m.runID = storage.NewRunID()
	m.recorder = nil
	if bw, ok := m.game.(*bruinwalk.Game); ok {
		m.recorder = replay.NewRecorder(m.runID, bw.ID(), m.config, bw.Config())
	}
	m.inputFrame.Clear()
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The view follows the player, so a resize never restarts the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc leaves once the run is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// gameInput keeps the actions the simulation understands.
func gameInput(f core.InputFrame) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range f.List() {
		if a.IsMovement() || a == core.ActionPause {
			in.Set(a)
		}
	}
	return in
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.reset()
		return m, tickCmd(m.config.TickInterval())
	}

	in := gameInput(m.inputFrame)
	wasOver := m.gameState.GameOver
	result := m.game.Step(in)
	if m.recorder != nil && !wasOver {
		m.recorder.Record(in)
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickInterval())
}

// saveRun stores the score and the replay of a finished run.
func (m *GameModel) saveRun() {
	m.runSaved = true
	if m.store == nil {
		return
	}

	bw, ok := m.game.(*bruinwalk.Game)
	if !ok || m.recorder == nil {
		if score := m.gameState.Score; score > 0 {
			_, m.saveErr = m.store.SaveScore(m.game.ID(), score)
		}
		return
	}
	_, m.saveErr = replay.Save(m.store, m.recorder.Finish(m.gameState.Score), m.player, bw.World())
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	if m.gameState.GameOver && m.store != nil {
		status := fmt.Sprintf(" run %s saved ", m.runID[:8])
		if m.saveErr != nil {
			status = " run not saved: " + m.saveErr.Error()
		}
		m.screen.DrawTextColor(1, m.screen.Height()-1, status, core.ColorGray)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunID returns the ID the current run is stored under.
func (m GameModel) RunID() string {
	return m.runID
}

// SaveError returns the error of the last attempt to store a run.
func (m GameModel) SaveError() error {
	return m.saveErr
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg, "")
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
