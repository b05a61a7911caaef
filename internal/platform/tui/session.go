package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/bruin-walk/internal/core"
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
	"github.com/vovakirdan/bruin-walk/internal/registry"
	"github.com/vovakirdan/bruin-walk/internal/replay"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

// screen identifies which child model a session is showing.
type screen int

const (
	screenMenu screen = iota
	screenDifficulty
	screenGame
	screenScoreboard
	screenRuns
	screenReplay
)

// SessionModel manages the full session flow:
// menu -> difficulty -> game -> menu, plus the score, run and replay screens.
// It is the top-level model for SSH sessions and the local menu command.
//
// Child models end themselves with tea.Quit; the session drops that command
// when it switches screens.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	username   string
	sessionID  string
	screen     screen
	menu       MenuModel
	difficulty DifficultyModel
	gameID     string
	gameModel  *GameModel
	scoreboard ScoreboardModel
	runs       RunsModel
	replay     ReplayModel
	notice     string // One-line message shown under the menu
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:     store,
		config:    cfg,
		username:  username,
		sessionID: uuid.NewString(),
		menu:      NewMenuModel(loadHighScores(store), cfg),
	}
}

// loadHighScores collects the best score of every registered game.
func loadHighScores(store *storage.Store) map[string]int {
	scores := make(map[string]int)
	if store == nil {
		return scores
	}
	for _, g := range registry.List() {
		if best, err := store.HighScore(g.ID); err == nil {
			scores[g.ID] = best
		}
	}
	return scores
}

// ID returns the session identifier used in logs.
func (m SessionModel) ID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenDifficulty:
		return m.updateDifficulty(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenRuns:
		return m.updateRuns(msg)
	case screenReplay:
		return m.updateReplay(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu switches back to a fresh menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.gameModel = nil
	m.menu = NewMenuModel(loadHighScores(m.store), m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.Selected() != nil:
		selected := m.menu.Selected()
		m.gameID = selected.GameID
		m.config = m.menu.Config()
		m.notice = ""
		m.difficulty = NewDifficultyModel(selected.Title, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenDifficulty
		return m, m.difficulty.Init()

	case m.menu.WantsScoreboard():
		m.notice = ""
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.WantsRuns():
		m.notice = ""
		m.runs = NewRunsModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenRuns
		return m, m.runs.Init()
	}

	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.difficulty.Update(msg)
	if dm, ok := newModel.(DifficultyModel); ok {
		m.difficulty = dm
	}

	switch {
	case m.difficulty.IsQuitting():
		return m.quit()

	case m.difficulty.WantsBack():
		return m.toMenu()

	case m.difficulty.Selected() != nil:
		game, err := registry.Create(m.gameID)
		if err != nil {
			m.notice = err.Error()
			return m.toMenu()
		}
		if bw, ok := game.(*bruinwalk.Game); ok {
			bw.SetPreset(m.difficulty.Selected().Preset)
		}
		gm := NewGameModel(game, m.store, m.config, m.username)
		m.gameModel = &gm
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		return m.quit()
	}
	if m.gameModel.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	if m.scoreboard.IsQuitting() {
		return m.quit()
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if rm, ok := newModel.(RunsModel); ok {
		m.runs = rm
	}

	switch {
	case m.runs.IsQuitting():
		return m.quit()

	case m.runs.IsGoingBack():
		return m.toMenu()

	case m.runs.Selected() != nil:
		rec, err := replay.Decode(m.runs.Selected().Replay)
		if err == nil {
			m.replay, err = NewReplayModel(rec, m.config.ScreenW, m.config.ScreenH)
		}
		if err != nil {
			next, cmd := m.toMenu()
			s := next.(SessionModel)
			s.notice = "cannot play run: " + err.Error()
			return s, cmd
		}
		m.screen = screenReplay
		return m, m.replay.Init()
	}

	return m, cmd
}

func (m SessionModel) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replay.Update(msg)
	if rm, ok := newModel.(ReplayModel); ok {
		m.replay = rm
	}

	if m.replay.IsQuitting() {
		return m.quit()
	}
	if m.replay.IsGoingBack() {
		m.runs = NewRunsModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenRuns
		return m, m.runs.Init()
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenDifficulty:
		return m.difficulty.View()
	case screenGame:
		return m.gameModel.View()
	case screenScoreboard:
		return m.scoreboard.View()
	case screenRuns:
		return m.runs.View()
	case screenReplay:
		return m.replay.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(m.notice, m.config.ScreenW) + "\n"
	}
	return view
}

// IsQuitting returns true once the user has left the session.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs the full menu flow in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(
		NewSessionModel(store, cfg, ""),
		tea.WithAltScreen(),
	).Run()
	return err
}
