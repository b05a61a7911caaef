package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bruin-walk/internal/core"
	"github.com/vovakirdan/bruin-walk/internal/replay"
)

// replaySpeeds are the playback multipliers cycled with F.
var replaySpeeds = []int{1, 2, 4, 8}

// ReplayModel plays a recorded run back at its original tick rate.
type ReplayModel struct {
	player    *replay.Player
	rec       replay.Recording
	screen    *core.Screen
	runtime   core.RuntimeConfig
	speed     int // Index into replaySpeeds
	paused    bool
	quitting  bool
	goingBack bool
}

// NewReplayModel prepares a recording for display.
func NewReplayModel(rec replay.Recording, width, height int) (ReplayModel, error) {
	p, err := replay.NewPlayer(rec)
	if err != nil {
		return ReplayModel{}, err
	}
	return ReplayModel{
		player:  p,
		rec:     rec,
		screen:  core.NewScreen(width, height),
		runtime: rec.Runtime(),
	}, nil
}

// Init starts the playback clock.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.runtime.TickInterval())
}

// Update handles messages.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.goingBack {
			return m, nil
		}
		if !m.paused {
			for i := 0; i < replaySpeeds[m.speed]; i++ {
				if !m.player.Step() {
					break
				}
			}
		}
		return m, tickCmd(m.runtime.TickInterval())
	}

	return m, nil
}

func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "b", "esc":
		m.goingBack = true
		return m, tea.Quit
	case "p", " ":
		m.paused = !m.paused
	case "f":
		m.speed = (m.speed + 1) % len(replaySpeeds)
	case "r":
		if p, err := replay.NewPlayer(m.rec); err == nil {
			m.player = p
			m.paused = false
		}
	}
	return m, nil
}

// View renders the replayed game with a status line under the HUD.
func (m ReplayModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	m.player.Game().Render(m.screen)

	state := "playing"
	switch {
	case m.player.Done():
		state = "finished"
	case m.paused:
		state = "paused"
	}
	status := fmt.Sprintf(" replay %s  x%d  %s  %d/%d  P: pause  F: speed  R: again  B: back ",
		shortID(m.rec.RunID), replaySpeeds[m.speed], state, m.player.Tick(), m.rec.Ticks)
	m.screen.DrawTextColor(1, 1, status, core.ColorYellow)

	return RenderScreen(m.screen)
}

// Done reports whether every recorded tick has been shown.
func (m ReplayModel) Done() bool {
	return m.player.Done()
}

// IsGoingBack returns true if user wants to go back.
func (m ReplayModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayModel) IsQuitting() bool {
	return m.quitting
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RunReplay shows a recording in a standalone program.
func RunReplay(rec replay.Recording, cfg core.RuntimeConfig) error {
	model, err := NewReplayModel(rec, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
