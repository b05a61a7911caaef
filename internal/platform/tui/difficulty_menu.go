package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bruin-walk/internal/config"
	"github.com/vovakirdan/bruin-walk/internal/core"
)

// DifficultyOption is one entry of the difficulty picker.
type DifficultyOption struct {
	Label  string
	Blurb  string
	Preset config.DifficultyPreset // Empty keeps the configured difficulty
}

// DifficultyOptions lists the choices in menu order.
var DifficultyOptions = []DifficultyOption{
	{Label: "Normal", Blurb: "Scooters pick up speed as you go", Preset: config.DifficultyNormal},
	{Label: "Easy", Blurb: "More grass, gentle start", Preset: config.DifficultyEasy},
	{Label: "Hard", Blurb: "Fast scooters, little grass", Preset: config.DifficultyHard},
	{Label: "Steady", Blurb: "Speed never ramps up", Preset: config.DifficultyFixed},
}

// DifficultyModel lets users choose a difficulty preset before a run.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection *DifficultyOption
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a difficulty picker for the given game title.
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(DifficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		opt := DifficultyOptions[m.cursor]
		m.selection = &opt
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130"))
	blurbStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range DifficultyOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + opt.Label + "  " + blurbStyle.Render(opt.Blurb)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen option, or nil if none was chosen.
func (m DifficultyModel) Selected() *DifficultyOption {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the picker on its own and returns the choice,
// or nil when the user backed out or quit.
func RunDifficultySelector(title string, cfg core.RuntimeConfig) (*DifficultyOption, error) {
	p := tea.NewProgram(
		NewDifficultyModel(title, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
