package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bruin-walk/internal/registry"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

const maxRuns = 50

// runsKeys narrows the shared bindings to the ones the run list uses.
type runsKeys struct {
	ScoreboardKeyMap
}

func (k runsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

func (k runsKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// RunsModel lists recent runs and lets the user pick one to watch.
type RunsModel struct {
	store     *storage.Store
	runs      []storage.Run
	loadErr   error
	table     table.Model
	help      help.Model
	keys      runsKeys
	width     int
	height    int
	selected  *storage.Run
	quitting  bool
	goingBack bool
}

// NewRunsModel loads the most recent runs of every track.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	m := RunsModel{
		store:  store,
		keys:   runsKeys{DefaultScoreboardKeyMap()},
		help:   help.New(),
		width:  width,
		height: height,
	}
	if store != nil {
		m.runs, m.loadErr = store.RecentRuns("", maxRuns)
	}
	m.table = m.createTable()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Track", Width: 18},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 6},
		{Title: "When", Width: 12},
	}
	t := newStyledTable(columns, m.height-8)

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		track := r.GameID
		if info, ok := registry.Info(r.GameID); ok {
			track = info.Title
		}
		player := r.Player
		if player == "" {
			player = "local"
		}
		rows[i] = table.Row{
			r.RunID[:8],
			track,
			player,
			fmt.Sprintf("%d", r.Score),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	t.SetRows(rows)
	return t
}

// Init initializes the model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.runs) {
				run := m.runs[i]
				m.selected = &run
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run list.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("RECENT RUNS"), m.width))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(centerText(subtleStyle.Render("Could not load runs: "+m.loadErr.Error()), m.width))
	case len(m.runs) == 0:
		b.WriteString(centerText(boxStyle.Render(subtleStyle.Italic(true).Padding(1, 4).Render("No runs yet.")), m.width))
	default:
		b.WriteString(centerText(boxStyle.Render(m.table.View()), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the run picked for playback, or nil.
func (m RunsModel) Selected() *storage.Run {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}
