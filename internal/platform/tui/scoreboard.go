package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

const maxScores = 100

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

type scoreboardKeys struct {
	Scroll key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Switch, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultScoreboardKeys = scoreboardKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	Switch: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"), key.WithHelp("←/→", "game")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScoreboardModel lists the top scores and CPU match record of each game.
type ScoreboardModel struct {
	games     []registry.GameInfo
	cursor    int
	store     *storage.Store
	scores    []storage.ScoreEntry
	tallies   []storage.MatchTally
	table     table.Model
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(height)
	if len(m.games) > 0 {
		m.loadScores()
	}
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) loadScores() {
	gameID := m.games[m.cursor].ID
	m.scores, m.tallies = nil, nil
	if m.store != nil {
		m.scores, _ = m.store.TopScores(gameID, maxScores)
		m.tallies, _ = m.store.MatchTallies(gameID)
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), fmt.Sprint(s.Score), s.CreatedAt.Format("Jan 02 15:04")}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation between games and scrolling.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultScoreboardKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, defaultScoreboardKeys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, defaultScoreboardKeys.Switch) && len(m.games) > 0:
			step := 1
			if s := msg.String(); s == "left" || s == "h" || s == "shift+tab" {
				step = -1
			}
			m.cursor = (m.cursor + step + len(m.games)) % len(m.games)
			m.loadScores()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the game tabs, the score table and the match record.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	if len(m.games) == 0 {
		return centerText("No games registered.", m.width)
	}

	var b strings.Builder
	title := "HIGH SCORES - " + m.games[m.cursor].Title
	b.WriteString(activeStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	content := m.table.View()
	if len(m.scores) == 0 {
		content = dimStyle.Italic(true).Padding(2, 4).Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	if len(m.tallies) > 0 {
		content += "\n\n" + renderTallies(m.tallies)
	}
	b.WriteString(centerText(boxStyle.Render(content), m.width))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(defaultScoreboardKeys)))
	return b.String()
}

// tabs lists the game titles, falling back to the current one when they
// do not fit.
func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.games))
	width := 0
	for i, g := range m.games {
		if i == m.cursor {
			tabs[i] = activeStyle.Render("[" + g.Title + "]")
		} else {
			tabs[i] = dimStyle.Render(" " + g.Title + " ")
		}
		width += len(g.Title) + 3
	}
	if width > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.cursor].Title)
	}
	return strings.Join(tabs, " ")
}

// renderTallies formats win/loss/draw counts per opponent.
func renderTallies(tallies []storage.MatchTally) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Record"))
	for _, t := range tallies {
		fmt.Fprintf(&b, "\n%-8s W %-3d L %-3d D %-3d", t.Opponent, t.Wins, t.Losses, t.Draws)
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	finalModel, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
