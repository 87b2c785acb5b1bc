package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

// maxHistoryRows is how many finished games the history screen loads.
const maxHistoryRows = 50

// ScoreboardModel is the game-history screen: aggregated stats on top,
// recent games in a scrollable table below.
type ScoreboardModel struct {
	table  table.Model
	stats  *storage.Stats
	theme  Theme
	width  int
	height int
	err    error
}

// NewScoreboardModel loads history from the store and builds the screen.
func NewScoreboardModel(store *storage.Store, theme Theme, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		theme:  theme,
		width:  width,
		height: height,
	}

	records, err := store.RecentGames(maxHistoryRows)
	if err != nil {
		m.err = err
		return m
	}
	m.stats, err = store.GetStats()
	if err != nil {
		m.err = err
		return m
	}

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Max", Width: 6},
		{Title: "Won", Width: 4},
		{Title: "Date", Width: 16},
	}

	rows := make([]table.Row, 0, len(records))
	for i, rec := range records {
		won := ""
		if rec.Won {
			won = "★"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(rec.Score),
			strconv.Itoa(rec.MaxTile),
			won,
			rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	tableHeight := len(rows)
	if tableHeight > 10 {
		tableHeight = 10
	}
	if tableHeight < 1 {
		tableHeight = 1
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(tableHeight),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(styles)

	m.table = t
	return m
}

// HandleKey routes a key press. Returns true when the screen should
// close.
func (m *ScoreboardModel) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc", "b", "t":
		return true
	}

	m.table, _ = m.table.Update(msg)
	return false
}

// Resize updates the screen dimensions.
func (m *ScoreboardModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the history screen.
func (m ScoreboardModel) View() string {
	theme := m.theme

	if m.err != nil {
		return theme.Label.Render(fmt.Sprintf("could not load history: %v", m.err))
	}

	title := theme.ScoreboardHead.Render("Game History")

	var statsLine string
	if m.stats != nil {
		statsLine = theme.Label.Render(fmt.Sprintf(
			"games %d  │  best %d  │  avg %.0f  │  highest tile %d  │  wins %d",
			m.stats.GamesCount, m.stats.BestScore, m.stats.AvgScore,
			m.stats.HighestTile, m.stats.Wins,
		))
	}

	body := m.table.View()
	if m.stats != nil && m.stats.GamesCount == 0 {
		body = theme.Muted.Render("No games recorded yet.")
	}

	hint := theme.Controls.Render("esc: back  ↑/↓: scroll  q: quit")

	view := lipgloss.JoinVertical(lipgloss.Center, title, statsLine, body, hint)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}
