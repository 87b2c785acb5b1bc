// Package tui provides the Bubble Tea front end for the 2048 engine:
// input mapping, board rendering, the history screen, and SSH serving.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// spawnMsg fires when the deferred-spawn presentation window elapses.
// The token fences it against moves undone or games restarted in the
// meantime.
type spawnMsg struct {
	token uint64
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	session *game.Session
	store   *storage.Store
	cfg     config.Config
	theme   Theme
	keys    KeyMap
	help    help.Model

	scoreboard *ScoreboardModel // non-nil while the history screen is up

	width  int
	height int

	muted     bool
	gameSaved bool // history record written for the current game over
	quitting  bool
}

// NewModel creates the game screen model. The store may be nil; the game
// then runs without persistence.
func NewModel(session *game.Session, store *storage.Store, cfg config.Config) Model {
	m := Model{
		session: session,
		store:   store,
		cfg:     cfg,
		theme:   ThemeByName(cfg.UI.Theme),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}

	if store != nil {
		if muted, err := store.Mute(); err == nil {
			m.muted = muted
		}
	}

	return m
}

// Init implements tea.Model. The game is event-driven; there is no tick
// loop.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.scoreboard != nil {
			m.scoreboard.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case spawnMsg:
		if m.session.CompleteSpawn(msg.token) {
			m.recordIfOver()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// History screen swallows everything except quit.
	if m.scoreboard != nil {
		if m.scoreboard.HandleKey(msg) {
			m.scoreboard = nil
		}
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		return m.handleMove(dir)
	}

	switch {
	case key.Matches(msg, m.keys.Undo):
		if m.session.Undo() {
			m.gameSaved = false
		}

	case key.Matches(msg, m.keys.NewGame):
		m.session.NewGame()
		m.gameSaved = false

	case key.Matches(msg, m.keys.KeepPlaying):
		m.session.KeepPlaying()

	case key.Matches(msg, m.keys.Mute):
		m.muted = !m.muted
		if m.store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SetMute(m.muted)
		}

	case key.Matches(msg, m.keys.Scores):
		if m.store != nil {
			sb := NewScoreboardModel(m.store, m.theme, m.width, m.height)
			m.scoreboard = &sb
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleMove applies one directional move and schedules the deferred
// spawn when the session asked for a presentation window.
func (m Model) handleMove(dir game.Direction) (tea.Model, tea.Cmd) {
	out := m.session.Move(dir)

	if out.SpawnToken != 0 {
		token := out.SpawnToken
		delay := time.Duration(m.cfg.Game.SpawnDelayMS) * time.Millisecond
		return m, tea.Tick(delay, func(time.Time) tea.Msg {
			return spawnMsg{token: token}
		})
	}

	if out.Moved {
		m.recordIfOver()
	}
	return m, nil
}

// recordIfOver writes the history record once per finished game.
func (m *Model) recordIfOver() {
	if !m.session.GameOver() || m.gameSaved {
		return
	}
	if m.store != nil {
		// The win overlay blocks further moves, so a finished game was won
		// exactly when the player chose to keep playing at some point.
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveGame(m.session.Score(), m.session.MaxTile(), m.session.IsKeepPlaying())
	}
	m.gameSaved = true
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}
	return m.renderGame()
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(session *game.Session, store *storage.Store, cfg config.Config) error {
	p := tea.NewProgram(
		NewModel(session, store, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
