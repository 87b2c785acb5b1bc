package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/game"
)

// cellWidth is the inner width of a board cell in characters.
const cellWidth = 6

// Minimum terminal size the game screen fits into.
const (
	MinWidth  = 31
	MinHeight = 14
)

// renderBoard draws the 4x4 grid with styled tiles.
func renderBoard(tiles []game.Tile, theme Theme) string {
	byCell := make(map[[2]int]game.Tile, len(tiles))
	for _, t := range tiles {
		byCell[[2]int{t.Row, t.Col}] = t
	}

	line := strings.Repeat("─", cellWidth)
	top := "┌" + strings.Repeat(line+"┬", game.BoardSize-1) + line + "┐"
	mid := "├" + strings.Repeat(line+"┼", game.BoardSize-1) + line + "┤"
	bottom := "└" + strings.Repeat(line+"┴", game.BoardSize-1) + line + "┘"

	var sb strings.Builder
	sb.WriteString(theme.EmptyCell.Render(top))
	sb.WriteByte('\n')

	for r := range game.BoardSize {
		sb.WriteString(theme.EmptyCell.Render("│"))
		for c := range game.BoardSize {
			tile, ok := byCell[[2]int{r, c}]
			if !ok {
				sb.WriteString(theme.EmptyCell.Render(strings.Repeat(" ", cellWidth-1) + "·"))
			} else {
				style := theme.TileStyle(tile.Value)
				if tile.New {
					style = style.Inherit(theme.NewTile)
				}
				if tile.Merged {
					style = style.Inherit(theme.MergedTile)
				}
				sb.WriteString(style.Render(padValue(tile.Value)))
			}
			sb.WriteString(theme.EmptyCell.Render("│"))
		}
		sb.WriteByte('\n')
		if r < game.BoardSize-1 {
			sb.WriteString(theme.EmptyCell.Render(mid))
			sb.WriteByte('\n')
		}
	}

	sb.WriteString(theme.EmptyCell.Render(bottom))
	return sb.String()
}

// padValue centers a tile value inside a cell.
func padValue(value int) string {
	s := strconv.Itoa(value)
	if len(s) >= cellWidth {
		return s[:cellWidth]
	}
	left := (cellWidth - len(s)) / 2
	right := cellWidth - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// renderHUD draws the title and the score line above the board.
func (m Model) renderHUD() string {
	theme := m.theme

	title := theme.Title.Render("2048")
	score := theme.Label.Render("Score ") + theme.Value.Render(strconv.Itoa(m.session.Score()))
	best := theme.Label.Render("Best ") + theme.Value.Render(strconv.Itoa(m.session.Best()))

	parts := []string{title, score, best}
	if m.muted {
		parts = append(parts, theme.Muted.Render("[muted]"))
	}
	if m.session.IsKeepPlaying() {
		parts = append(parts, theme.Muted.Render("endless"))
	}

	return strings.Join(parts, theme.Muted.Render("  │  "))
}

// renderOverlay draws the win or game-over banner, or an empty string.
func (m Model) renderOverlay() string {
	theme := m.theme

	var title, hint string
	switch {
	case m.session.Won():
		title = theme.WinTitle.Render("YOU WIN!")
		hint = "c: keep playing  n: new game"
	case m.session.GameOver():
		title = theme.GameOverTitle.Render("GAME OVER")
		hint = fmt.Sprintf("max tile %d  │  u: undo  n: new game", m.session.MaxTile())
	default:
		return ""
	}

	box := lipgloss.JoinVertical(lipgloss.Center,
		title,
		theme.OverlayText.Render(hint),
	)
	return theme.OverlayBorder.
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Render(box)
}

// renderGame assembles the full game screen.
func (m Model) renderGame() string {
	if m.width > 0 && m.height > 0 && (m.width < MinWidth || m.height < MinHeight) {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nneed at least %dx%d",
			m.width, m.height, MinWidth, MinHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.theme.Muted.Render(msg))
	}

	sections := []string{
		m.renderHUD(),
		renderBoard(m.session.Tiles(), m.theme),
	}

	if overlay := m.renderOverlay(); overlay != "" {
		sections = append(sections, overlay)
	}

	if m.cfg.UI.ShowHints {
		sections = append(sections, m.help.View(m.keys))
	}

	view := lipgloss.JoinVertical(lipgloss.Center, sections...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}
