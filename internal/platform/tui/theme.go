package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all configurable visual styles for the game screen.
type Theme struct {
	// Tile styles keyed by value. Values above the highest key reuse the
	// highest style.
	Tiles     map[int]lipgloss.Style
	EmptyCell lipgloss.Style

	// Flag accents layered on top of the tile style.
	NewTile    lipgloss.Style
	MergedTile lipgloss.Style

	// HUD styles
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Controls lipgloss.Style

	// Overlay styles
	OverlayBorder  lipgloss.Style
	OverlayText    lipgloss.Style
	WinTitle       lipgloss.Style
	GameOverTitle  lipgloss.Style
	ScoreboardHead lipgloss.Style
}

// maxThemedTile is the largest value with its own style.
const maxThemedTile = 4096

// ClassicTheme returns the warm orange palette of the original game.
func ClassicTheme() Theme {
	t := baseTheme()
	t.Tiles = map[int]lipgloss.Style{
		2:    tileStyle("252"),
		4:    tileStyle("230"),
		8:    tileStyle("216"),
		16:   tileStyle("209"),
		32:   tileStyle("203"),
		64:   tileStyle("196"),
		128:  tileStyle("222"),
		256:  tileStyle("221"),
		512:  tileStyle("220"),
		1024: tileStyle("214"),
		2048: tileStyle("208"),
		4096: tileStyle("199"),
	}
	return t
}

// MonoTheme returns a grayscale palette for limited terminals.
func MonoTheme() Theme {
	t := baseTheme()
	t.Tiles = map[int]lipgloss.Style{
		2:    tileStyle("250"),
		4:    tileStyle("251"),
		8:    tileStyle("252"),
		16:   tileStyle("253"),
		32:   tileStyle("254"),
		64:   tileStyle("255"),
		128:  tileStyle("255").Bold(true),
		256:  tileStyle("255").Bold(true),
		512:  tileStyle("255").Bold(true),
		1024: tileStyle("255").Bold(true),
		2048: tileStyle("255").Bold(true).Underline(true),
		4096: tileStyle("255").Bold(true).Underline(true),
	}
	return t
}

// ThemeByName looks up a theme by its config name. Unknown names fall
// back to the classic theme.
func ThemeByName(name string) Theme {
	switch name {
	case "mono":
		return MonoTheme()
	default:
		return ClassicTheme()
	}
}

func baseTheme() Theme {
	return Theme{
		EmptyCell: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		NewTile:    lipgloss.NewStyle().Bold(true),
		MergedTile: lipgloss.NewStyle().Bold(true).Italic(true),

		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		OverlayBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		OverlayText:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		WinTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		GameOverTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		ScoreboardHead: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	}
}

func tileStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// TileStyle returns the style for a tile value.
func (t Theme) TileStyle(value int) lipgloss.Style {
	if style, ok := t.Tiles[value]; ok {
		return style
	}
	if value > maxThemedTile {
		return t.Tiles[maxThemedTile]
	}
	return t.EmptyCell
}
