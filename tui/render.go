package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/gridsnake/game"
)

// Styles controls how each kind of cell and the status lines are drawn.
// Every cell is two columns wide so the board looks square.
type Styles struct {
	Empty lipgloss.Style
	Body  lipgloss.Style
	Head  lipgloss.Style
	Food  lipgloss.Style

	Board    lipgloss.Style
	Title    lipgloss.Style
	Score    lipgloss.Style
	GameOver lipgloss.Style
	Help     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Empty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Head:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Food:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		Board:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		Score:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		GameOver: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

const (
	emptyCell = " ."
	bodyCell  = " o"
	headCell  = " @"
	foodCell  = " *"
)

// Board draws only the grid, one line per row, without styling.
func Board(s game.Snapshot) []string {
	grid := make([][]string, game.BoardSize)
	for y := range grid {
		grid[y] = make([]string, game.BoardSize)
		for x := range grid[y] {
			grid[y][x] = emptyCell
		}
	}
	if s.Food != game.NoFood {
		grid[s.Food.Y][s.Food.X] = foodCell
	}
	for i, p := range s.Snake {
		if i == 0 {
			grid[p.Y][p.X] = headCell
		} else {
			grid[p.Y][p.X] = bodyCell
		}
	}

	lines := make([]string, game.BoardSize)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return lines
}

// Render draws the full screen: title, score, board and, once the game has
// ended, the restart notice.
func Render(s game.Snapshot, st Styles) string {
	var board strings.Builder
	for y, line := range Board(s) {
		if y > 0 {
			board.WriteByte('\n')
		}
		for i := 0; i+2 <= len(line); i += 2 {
			board.WriteString(cellStyle(line[i:i+2], st).Render(line[i : i+2]))
		}
	}

	parts := []string{
		st.Title.Render("Snake"),
		st.Score.Render(fmt.Sprintf("Score: %d", s.Score)),
		st.Board.Render(board.String()),
	}
	if s.GameOver {
		parts = append(parts, st.GameOver.Render("Game Over!"), st.Help.Render("r: restart  q: quit"))
	} else {
		parts = append(parts, st.Help.Render("arrows: steer  q: quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func cellStyle(cell string, st Styles) lipgloss.Style {
	switch cell {
	case headCell:
		return st.Head
	case bodyCell:
		return st.Body
	case foodCell:
		return st.Food
	}
	return st.Empty
}
