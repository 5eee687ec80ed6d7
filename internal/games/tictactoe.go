// Package games implements the entertainment-zone mini-games that have
// server-held state.
package games

import "errors"

var (
	ErrCellTaken = errors.New("cell already taken")
	ErrBadCell   = errors.New("cell out of range")
	ErrGameOver  = errors.New("game is over")
)

var winPatterns = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// TicTacToe is a two-player local game; players alternate on the same
// screen starting with X
type TicTacToe struct {
	Board   [9]string // "", "X" or "O"
	Turn    string
	Over    bool
	Winner  string // "X", "O" or "" for a draw / unfinished game
	WinLine [3]int
}

// NewTicTacToe starts a fresh game with X to move
func NewTicTacToe() *TicTacToe {
	return &TicTacToe{Turn: "X", WinLine: [3]int{-1, -1, -1}}
}

// Move places the current player's mark on a cell (0-8)
func (g *TicTacToe) Move(cell int) error {
	if g.Over {
		return ErrGameOver
	}
	if cell < 0 || cell >= len(g.Board) {
		return ErrBadCell
	}
	if g.Board[cell] != "" {
		return ErrCellTaken
	}

	g.Board[cell] = g.Turn

	if line, won := g.checkWin(); won {
		g.Over = true
		g.Winner = g.Turn
		g.WinLine = line
		return nil
	}

	if g.full() {
		g.Over = true
		return nil
	}

	if g.Turn == "X" {
		g.Turn = "O"
	} else {
		g.Turn = "X"
	}
	return nil
}

// Reset clears the board back to a fresh game
func (g *TicTacToe) Reset() {
	*g = *NewTicTacToe()
}

// IsDraw reports whether the game ended with a full board and no winner
func (g *TicTacToe) IsDraw() bool {
	return g.Over && g.Winner == ""
}

func (g *TicTacToe) checkWin() ([3]int, bool) {
	for _, p := range winPatterns {
		if g.Board[p[0]] != "" && g.Board[p[0]] == g.Board[p[1]] && g.Board[p[1]] == g.Board[p[2]] {
			return p, true
		}
	}
	return [3]int{-1, -1, -1}, false
}

func (g *TicTacToe) full() bool {
	for _, cell := range g.Board {
		if cell == "" {
			return false
		}
	}
	return true
}
