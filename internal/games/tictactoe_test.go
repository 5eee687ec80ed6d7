package games

import (
	"errors"
	"testing"
)

func playMoves(t *testing.T, g *TicTacToe, cells ...int) {
	t.Helper()
	for _, cell := range cells {
		if err := g.Move(cell); err != nil {
			t.Fatalf("Move(%d) error = %v", cell, err)
		}
	}
}

func TestNewGameStartsWithX(t *testing.T) {
	g := NewTicTacToe()
	if g.Turn != "X" {
		t.Errorf("Turn = %q, want X", g.Turn)
	}
	if g.Over {
		t.Error("new game already over")
	}
}

func TestTurnsAlternate(t *testing.T) {
	g := NewTicTacToe()
	playMoves(t, g, 0)
	if g.Turn != "O" {
		t.Errorf("Turn = %q after first move, want O", g.Turn)
	}
	playMoves(t, g, 4)
	if g.Turn != "X" {
		t.Errorf("Turn = %q after second move, want X", g.Turn)
	}
}

func TestRowWin(t *testing.T) {
	g := NewTicTacToe()
	// X: 0 1 2, O: 3 4
	playMoves(t, g, 0, 3, 1, 4, 2)

	if !g.Over {
		t.Fatal("game not over after a row win")
	}
	if g.Winner != "X" {
		t.Errorf("Winner = %q, want X", g.Winner)
	}
	if g.WinLine != [3]int{0, 1, 2} {
		t.Errorf("WinLine = %v, want [0 1 2]", g.WinLine)
	}
}

func TestDiagonalWinForO(t *testing.T) {
	g := NewTicTacToe()
	// X: 1 3 5, O: 0 4 8
	playMoves(t, g, 1, 0, 3, 4, 5, 8)

	if g.Winner != "O" {
		t.Errorf("Winner = %q, want O", g.Winner)
	}
}

func TestDraw(t *testing.T) {
	g := NewTicTacToe()
	// X O X / X O O / O X X ends with no line
	playMoves(t, g, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	if !g.Over {
		t.Fatal("game not over after a full board")
	}
	if g.Winner != "" {
		t.Errorf("Winner = %q, want none", g.Winner)
	}
	if !g.IsDraw() {
		t.Error("IsDraw() = false for a full winless board")
	}
}

func TestMoveErrors(t *testing.T) {
	g := NewTicTacToe()
	playMoves(t, g, 0)

	if err := g.Move(0); !errors.Is(err, ErrCellTaken) {
		t.Errorf("Move on taken cell = %v, want ErrCellTaken", err)
	}
	if err := g.Move(9); !errors.Is(err, ErrBadCell) {
		t.Errorf("Move(9) = %v, want ErrBadCell", err)
	}
	if err := g.Move(-1); !errors.Is(err, ErrBadCell) {
		t.Errorf("Move(-1) = %v, want ErrBadCell", err)
	}

	playMoves(t, g, 3, 1, 4, 2) // X wins the top row
	if err := g.Move(5); !errors.Is(err, ErrGameOver) {
		t.Errorf("Move after win = %v, want ErrGameOver", err)
	}
}

func TestReset(t *testing.T) {
	g := NewTicTacToe()
	playMoves(t, g, 0, 3, 1, 4, 2)
	g.Reset()

	if g.Over || g.Winner != "" || g.Turn != "X" {
		t.Error("Reset did not clear game state")
	}
	for i, cell := range g.Board {
		if cell != "" {
			t.Errorf("cell %d = %q after reset, want empty", i, cell)
		}
	}
}
