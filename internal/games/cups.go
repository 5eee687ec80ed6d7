package games

import (
	"errors"
	"math/rand"
)

var (
	ErrNoRound = errors.New("no round in progress")
	ErrBadCup  = errors.New("cup out of range")
)

// CupCount is the number of cups on the table
const CupCount = 3

// ThreeCups is the shell-game: a ball is hidden under one of three cups
// and the player guesses where it ended up. Win/attempt stats persist for
// the life of the game object.
type ThreeCups struct {
	ballPosition int
	RoundActive  bool
	Wins         int
	Attempts     int
}

// NewThreeCups creates a game with zeroed stats
func NewThreeCups() *ThreeCups {
	return &ThreeCups{ballPosition: -1}
}

// Shuffle hides the ball under a random cup and opens a round
func (g *ThreeCups) Shuffle() {
	g.ballPosition = rand.Intn(CupCount)
	g.RoundActive = true
}

// Guess resolves the round: reports whether the chosen cup hides the
// ball and where the ball actually was
func (g *ThreeCups) Guess(cup int) (win bool, ball int, err error) {
	if !g.RoundActive {
		return false, 0, ErrNoRound
	}
	if cup < 0 || cup >= CupCount {
		return false, 0, ErrBadCup
	}

	g.RoundActive = false
	g.Attempts++

	win = cup == g.ballPosition
	if win {
		g.Wins++
	}
	return win, g.ballPosition, nil
}

// ResetStats zeroes the win/attempt counters
func (g *ThreeCups) ResetStats() {
	g.Wins = 0
	g.Attempts = 0
	g.RoundActive = false
	g.ballPosition = -1
}
