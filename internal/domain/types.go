package domain

import (
	"fmt"
	"time"
)

// DefaultRating is the rating every team starts the season with, and the
// rating a team falls back to when it has no counted games.
const DefaultRating = 1000.0

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrNegativeScore   Error = "score must be >= 0"
	ErrWinnerNotAhead  Error = "winner_score must be > loser_score"
	ErrWinnerScoreLow  Error = "winner_score must be >= 2"
	ErrTiedScores      Error = "tied scores cannot be rated"
	ErrInvalidSeason   Error = "season_end must be >= season_start"
	ErrInvalidMaxIters Error = "max_iters must be >= 1"
)

// Game is one final result between two teams. Team names are opaque,
// case-sensitive identifiers. Games are never mutated after construction.
type Game struct {
	Date   time.Time
	TeamA  string
	TeamB  string
	ScoreA int
	ScoreB int
}

// WinnerLoser resolves which side won. A tied game is a contract
// violation for rating purposes and returns ErrTiedScores.
func (g Game) WinnerLoser() (winner, loser string, winnerScore, loserScore int, err error) {
	if g.ScoreA == g.ScoreB {
		return "", "", 0, 0, fmt.Errorf("%w: %s %d - %d %s", ErrTiedScores, g.TeamA, g.ScoreA, g.ScoreB, g.TeamB)
	}
	if g.ScoreA > g.ScoreB {
		return g.TeamA, g.TeamB, g.ScoreA, g.ScoreB, nil
	}
	return g.TeamB, g.TeamA, g.ScoreB, g.ScoreA, nil
}

// ScoreLine formats the result for logs and error messages.
func (g Game) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s", g.TeamA, g.ScoreA, g.ScoreB, g.TeamB)
}

// TeamGameRating is one game's contribution to a team's rating within a
// single solver iteration.
type TeamGameRating struct {
	GameRating float64
	Weight     float64
}
