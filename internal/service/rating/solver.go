package rating

import (
	"fmt"
	"math"
	"time"

	"github.com/jsilverman092/usau-rankings/internal/domain"
)

// A game only stops counting when the winner already out-rates the
// loser by more than this gap AND the score itself was lopsided.
const blowoutRatingGap = 600.0

// Options tunes the iterative solve. Zero values fall back to the
// published defaults via DefaultOptions.
type Options struct {
	ConvergenceThreshold   float64
	MaxIters               int
	BlowoutMinOtherResults int
}

func DefaultOptions() Options {
	return Options{
		ConvergenceThreshold:   0.01,
		MaxIters:               5000,
		BlowoutMinOtherResults: 5,
	}
}

// Result is the final ratings snapshot. Converged reports whether the
// solve settled below the threshold before hitting MaxIters; the ratings
// are returned best-effort either way.
type Result struct {
	Ratings    map[string]float64
	Converged  bool
	Iterations int
}

type Solver struct {
	opts Options
}

func NewSolver(opts Options) *Solver {
	return &Solver{opts: opts}
}

// ratedGame carries the per-game quantities that do not depend on the
// current ratings, computed once up front.
type ratedGame struct {
	winner    string
	loser     string
	value     float64
	weight    float64
	isBlowout bool
}

// Solve iterates all team ratings to a fixed point. Every iteration
// rebuilds the ignored-game set and every team's contribution list from
// the previous iteration's frozen snapshot, then replaces the snapshot
// wholesale.
func (s *Solver) Solve(games []domain.Game, seasonStart, seasonEnd time.Time) (*Result, error) {
	if s.opts.MaxIters < 1 {
		return nil, fmt.Errorf("%w: max_iters=%d", domain.ErrInvalidMaxIters, s.opts.MaxIters)
	}
	if seasonEnd.Before(seasonStart) {
		return nil, fmt.Errorf("%w: start=%s end=%s", domain.ErrInvalidSeason,
			seasonStart.Format("2006-01-02"), seasonEnd.Format("2006-01-02"))
	}

	rated := make([]ratedGame, len(games))
	ratings := make(map[string]float64)
	for i, g := range games {
		winner, loser, winnerScore, loserScore, err := g.WinnerLoser()
		if err != nil {
			return nil, err
		}

		value, err := domain.GameRatingValue(winnerScore, loserScore)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.ScoreLine(), err)
		}
		scoreWeight, err := domain.ScoreWeight(winnerScore, loserScore)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.ScoreLine(), err)
		}
		dateWeight, err := domain.DateWeight(g.Date, seasonStart, seasonEnd)
		if err != nil {
			return nil, err
		}

		rated[i] = ratedGame{
			winner:    winner,
			loser:     loser,
			value:     value,
			weight:    scoreWeight * dateWeight,
			isBlowout: winnerScore > 2*loserScore+1,
		}
		ratings[winner] = domain.DefaultRating
		ratings[loser] = domain.DefaultRating
	}

	result := &Result{Ratings: ratings}
	for iter := 0; iter < s.opts.MaxIters; iter++ {
		result.Iterations = iter + 1

		ignored := s.ignoredGames(rated, ratings)

		contributions := make(map[string][]domain.TeamGameRating, len(ratings))
		for i, rg := range rated {
			if ignored[i] {
				continue
			}
			winnerGR := ratings[rg.loser] + rg.value
			loserGR := ratings[rg.winner] - rg.value
			contributions[rg.winner] = append(contributions[rg.winner], domain.TeamGameRating{GameRating: winnerGR, Weight: rg.weight})
			contributions[rg.loser] = append(contributions[rg.loser], domain.TeamGameRating{GameRating: loserGR, Weight: rg.weight})
		}

		next := make(map[string]float64, len(ratings))
		maxChange := 0.0
		for team, old := range ratings {
			updated := domain.WeightedTeamRating(contributions[team])
			next[team] = updated
			if change := math.Abs(updated - old); change > maxChange {
				maxChange = change
			}
		}

		ratings = next
		result.Ratings = ratings
		if maxChange < s.opts.ConvergenceThreshold {
			result.Converged = true
			break
		}
	}
	return result, nil
}

// ignoredGames runs the blowout exclusion to quiescence against one
// frozen ratings snapshot. Marking a game ignored shrinks another
// candidate's "other results" count, so the scan repeats until a full
// pass marks nothing new.
func (s *Solver) ignoredGames(rated []ratedGame, ratings map[string]float64) map[int]bool {
	ignored := make(map[int]bool)
	for {
		changed := false
		for i, rg := range rated {
			if ignored[i] || !rg.isBlowout {
				continue
			}
			if ratings[rg.winner]-ratings[rg.loser] <= blowoutRatingGap {
				continue
			}
			otherResults := 0
			for j, other := range rated {
				if j == i || ignored[j] {
					continue
				}
				if other.winner == rg.winner || other.loser == rg.winner {
					otherResults++
				}
			}
			if otherResults >= s.opts.BlowoutMinOtherResults {
				ignored[i] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return ignored
}

// GameCounts tallies raw appearances per team, independent of whether
// the solver ended up counting a game. Used by reporting.
func GameCounts(games []domain.Game) map[string]int {
	counts := make(map[string]int)
	for _, g := range games {
		counts[g.TeamA]++
		counts[g.TeamB]++
	}
	return counts
}
