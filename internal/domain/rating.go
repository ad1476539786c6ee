package domain

import (
	"fmt"
	"math"
	"time"
)

// The published USAU formula maps a final score to a game value between
// 125 (one-point game) and 600 (blowout cap).
const (
	minGameValue  = 125.0
	gameValueSpan = 475.0
)

func validateScores(winnerScore, loserScore int) error {
	if winnerScore < 0 {
		return fmt.Errorf("%w: winner_score=%d", ErrNegativeScore, winnerScore)
	}
	if loserScore < 0 {
		return fmt.Errorf("%w: loser_score=%d", ErrNegativeScore, loserScore)
	}
	if winnerScore <= loserScore {
		return fmt.Errorf("%w: winner_score=%d loser_score=%d", ErrWinnerNotAhead, winnerScore, loserScore)
	}
	return nil
}

// GameRatingValue returns the rating value earned by the winning team.
//
// Uses the published formula from play.usaultimate.org:
//
//	r = loser_score / (winner_score - 1)
//	t = min(1.0, (1.0 - r) / 0.5)
//	value = 125 + 475 * sin(t * 0.4*pi) / sin(0.4*pi)
func GameRatingValue(winnerScore, loserScore int) (float64, error) {
	if err := validateScores(winnerScore, loserScore); err != nil {
		return 0, err
	}
	if winnerScore < 2 {
		return 0, fmt.Errorf("%w: winner_score=%d", ErrWinnerScoreLow, winnerScore)
	}

	r := float64(loserScore) / float64(winnerScore-1)
	t := math.Min(1.0, (1.0-r)/0.5)
	return minGameValue + gameValueSpan*math.Sin(t*0.4*math.Pi)/math.Sin(0.4*math.Pi), nil
}

// CalculateGameRating applies the score-based game value to the
// opponent's current rating:
//
//	winner_game_rating = loser_rating + value
//	loser_game_rating  = winner_rating - value
func CalculateGameRating(winnerRating, loserRating float64, winnerScore, loserScore int) (winnerGameRating, loserGameRating float64, err error) {
	value, err := GameRatingValue(winnerScore, loserScore)
	if err != nil {
		return 0, 0, err
	}
	return loserRating + value, winnerRating - value, nil
}

// ScoreWeight down-weights short, low-scoring games. Games to 13 or with
// 19+ total points always count in full.
func ScoreWeight(winnerScore, loserScore int) (float64, error) {
	if err := validateScores(winnerScore, loserScore); err != nil {
		return 0, err
	}
	if winnerScore >= 13 || winnerScore+loserScore >= 19 {
		return 1.0, nil
	}
	adjustedLoser := math.Max(float64(loserScore), float64(winnerScore-1)/2)
	return math.Min(1.0, math.Sqrt((float64(winnerScore)+adjustedLoser)/19)), nil
}

// DateWeight up-weights late-season games. The season is split into
// 7-day weeks starting at seasonStart; weight interpolates geometrically
// from 0.5 (first week) to 1.0 (last week). Games outside the season
// window are clamped to the nearest boundary week.
func DateWeight(gameDate, seasonStart, seasonEnd time.Time) (float64, error) {
	if seasonEnd.Before(seasonStart) {
		return 0, fmt.Errorf("%w: start=%s end=%s", ErrInvalidSeason,
			seasonStart.Format("2006-01-02"), seasonEnd.Format("2006-01-02"))
	}

	numWeeks := 1 + daysBetween(seasonStart, seasonEnd)/7
	weekIndex := daysBetween(seasonStart, gameDate) / 7
	if weekIndex < 0 {
		weekIndex = 0
	}
	if weekIndex > numWeeks-1 {
		weekIndex = numWeeks - 1
	}

	if numWeeks == 1 {
		return 0.5, nil
	}
	multiplier := math.Pow(1/0.5, 1/float64(numWeeks-1))
	weight := 0.5 * math.Pow(multiplier, float64(weekIndex))
	return math.Min(1.0, math.Max(0.5, weight)), nil
}

// WeightedTeamRating collapses one team's per-game contributions into a
// single rating. A team with zero total weight keeps the default rating.
func WeightedTeamRating(contributions []TeamGameRating) float64 {
	var sum, totalWeight float64
	for _, c := range contributions {
		sum += c.GameRating * c.Weight
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		return DefaultRating
	}
	return sum / totalWeight
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
