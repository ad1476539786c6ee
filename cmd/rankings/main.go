// Command rankings solves season ratings from a CSV of game results and
// writes a team,rating,games_count CSV.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jsilverman092/usau-rankings/internal/repository/csvfile"
	"github.com/jsilverman092/usau-rankings/internal/service/rating"
)

func main() {
	var (
		inputPath   = flag.String("input", "", "input CSV of games (date,team_a,team_b,score_a,score_b)")
		outPath     = flag.String("out", "", "output CSV for ratings")
		seasonStart = flag.String("season-start", "", "season start date (YYYY-MM-DD)")
		seasonEnd   = flag.String("season-end", "", "season end date (YYYY-MM-DD)")
		threshold   = flag.Float64("threshold", 0.01, "convergence threshold")
		maxIters    = flag.Int("max-iters", 5000, "iteration cap")
		blowoutMin  = flag.Int("blowout-min-other-results", 5, "other results required before a blowout is ignored")
	)
	flag.Parse()

	if *inputPath == "" || *outPath == "" || *seasonStart == "" || *seasonEnd == "" {
		fmt.Fprintln(os.Stderr, "usage: rankings -input games.csv -season-start YYYY-MM-DD -season-end YYYY-MM-DD -out ratings.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	start, err := time.Parse("2006-01-02", *seasonStart)
	if err != nil {
		log.Fatalf("Invalid -season-start: %v", err)
	}
	end, err := time.Parse("2006-01-02", *seasonEnd)
	if err != nil {
		log.Fatalf("Invalid -season-end: %v", err)
	}

	games, err := csvfile.NewGameStore().LoadGames(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load games: %v", err)
	}

	solver := rating.NewSolver(rating.Options{
		ConvergenceThreshold:   *threshold,
		MaxIters:               *maxIters,
		BlowoutMinOtherResults: *blowoutMin,
	})
	result, err := solver.Solve(games, start, end)
	if err != nil {
		log.Fatalf("Solve failed: %v", err)
	}

	counts := rating.GameCounts(games)
	if err := csvfile.NewRatingStore().SaveRatings(*outPath, result.Ratings, counts); err != nil {
		log.Fatalf("Failed to write ratings: %v", err)
	}

	log.Printf("Wrote %d team ratings to %s (iterations=%d converged=%v)",
		len(result.Ratings), *outPath, result.Iterations, result.Converged)
}
