package refresh

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsilverman092/usau-rankings/internal/domain"
	"github.com/jsilverman092/usau-rankings/internal/service/ladder"
	"github.com/jsilverman092/usau-rankings/internal/service/rating"
)

var (
	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usau_rankings_refreshes_total",
		Help: "Completed ladder refreshes, by outcome.",
	}, []string{"status"})
	teamsRanked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "usau_rankings_teams",
		Help: "Teams in the current ladder snapshot.",
	})
	solverIterations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "usau_rankings_solver_iterations",
		Help: "Iterations the last solve took to settle.",
	})
	lastRefreshTime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "usau_rankings_last_refresh_timestamp_seconds",
		Help: "Unix time of the last successful refresh.",
	})
)

// GamesSource supplies the full season's games. Every refresh re-reads
// the complete list and recomputes from scratch; nothing is incremental.
type GamesSource interface {
	Games(ctx context.Context) ([]domain.Game, error)
}

// Worker periodically rebuilds the ladder from the games source.
type Worker struct {
	Source      GamesSource
	Solver      *rating.Solver
	Ladder      *ladder.Ladder
	SeasonStart time.Time
	SeasonEnd   time.Time
	Interval    time.Duration
}

func NewWorker(source GamesSource, solver *rating.Solver, l *ladder.Ladder, seasonStart, seasonEnd time.Time, interval time.Duration) *Worker {
	return &Worker{
		Source:      source,
		Solver:      solver,
		Ladder:      l,
		SeasonStart: seasonStart,
		SeasonEnd:   seasonEnd,
		Interval:    interval,
	}
}

// Start runs one refresh immediately, then initiates the background ticker.
func (w *Worker) Start() {
	go func() {
		if err := w.Refresh(context.Background()); err != nil {
			log.Printf("[REFRESH] Initial refresh failed: %v", err)
		}
	}()

	ticker := time.NewTicker(w.Interval)
	go func() {
		for range ticker.C {
			if err := w.Refresh(context.Background()); err != nil {
				log.Printf("[REFRESH] Scheduled refresh failed: %v", err)
			}
		}
	}()
	log.Printf("[REFRESH] Background worker started (every %s)", w.Interval)
}

// Refresh re-reads the full game list, solves, and swaps in the new
// snapshot.
func (w *Worker) Refresh(ctx context.Context) error {
	started := time.Now()

	games, err := w.Source.Games(ctx)
	if err != nil {
		refreshesTotal.WithLabelValues("error").Inc()
		return err
	}

	result, err := w.Solver.Solve(games, w.SeasonStart, w.SeasonEnd)
	if err != nil {
		refreshesTotal.WithLabelValues("error").Inc()
		return err
	}

	snapshot := ladder.BuildSnapshot(result, rating.GameCounts(games))
	w.Ladder.Replace(snapshot)

	refreshesTotal.WithLabelValues("ok").Inc()
	teamsRanked.Set(float64(len(snapshot.Entries)))
	solverIterations.Set(float64(result.Iterations))
	lastRefreshTime.Set(float64(snapshot.ComputedAt.Unix()))

	log.Printf("[REFRESH] Ranked %d teams from %d games in %s (iterations=%d converged=%v)",
		len(snapshot.Entries), len(games), time.Since(started).Round(time.Millisecond), result.Iterations, result.Converged)
	return nil
}
