package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jsilverman092/usau-rankings/internal/domain"
	"github.com/jsilverman092/usau-rankings/internal/service/ladder"
	"github.com/jsilverman092/usau-rankings/internal/service/rating"
)

type fakeSource struct {
	games []domain.Game
	err   error
}

func (f *fakeSource) Games(ctx context.Context) ([]domain.Game, error) {
	return f.games, f.err
}

func seasonDay(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func newTestWorker(source GamesSource) (*Worker, *ladder.Ladder) {
	l := ladder.New()
	w := NewWorker(source, rating.NewSolver(rating.DefaultOptions()), l,
		seasonDay(1), seasonDay(30), time.Hour)
	return w, l
}

func TestRefresh_BuildsLadder(t *testing.T) {
	source := &fakeSource{games: []domain.Game{
		{Date: seasonDay(1), TeamA: "Fury", TeamB: "Riot", ScoreA: 15, ScoreB: 10},
		{Date: seasonDay(2), TeamA: "Fury", TeamB: "Traffic", ScoreA: 15, ScoreB: 12},
	}}
	w, l := newTestWorker(source)

	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	snapshot, ok := l.Current()
	if !ok {
		t.Fatal("Refresh did not install a snapshot")
	}
	if len(snapshot.Entries) != 3 {
		t.Fatalf("snapshot has %d teams, want 3", len(snapshot.Entries))
	}
	if snapshot.Entries[0].Team != "Fury" {
		t.Errorf("top team = %s, want Fury", snapshot.Entries[0].Team)
	}
	if entry, _ := snapshot.Team("Fury"); entry.Games != 2 {
		t.Errorf("Fury games = %d, want 2", entry.Games)
	}
}

func TestRefresh_SourceErrorLeavesLadderUntouched(t *testing.T) {
	w, l := newTestWorker(&fakeSource{err: errors.New("fetch failed")})

	if err := w.Refresh(context.Background()); err == nil {
		t.Fatal("expected error from failing source")
	}
	if _, ok := l.Current(); ok {
		t.Error("failed refresh must not install a snapshot")
	}
}

func TestRefresh_SolverErrorPropagates(t *testing.T) {
	source := &fakeSource{games: []domain.Game{
		{Date: seasonDay(1), TeamA: "Fury", TeamB: "Riot", ScoreA: 10, ScoreB: 10},
	}}
	w, l := newTestWorker(source)

	err := w.Refresh(context.Background())
	if !errors.Is(err, domain.ErrTiedScores) {
		t.Fatalf("Refresh error = %v, want %v", err, domain.ErrTiedScores)
	}
	if _, ok := l.Current(); ok {
		t.Error("failed refresh must not install a snapshot")
	}
}
