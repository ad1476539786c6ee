package domain

import (
	"errors"
	"testing"
	"time"
)

func TestWinnerLoser(t *testing.T) {
	day := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		game       Game
		wantWinner string
		wantLoser  string
		wantWS     int
		wantLS     int
	}{
		{"team A wins", Game{day, "Fury", "Riot", 15, 11}, "Fury", "Riot", 15, 11},
		{"team B wins", Game{day, "Fury", "Riot", 9, 13}, "Riot", "Fury", 13, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, loser, ws, ls, err := tt.game.WinnerLoser()
			if err != nil {
				t.Fatalf("WinnerLoser returned error: %v", err)
			}
			if winner != tt.wantWinner || loser != tt.wantLoser || ws != tt.wantWS || ls != tt.wantLS {
				t.Errorf("WinnerLoser = (%s, %s, %d, %d), want (%s, %s, %d, %d)",
					winner, loser, ws, ls, tt.wantWinner, tt.wantLoser, tt.wantWS, tt.wantLS)
			}
		})
	}
}

func TestWinnerLoser_TieIsError(t *testing.T) {
	game := Game{time.Now(), "Fury", "Riot", 10, 10}
	_, _, _, _, err := game.WinnerLoser()
	if !errors.Is(err, ErrTiedScores) {
		t.Errorf("WinnerLoser on tie error = %v, want %v", err, ErrTiedScores)
	}
}

func TestScoreLine(t *testing.T) {
	game := Game{time.Now(), "Fury", "Riot", 15, 11}
	if got, want := game.ScoreLine(), "Fury 15 - 11 Riot"; got != want {
		t.Errorf("ScoreLine = %q, want %q", got, want)
	}
}
