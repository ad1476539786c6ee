package refresh

import (
	"context"

	"github.com/jsilverman092/usau-rankings/internal/domain"
	"github.com/jsilverman092/usau-rankings/internal/repository/csvfile"
	"github.com/jsilverman092/usau-rankings/internal/service/ingest"
)

// RemoteSource pulls the season from the USAU endpoints.
type RemoteSource struct {
	Client     *ingest.Client
	SeasonYear int
	Division   string
}

func (s *RemoteSource) Games(ctx context.Context) ([]domain.Game, error) {
	return s.Client.FetchGames(ctx, s.SeasonYear, s.Division)
}

// FileSource reads the season from a local CSV, for offline runs.
type FileSource struct {
	Store *csvfile.GameStore
	Path  string
}

func (s *FileSource) Games(ctx context.Context) ([]domain.Game, error) {
	return s.Store.LoadGames(s.Path)
}
