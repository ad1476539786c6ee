package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jsilverman092/usau-rankings/internal/domain"
)

var requiredColumns = []string{"date", "team_a", "team_b", "score_a", "score_b"}

// GameStore reads game results from flat CSV files. This is the only
// persistence the system has; there is no database behind it.
type GameStore struct{}

func NewGameStore() *GameStore {
	return &GameStore{}
}

// LoadGames parses a CSV with header date,team_a,team_b,score_a,score_b.
// Extra columns are ignored; missing required columns or malformed rows
// are errors naming the offending column or line.
func (s *GameStore) LoadGames(path string) ([]domain.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open games file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("input CSV missing required columns: %s", strings.Join(missing, ", "))
	}

	var games []domain.Game
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := time.Parse("2006-01-02", record[index["date"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q", line, record[index["date"]])
		}
		scoreA, err := strconv.Atoi(record[index["score_a"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score_a %q", line, record[index["score_a"]])
		}
		scoreB, err := strconv.Atoi(record[index["score_b"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score_b %q", line, record[index["score_b"]])
		}

		games = append(games, domain.Game{
			Date:   date,
			TeamA:  record[index["team_a"]],
			TeamB:  record[index["team_b"]],
			ScoreA: scoreA,
			ScoreB: scoreB,
		})
	}
	return games, nil
}
