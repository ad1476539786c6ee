package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// RatingStore writes solved ratings to a flat CSV file.
type RatingStore struct{}

func NewRatingStore() *RatingStore {
	return &RatingStore{}
}

// SaveRatings writes a team,rating,games_count CSV, one row per team in
// name order. Teams absent from counts are written with a zero count.
func (s *RatingStore) SaveRatings(path string, ratings map[string]float64, counts map[string]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"team", "rating", "games_count"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	teams := make([]string, 0, len(ratings))
	for team := range ratings {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	for _, team := range teams {
		row := []string{
			team,
			fmt.Sprintf("%.6f", ratings[team]),
			strconv.Itoa(counts[team]),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", team, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
