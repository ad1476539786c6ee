package ladder

import (
	"sort"
	"sync"
	"time"

	"github.com/jsilverman092/usau-rankings/internal/service/rating"
	"github.com/jsilverman092/usau-rankings/pkg/uid"
)

// Entry is one team's row in the rankings ladder.
type Entry struct {
	Rank   int     `json:"rank"`
	Team   string  `json:"team"`
	Rating float64 `json:"rating"`
	Games  int     `json:"games"`
}

// Snapshot is one fully computed ladder. Snapshots are immutable once
// built; a new solve produces a new snapshot.
type Snapshot struct {
	ID         string
	ComputedAt time.Time
	Converged  bool
	Iterations int
	Entries    []Entry

	byTeam map[string]Entry
}

// BuildSnapshot ranks the solver result by rating descending, breaking
// ties by team name so the order is stable.
func BuildSnapshot(result *rating.Result, counts map[string]int) *Snapshot {
	entries := make([]Entry, 0, len(result.Ratings))
	for team, r := range result.Ratings {
		entries = append(entries, Entry{Team: team, Rating: r, Games: counts[team]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return entries[i].Team < entries[j].Team
	})

	byTeam := make(map[string]Entry, len(entries))
	for i := range entries {
		entries[i].Rank = i + 1
		byTeam[entries[i].Team] = entries[i]
	}

	return &Snapshot{
		ID:         uid.GenerateSnapshotID(),
		ComputedAt: time.Now().UTC(),
		Converged:  result.Converged,
		Iterations: result.Iterations,
		Entries:    entries,
		byTeam:     byTeam,
	}
}

// Team looks up one team's entry.
func (s *Snapshot) Team(name string) (Entry, bool) {
	entry, ok := s.byTeam[name]
	return entry, ok
}

// Ladder holds the current snapshot behind a RWMutex. The snapshot is
// replaced wholesale, never mutated, so readers always see a consistent
// ladder.
type Ladder struct {
	mu      sync.RWMutex
	current *Snapshot
}

func New() *Ladder {
	return &Ladder{}
}

func (l *Ladder) Replace(s *Snapshot) {
	l.mu.Lock()
	l.current = s
	l.mu.Unlock()
}

// Current returns the latest snapshot, or false when nothing has been
// computed yet.
func (l *Ladder) Current() (*Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current == nil {
		return nil, false
	}
	return l.current, true
}
