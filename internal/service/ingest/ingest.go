package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/jsilverman092/usau-rankings/internal/domain"
)

const (
	DefaultAPIGamesURL    = "https://play.usaultimate.org/api/v1/games/"
	DefaultHTMLResultsURL = "https://play.usaultimate.org/events/results/"
)

// IngestedGame is a parsed game plus the source URL when the feed
// provides one.
type IngestedGame struct {
	Game      domain.Game
	SourceURL string
}

// Client fetches season results from the USAU endpoints. The JSON API is
// tried first; when it yields nothing, the public HTML results page is
// scraped as a fallback.
type Client struct {
	HTTPClient *http.Client
	APIURL     string
	HTMLURL    string
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		APIURL:     DefaultAPIGamesURL,
		HTMLURL:    DefaultHTMLResultsURL,
	}
}

// FetchSeason returns all parsable games for a season and division,
// sorted by date. Rows with missing fields or tied scores are skipped
// rather than failing the whole fetch.
func (c *Client) FetchSeason(ctx context.Context, seasonYear int, division string) ([]IngestedGame, error) {
	body, err := c.get(ctx, c.APIURL, seasonYear, division)
	if err != nil {
		return nil, err
	}

	var payload any
	games := []IngestedGame{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, item := range extractItems(payload) {
			if g, ok := parseItem(item); ok {
				games = append(games, g)
			}
		}
	}
	if len(games) > 0 {
		sortByDate(games)
		return games, nil
	}

	body, err = c.get(ctx, c.HTMLURL, seasonYear, division)
	if err != nil {
		return nil, err
	}
	games = parseResultsHTML(body)
	sortByDate(games)
	return games, nil
}

// FetchGames is FetchSeason without the source metadata, for callers
// that only feed the solver.
func (c *Client) FetchGames(ctx context.Context, seasonYear int, division string) ([]domain.Game, error) {
	ingested, err := c.FetchSeason(ctx, seasonYear, division)
	if err != nil {
		return nil, err
	}
	games := make([]domain.Game, len(ingested))
	for i, ig := range ingested {
		games[i] = ig.Game
	}
	return games, nil
}

func (c *Client) get(ctx context.Context, rawURL string, seasonYear int, division string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ingest URL %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set("season", strconv.Itoa(seasonYear))
	q.Set("division", division)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u.Host)
	}
	return io.ReadAll(resp.Body)
}

// extractItems digs the game list out of the payload, tolerating both a
// bare array and the handful of wrapper keys the API has used.
func extractItems(payload any) []map[string]any {
	switch v := payload.(type) {
	case []any:
		return onlyObjects(v)
	case map[string]any:
		for _, key := range []string{"results", "games", "data", "items"} {
			if list, ok := v[key].([]any); ok {
				return onlyObjects(list)
			}
		}
	}
	return nil
}

func onlyObjects(list []any) []map[string]any {
	items := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if obj, ok := entry.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items
}

func parseItem(item map[string]any) (IngestedGame, bool) {
	gameDate, ok := parseDate(firstOf(item, "date", "game_date", "start_date"))
	if !ok {
		return IngestedGame{}, false
	}
	teamA := teamName(firstOf(item, "team_a", "team1", "home_team"))
	teamB := teamName(firstOf(item, "team_b", "team2", "away_team"))
	scoreA, okA := parseScore(firstOf(item, "score_a", "team_a_score", "score1"))
	scoreB, okB := parseScore(firstOf(item, "score_b", "team_b_score", "score2"))

	if teamA == "" || teamB == "" || !okA || !okB {
		return IngestedGame{}, false
	}
	if scoreA == scoreB {
		return IngestedGame{}, false
	}

	sourceURL := ""
	if s, ok := firstOf(item, "source_url", "url").(string); ok {
		sourceURL = strings.TrimSpace(s)
	}

	return IngestedGame{
		Game: domain.Game{
			Date:   gameDate,
			TeamA:  teamA,
			TeamB:  teamB,
			ScoreA: scoreA,
			ScoreB: scoreB,
		},
		SourceURL: sourceURL,
	}, true
}

func firstOf(item map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := item[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func teamName(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, key := range []string{"name", "team_name", "display_name"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func parseDate(raw any) (time.Time, bool) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "T"); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseScore accepts JSON numbers and digit strings. Booleans and
// fractional numbers are rejected, not coerced.
func parseScore(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case string:
		s := strings.TrimSpace(v)
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// parseResultsHTML pulls games out of the results page table. Expected
// cell order per row: date, team A, score A, score B, team B.
func parseResultsHTML(body []byte) []IngestedGame {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	games := []IngestedGame{}
	for _, row := range tableRows(doc) {
		cells := cellTexts(row)
		if len(cells) < 5 {
			continue
		}
		item := map[string]any{
			"date":    cells[0],
			"team_a":  cells[1],
			"score_a": cells[2],
			"score_b": cells[3],
			"team_b":  cells[4],
		}
		if g, ok := parseItem(item); ok {
			games = append(games, g)
		}
	}
	return games
}

// tableRows collects every <tr> under a <tbody>.
func tableRows(n *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node, bool)
	walk = func(node *html.Node, inBody bool) {
		if node.Type == html.ElementNode {
			switch node.Data {
			case "tbody":
				inBody = true
			case "tr":
				if inBody {
					rows = append(rows, node)
					return
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child, inBody)
		}
	}
	walk(n, false)
	return rows
}

func cellTexts(row *html.Node) []string {
	var cells []string
	for child := row.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == "td" {
			cells = append(cells, strings.TrimSpace(nodeText(child)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(nodeText(child))
	}
	return b.String()
}

func sortByDate(games []IngestedGame) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Game.Date.Before(games[j].Game.Date)
	})
}
