package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsilverman092/usau-rankings/internal/service/ladder"
	"github.com/jsilverman092/usau-rankings/internal/service/rating"
)

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.calls++
	return f.err
}

func newTestRouter(l *ladder.Ladder, r Refresher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewRankingsHandler(l, r)
	router.GET("/api/rankings", h.GetRankings)
	router.GET("/api/teams/:team", h.GetTeam)
	router.POST("/api/refresh", h.PostRefresh)
	router.GET("/healthz", h.Healthz)
	return router
}

func populatedLadder() *ladder.Ladder {
	l := ladder.New()
	l.Replace(ladder.BuildSnapshot(&rating.Result{
		Ratings:   map[string]float64{"Fury": 1400, "Riot": 1100},
		Converged: true,
	}, map[string]int{"Fury": 3, "Riot": 2}))
	return l
}

func TestGetRankings(t *testing.T) {
	router := newTestRouter(populatedLadder(), &fakeRefresher{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rankings", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Converged bool           `json:"converged"`
		Rankings  []ladder.Entry `json:"rankings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Rankings) != 2 || body.Rankings[0].Team != "Fury" || body.Rankings[0].Rank != 1 {
		t.Errorf("unexpected rankings: %+v", body.Rankings)
	}
	if !body.Converged {
		t.Error("converged flag not surfaced")
	}
}

func TestGetRankings_LimitQuery(t *testing.T) {
	router := newTestRouter(populatedLadder(), &fakeRefresher{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rankings?limit=1", nil))

	var body struct {
		Rankings []ladder.Entry `json:"rankings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Rankings) != 1 {
		t.Errorf("limit=1 returned %d entries", len(body.Rankings))
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rankings?limit=zero", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", w.Code)
	}
}

func TestGetRankings_NotReady(t *testing.T) {
	router := newTestRouter(ladder.New(), &fakeRefresher{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rankings", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestGetTeam(t *testing.T) {
	router := newTestRouter(populatedLadder(), &fakeRefresher{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams/Fury", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var entry ladder.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Team != "Fury" || entry.Games != 3 {
		t.Errorf("unexpected entry: %+v", entry)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams/Unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown team status = %d, want 404", w.Code)
	}
}

func TestPostRefresh(t *testing.T) {
	refresher := &fakeRefresher{}
	router := newTestRouter(populatedLadder(), refresher)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if refresher.calls != 1 {
		t.Errorf("refresher called %d times, want 1", refresher.calls)
	}
}

func TestPostRefresh_Failure(t *testing.T) {
	refresher := &fakeRefresher{err: errors.New("upstream down")}
	router := newTestRouter(populatedLadder(), refresher)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(ladder.New(), &fakeRefresher{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Status        string `json:"status"`
		RankingsReady bool   `json:"rankings_ready"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.RankingsReady {
		t.Errorf("unexpected health body: %+v", body)
	}
}
