package http

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsilverman092/usau-rankings/internal/service/ladder"
)

// Refresher triggers a full re-ingest and recompute.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type RankingsHandler struct {
	Ladder    *ladder.Ladder
	Refresher Refresher
}

func NewRankingsHandler(l *ladder.Ladder, r Refresher) *RankingsHandler {
	return &RankingsHandler{Ladder: l, Refresher: r}
}

// GetRankings returns the current ladder, best teams first.
func (h *RankingsHandler) GetRankings(c *gin.Context) {
	snapshot, ok := h.Ladder.Current()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rankings not computed yet"})
		return
	}

	entries := snapshot.Entries
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if limit < len(entries) {
			entries = entries[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot_id": snapshot.ID,
		"computed_at": snapshot.ComputedAt.Format(time.RFC3339),
		"converged":   snapshot.Converged,
		"rankings":    entries,
	})
}

// GetTeam returns a single team's entry. Team names are case-sensitive.
func (h *RankingsHandler) GetTeam(c *gin.Context) {
	snapshot, ok := h.Ladder.Current()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rankings not computed yet"})
		return
	}

	entry, ok := snapshot.Team(c.Param("team"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// PostRefresh recomputes the ladder immediately.
func (h *RankingsHandler) PostRefresh(c *gin.Context) {
	if err := h.Refresher.Refresh(c.Request.Context()); err != nil {
		log.Printf("[API] Manual refresh failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "refresh failed"})
		return
	}

	snapshot, ok := h.Ladder.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot_id": snapshot.ID, "teams": len(snapshot.Entries)})
}

// Healthz reports liveness and whether a ladder exists to serve.
func (h *RankingsHandler) Healthz(c *gin.Context) {
	_, ready := h.Ladder.Current()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rankings_ready": ready})
}
