package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/minchan-k/cinelog/internal/services"
	"github.com/minchan-k/cinelog/internal/stats"
)

// StatsHandler serves viewing-habit summaries. Summaries are recomputed
// from the full review set on every request, so they always reflect the
// live store.
type StatsHandler struct {
	reviewService *services.ReviewService
	logger        *log.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(reviewService *services.ReviewService, logger *log.Logger) *StatsHandler {
	return &StatsHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// Summary handles GET /api/stats/summary
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.All(r.Context())
	if err != nil {
		h.logger.Printf("Failed to load reviews for stats: %v", err)
		respondError(w, err, "Failed to compute statistics")
		return
	}

	respondJSON(w, http.StatusOK, stats.Summaries(reviews, time.Now()))
}
