// internal/api/handler/stats.go
package handler

import (
	"log/slog"
	"net/http"

	"salapi-backend/internal/service"
)

// StatsHandler serves the bucketed statistics views.
type StatsHandler struct {
	stats  *service.StatsService
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

// Weekly serves the trailing-7-day buckets.
// GET /stats/weekly
func (h *StatsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	buckets, err := h.stats.Weekly(r.Context(), uid)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithSuccess(h.logger, w, http.StatusOK, "", buckets)
}

// Monthly serves the trailing-12-month buckets.
// GET /stats/monthly
func (h *StatsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	buckets, err := h.stats.Monthly(r.Context(), uid)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithSuccess(h.logger, w, http.StatusOK, "", buckets)
}

// Yearly serves the trailing-5-year buckets.
// GET /stats/yearly
func (h *StatsHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	buckets, err := h.stats.Yearly(r.Context(), uid)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithSuccess(h.logger, w, http.StatusOK, "", buckets)
}
