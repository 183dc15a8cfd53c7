package stats_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gigboard/internal/logger"
	"gigboard/internal/stats"
	"gigboard/internal/utils"
)

type Handler struct {
	StatsService *stats.Service
	Logger       *logger.Logger
}

func NewHandler(service *stats.Service, log *logger.Logger) *Handler {
	return &Handler{StatsService: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.GetDirectoryStats)
}

// GetDirectoryStats serves GET /stats: the landing page counters.
func (h *Handler) GetDirectoryStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.StatsService.GetDirectoryStats(r.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("STATS", fmt.Sprintf("failed to compute directory stats: %v", err))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(utils.ErrorResponse("Could not compute stats", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(utils.SuccessResponse("stats", result))
}
