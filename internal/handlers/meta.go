package handlers

import (
	"net/http"

	"github.com/futscout/futscout/internal/models"
)

// GetLeagues lists the competitions present in the season dataset
// @Summary List Leagues
// @Tags Meta
// @Produce json
// @Success 200 {object} models.LeaguesResponse "Leagues"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /meta/leagues [get]
func (h *Handler) GetLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.store.Leagues(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to list leagues", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Query failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.LeaguesResponse{Leagues: leagues})
}

// GetPositions lists the positions present in the season dataset
// @Summary List Positions
// @Tags Meta
// @Produce json
// @Success 200 {object} models.PositionsResponse "Positions"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /meta/positions [get]
func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.store.Positions(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to list positions", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Query failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.PositionsResponse{Positions: positions})
}
