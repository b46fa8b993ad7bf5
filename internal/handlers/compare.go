package handlers

import (
	"net/http"

	"github.com/futscout/futscout/internal/models"
)

// GetCompare compares two players within a filtered cohort
// @Summary Compare Two Players
// @Description Percentile radar and pitch heatmap for both players against the filtered pool
// @Tags Players
// @Produce json
// @Param league query string true "League"
// @Param player_a query string true "First player name"
// @Param player_b query string true "Second player name"
// @Param pos query string false "Position" default(ALL)
// @Param min90s query number false "Minimum nineties played" default(5)
// @Success 200 {object} models.CompareResult "Comparison or domain error"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /compare [get]
func (h *Handler) GetCompare(w http.ResponseWriter, r *http.Request) {
	req := models.CompareRequest{
		League:  r.URL.Query().Get("league"),
		PlayerA: r.URL.Query().Get("player_a"),
		PlayerB: r.URL.Query().Get("player_b"),
		Pos:     queryString(r, "pos", "ALL"),
		Min90s:  queryFloat(r, "min90s", defaultMin90s),
	}

	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid comparison request: "+err.Error())
		return
	}

	result, err := h.compare.Compare(r.Context(), req)
	if err != nil {
		h.logger.Errorw("Comparison failed",
			"league", req.League, "player_a", req.PlayerA, "player_b", req.PlayerB, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Comparison failed")
		return
	}

	// Domain errors ship in-band with a 200, the dashboard surfaces them
	h.jsonResponse(w, http.StatusOK, result)
}
