package handlers

import (
	"net/http"

	"github.com/futscout/futscout/internal/logic"
	"github.com/futscout/futscout/internal/models"
)

// defaultMin90s matches the sheet's usual cutoff for meaningful minutes.
const defaultMin90s = 5.0

// GetPlayers lists players matching the league/position/minutes filters
// @Summary List Players
// @Tags Players
// @Produce json
// @Param league query string true "League"
// @Param pos query string false "Position" default(ALL)
// @Param min90s query number false "Minimum nineties played" default(5)
// @Param squad query string false "Squad"
// @Success 200 {object} models.PlayersResponse "Players"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	req := models.PlayersRequest{
		League: r.URL.Query().Get("league"),
		Pos:    queryString(r, "pos", "ALL"),
		Min90s: queryFloat(r, "min90s", defaultMin90s),
		Squad:  r.URL.Query().Get("squad"),
	}

	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid filters: "+err.Error())
		return
	}

	pool, err := h.store.Pool(r.Context(), req.League, req.Pos, req.Min90s)
	if err != nil {
		h.logger.Errorw("Failed to load player pool", "league", req.League, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Query failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.PlayersResponse{
		Players: logic.Summaries(pool, req.Squad),
	})
}
