package dashboard

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server renders the comparison page from the controller's state.
type Server struct {
	ctrl   *Controller
	logger *zap.SugaredLogger
}

func NewServer(ctrl *Controller, logger *zap.Logger) *Server {
	return &Server{ctrl: ctrl, logger: logger.Sugar()}
}

// Routes wires the two page endpoints: GET / renders the page, GET
// /compare applies the submitted filter form and redirects back.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/compare", s.handleCompare)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, s.ctrl.Snapshot()); err != nil {
		s.logger.Errorw("Page render failed", "error", err)
	}
}

// handleCompare applies the form submission as a sequence of state
// mutations. A league switch runs the full cascade and supersedes the
// submitted player selection, because that selection belongs to the old
// list. Otherwise changed filters reload the list, and a pure player
// change just reruns the comparison.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	snap := s.ctrl.Snapshot()

	if league := q.Get("league"); league != "" && league != snap.Filters.League {
		s.ctrl.SetLeague(ctx, league)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	filtersChanged := false
	if pos := q.Get("pos"); pos != "" && pos != snap.Filters.Pos {
		s.ctrl.SetPosition(ctx, pos)
		filtersChanged = true
	}
	if raw := q.Get("min90s"); raw != "" {
		if min90s, err := strconv.ParseFloat(raw, 64); err == nil && min90s != snap.Filters.Min90s {
			s.ctrl.SetMinNineties(ctx, min90s)
			filtersChanged = true
		}
	}

	if !filtersChanged {
		playerA := q.Get("player_a")
		playerB := q.Get("player_b")
		if playerA == "" {
			playerA = snap.PlayerA
		}
		if playerB == "" {
			playerB = snap.PlayerB
		}
		if playerA != snap.PlayerA || playerB != snap.PlayerB {
			s.ctrl.SelectPlayers(ctx, playerA, playerB)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
