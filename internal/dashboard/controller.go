// Package dashboard owns the comparison page: the controller that drives
// filter state, player selection and comparison loads, and the HTTP
// server that renders the page from its state.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/futscout/futscout/internal/client"
	"github.com/futscout/futscout/internal/models"
	"github.com/futscout/futscout/internal/render"
)

// Controller is the page state machine. Every field is owned by the
// controller and mutated only under mu, which stands in for the
// single-threaded event loop the page semantics assume: request
// completions apply atomically and never interleave mid-update.
type Controller struct {
	api          client.StatsAPI
	connectivity string
	logger       *zap.SugaredLogger

	mu        sync.Mutex
	leagues   []string
	positions []string
	filters   client.Filters
	players   []models.PlayerSummary
	playerA   string
	playerB   string
	loading   bool
	errMsg    string
	result    *models.CompareResult
	maxHeat   float64
	chart     *render.RadarChart
}

// NewController builds an idle controller. baseURL only feeds the
// connectivity message shown when the backend cannot be reached.
func NewController(api client.StatsAPI, baseURL string, logger *zap.Logger) *Controller {
	return &Controller{
		api:          api,
		connectivity: fmt.Sprintf("Cannot reach the stats backend. Check that it is running on %s.", baseURL),
		logger:       logger.Sugar(),
		filters:      client.Filters{Pos: "ALL", Min90s: 5},
		maxHeat:      render.HeatEpsilon,
	}
}

// Init bootstraps the page: leagues and positions are fetched
// concurrently with no ordering between them. As soon as the league list
// lands, the first league is selected and the player-list cascade runs.
func (c *Controller) Init(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		leagues, err := c.api.Leagues(ctx)
		if err != nil {
			c.logger.Warnw("League bootstrap failed", "error", err)
			return nil
		}

		c.mu.Lock()
		c.leagues = leagues
		if len(leagues) > 0 {
			c.filters.League = leagues[0]
		} else {
			c.filters.League = ""
		}
		c.mu.Unlock()

		c.loadPlayers(ctx)
		return nil
	})

	g.Go(func() error {
		positions, err := c.api.Positions(ctx)
		if err != nil {
			c.logger.Warnw("Position bootstrap failed", "error", err)
			return nil
		}
		c.mu.Lock()
		c.positions = positions
		c.mu.Unlock()
		return nil
	})

	g.Wait()
}

// SetLeague switches league and reruns the full load cascade.
func (c *Controller) SetLeague(ctx context.Context, league string) {
	c.mu.Lock()
	c.filters.League = league
	c.mu.Unlock()
	c.loadPlayers(ctx)
}

// SetPosition changes the position filter and reruns the cascade.
func (c *Controller) SetPosition(ctx context.Context, pos string) {
	if pos == "" {
		pos = "ALL"
	}
	c.mu.Lock()
	c.filters.Pos = pos
	c.mu.Unlock()
	c.loadPlayers(ctx)
}

// SetMinNineties changes the minimum-appearances filter and reruns the
// cascade. Negative input clamps to zero at this boundary instead of
// being sent to the backend.
func (c *Controller) SetMinNineties(ctx context.Context, min90s float64) {
	if min90s < 0 || min90s != min90s {
		min90s = 0
	}
	c.mu.Lock()
	c.filters.Min90s = min90s
	c.mu.Unlock()
	c.loadPlayers(ctx)
}

// SelectPlayers picks the two comparison subjects and reruns the
// comparison.
func (c *Controller) SelectPlayers(ctx context.Context, playerA, playerB string) {
	c.mu.Lock()
	c.playerA = playerA
	c.playerB = playerB
	c.mu.Unlock()
	c.runCompare(ctx)
}

// loadPlayers refreshes the player list for the current filters and
// cascades into reselection and a fresh comparison. Without a league it
// is a no-op.
func (c *Controller) loadPlayers(ctx context.Context) {
	c.mu.Lock()
	f := c.filters
	c.mu.Unlock()

	if f.League == "" {
		return
	}

	players, err := c.api.Players(ctx, f)
	if err != nil {
		c.logger.Warnw("Player list load failed", "league", f.League, "error", err)
		c.mu.Lock()
		c.errMsg = c.connectivity
		c.mu.Unlock()
		// Prior list and result stay as they were
		return
	}

	c.mu.Lock()
	c.players = players
	c.errMsg = ""
	if len(players) == 0 {
		c.playerA, c.playerB = "", ""
	} else {
		c.playerA = players[0].Player
		c.playerB = c.playerA
		for _, p := range players[1:] {
			if p.Player != c.playerA {
				c.playerB = p.Player
				break
			}
		}
	}
	c.mu.Unlock()

	c.runCompare(ctx)
}

// runCompare fetches a fresh comparison for the current selection. It is
// a no-op unless league and both players are set. The loading flag is set
// before the request goes out and cleared on every completion path.
func (c *Controller) runCompare(ctx context.Context) {
	c.mu.Lock()
	f, a, b := c.filters, c.playerA, c.playerB
	if f.League == "" || a == "" || b == "" {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.mu.Unlock()

	result, err := c.api.Compare(ctx, f, a, b)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.logger.Warnw("Comparison failed", "player_a", a, "player_b", b, "error", err)
		c.errMsg = c.connectivity
		// Prior result stays visible
		return
	}

	if result.Error != "" || result.PlayerA == nil || result.PlayerB == nil {
		msg := result.Error
		if msg == "" {
			msg = "Comparison response was incomplete."
		}
		c.errMsg = msg
		c.result = nil
		c.maxHeat = render.HeatEpsilon
		c.chart = nil
		return
	}

	c.errMsg = ""
	c.result = result
	c.maxHeat = render.MaxHeat(result.PlayerA.Heatmap.Matrix, result.PlayerB.Heatmap.Matrix)

	// Full teardown: the previous chart is discarded, never patched
	c.chart = render.NewRadarChart(
		result.PlayerA.Radar.Labels,
		result.PlayerA.Radar.Percentiles,
		result.PlayerB.Radar.Percentiles,
		result.PlayerA.Name,
		result.PlayerB.Name,
	)
}

// CellStyle styles one heatmap cell against the shared heat range.
func (c *Controller) CellStyle(value float64, accent render.Accent) render.CellStyle {
	c.mu.Lock()
	maxHeat := c.maxHeat
	c.mu.Unlock()
	return render.Cell(value, maxHeat, accent)
}

// Snapshot is a point-in-time copy of the page state for rendering.
type Snapshot struct {
	Leagues   []string
	Positions []string
	Filters   client.Filters
	Players   []models.PlayerSummary
	PlayerA   string
	PlayerB   string
	Loading   bool
	ErrMsg    string
	Result    *models.CompareResult
	MaxHeat   float64
	Chart     *render.RadarChart
}

// Snapshot captures the current page state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Leagues:   c.leagues,
		Positions: c.positions,
		Filters:   c.filters,
		Players:   c.players,
		PlayerA:   c.playerA,
		PlayerB:   c.playerB,
		Loading:   c.loading,
		ErrMsg:    c.errMsg,
		Result:    c.result,
		MaxHeat:   c.maxHeat,
		Chart:     c.chart,
	}
}
