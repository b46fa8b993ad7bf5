package dashboard

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/futscout/futscout/internal/client"
	"github.com/futscout/futscout/internal/models"
	"github.com/futscout/futscout/internal/render"
)

type MockStatsAPI struct {
	mu            sync.Mutex
	LeaguesFunc   func(ctx context.Context) ([]string, error)
	PositionsFunc func(ctx context.Context) ([]string, error)
	PlayersFunc   func(ctx context.Context, f client.Filters) ([]models.PlayerSummary, error)
	CompareFunc   func(ctx context.Context, f client.Filters, playerA, playerB string) (*models.CompareResult, error)

	PlayersCalls int
	CompareCalls int
}

func (m *MockStatsAPI) Leagues(ctx context.Context) ([]string, error) {
	if m.LeaguesFunc != nil {
		return m.LeaguesFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatsAPI) Positions(ctx context.Context) ([]string, error) {
	if m.PositionsFunc != nil {
		return m.PositionsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatsAPI) Players(ctx context.Context, f client.Filters) ([]models.PlayerSummary, error) {
	m.mu.Lock()
	m.PlayersCalls++
	m.mu.Unlock()
	if m.PlayersFunc != nil {
		return m.PlayersFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockStatsAPI) Compare(ctx context.Context, f client.Filters, playerA, playerB string) (*models.CompareResult, error) {
	m.mu.Lock()
	m.CompareCalls++
	m.mu.Unlock()
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, f, playerA, playerB)
	}
	return &models.CompareResult{}, nil
}

func (m *MockStatsAPI) calls() (players, compare int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PlayersCalls, m.CompareCalls
}

const testBaseURL = "http://127.0.0.1:8000"

func newTestController(api client.StatsAPI) *Controller {
	return NewController(api, testBaseURL, zap.NewNop())
}

func summaries(names ...string) []models.PlayerSummary {
	out := make([]models.PlayerSummary, 0, len(names))
	for _, n := range names {
		out = append(out, models.PlayerSummary{Player: n, Squad: "Arsenal", Pos: "MF"})
	}
	return out
}

func goodResult(playerA, playerB string) *models.CompareResult {
	side := func(name string) *models.ComparePlayer {
		return &models.ComparePlayer{
			Name:  name,
			Squad: "Arsenal",
			Pos:   "MF",
			Radar: models.Radar{
				Labels:      []string{"Goals/90", "Assists/90"},
				Percentiles: []float64{80, 60},
				Values:      []float64{0.5, 0.3},
				Overall:     70,
			},
			Heatmap: models.Heatmap{
				Matrix:  [][]float64{{0.2, 0.5}, {0.6, 0.3}, {0.2, 0.2}},
				XLabels: []string{"Touches share", "Tackles share"},
				YLabels: []string{"Def 3rd", "Mid 3rd", "Att 3rd"},
			},
		}
	}
	return &models.CompareResult{
		League:  "Premier League",
		PlayerA: side(playerA),
		PlayerB: side(playerB),
	}
}

func healthyMock() *MockStatsAPI {
	return &MockStatsAPI{
		LeaguesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Premier League", "La Liga"}, nil
		},
		PositionsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"DF", "MF", "FW"}, nil
		},
		PlayersFunc: func(ctx context.Context, f client.Filters) ([]models.PlayerSummary, error) {
			return summaries("Bukayo Saka", "Declan Rice"), nil
		},
		CompareFunc: func(ctx context.Context, f client.Filters, playerA, playerB string) (*models.CompareResult, error) {
			return goodResult(playerA, playerB), nil
		},
	}
}

func TestInit_BootstrapCascade(t *testing.T) {
	api := healthyMock()
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	snap := ctrl.Snapshot()
	if snap.Filters.League != "Premier League" {
		t.Errorf("Expected first league auto-selected, got %q", snap.Filters.League)
	}
	if len(snap.Positions) != 3 {
		t.Errorf("Expected 3 positions, got %d", len(snap.Positions))
	}
	if snap.PlayerA != "Bukayo Saka" || snap.PlayerB != "Declan Rice" {
		t.Errorf("Expected first two distinct players selected, got %q / %q", snap.PlayerA, snap.PlayerB)
	}
	if snap.Result == nil {
		t.Fatal("Expected a comparison result after bootstrap")
	}
	if snap.Chart == nil {
		t.Error("Expected a radar chart after a successful comparison")
	}
	if snap.Loading {
		t.Error("Expected loading cleared after completion")
	}
	if snap.ErrMsg != "" {
		t.Errorf("Expected no error, got %q", snap.ErrMsg)
	}

	players, compare := api.calls()
	if players != 1 || compare != 1 {
		t.Errorf("Expected 1 player load and 1 comparison, got %d / %d", players, compare)
	}
}

func TestInit_SinglePlayerSelectsBothSlots(t *testing.T) {
	api := healthyMock()
	api.PlayersFunc = func(ctx context.Context, f client.Filters) ([]models.PlayerSummary, error) {
		return summaries("Bukayo Saka"), nil
	}
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	snap := ctrl.Snapshot()
	if snap.PlayerA != "Bukayo Saka" || snap.PlayerB != "Bukayo Saka" {
		t.Errorf("Expected B to fall back to A, got %q / %q", snap.PlayerA, snap.PlayerB)
	}
	if snap.Result == nil {
		t.Error("Expected a same-player comparison to run")
	}
}

func TestInit_EmptyPlayerListSkipsComparison(t *testing.T) {
	api := healthyMock()
	api.PlayersFunc = func(ctx context.Context, f client.Filters) ([]models.PlayerSummary, error) {
		return []models.PlayerSummary{}, nil
	}
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	snap := ctrl.Snapshot()
	if snap.PlayerA != "" || snap.PlayerB != "" {
		t.Errorf("Expected empty selection, got %q / %q", snap.PlayerA, snap.PlayerB)
	}
	if _, compare := api.calls(); compare != 0 {
		t.Errorf("Expected no comparison without players, got %d", compare)
	}
}

func TestSetMinNineties_TriggersOneLoadAndOneCompare(t *testing.T) {
	api := healthyMock()
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	before, beforeCompare := api.calls()
	ctrl.SetMinNineties(context.Background(), 10)

	players, compare := api.calls()
	if players-before != 1 {
		t.Errorf("Expected exactly 1 new player load, got %d", players-before)
	}
	if compare-beforeCompare != 1 {
		t.Errorf("Expected exactly 1 new comparison, got %d", compare-beforeCompare)
	}
	if got := ctrl.Snapshot().Filters.Min90s; got != 10 {
		t.Errorf("Expected min90s 10, got %v", got)
	}
}

func TestSetMinNineties_ClampsNegativeInput(t *testing.T) {
	api := healthyMock()
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	ctrl.SetMinNineties(context.Background(), -3)
	if got := ctrl.Snapshot().Filters.Min90s; got != 0 {
		t.Errorf("Expected negative input clamped to 0, got %v", got)
	}
}

func TestCompare_DomainErrorClearsResult(t *testing.T) {
	api := healthyMock()
	ctrl := newTestController(api)
	ctrl.Init(context.Background())
	if ctrl.Snapshot().Result == nil {
		t.Fatal("Expected a result before the failing reload")
	}

	api.CompareFunc = func(ctx context.Context, f client.Filters, playerA, playerB string) (*models.CompareResult, error) {
		return &models.CompareResult{Error: "No players match the filters."}, nil
	}
	ctrl.SetPosition(context.Background(), "GK")

	snap := ctrl.Snapshot()
	if snap.ErrMsg != "No players match the filters." {
		t.Errorf("Expected backend message verbatim, got %q", snap.ErrMsg)
	}
	if snap.Result != nil {
		t.Error("Expected prior result cleared on domain error")
	}
	if snap.Chart != nil {
		t.Error("Expected chart torn down on domain error")
	}
	if snap.Loading {
		t.Error("Expected loading cleared")
	}
	if snap.MaxHeat != render.HeatEpsilon {
		t.Errorf("Expected heat range reset, got %v", snap.MaxHeat)
	}
}

func TestCompare_TransportFailureKeepsPriorResult(t *testing.T) {
	api := healthyMock()
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	before := ctrl.Snapshot().Result
	api.CompareFunc = func(ctx context.Context, f client.Filters, playerA, playerB string) (*models.CompareResult, error) {
		return nil, errors.New("connection refused")
	}
	ctrl.SelectPlayers(context.Background(), "Declan Rice", "Bukayo Saka")

	snap := ctrl.Snapshot()
	want := "Cannot reach the stats backend. Check that it is running on " + testBaseURL + "."
	if snap.ErrMsg != want {
		t.Errorf("Expected connectivity message %q, got %q", want, snap.ErrMsg)
	}
	if snap.Result != before {
		t.Error("Expected prior result kept on transport failure")
	}
	if snap.Loading {
		t.Error("Expected loading cleared after failure")
	}
}

func TestLoadPlayers_TransportFailureKeepsPriorList(t *testing.T) {
	api := healthyMock()
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	api.PlayersFunc = func(ctx context.Context, f client.Filters) ([]models.PlayerSummary, error) {
		return nil, errors.New("connection refused")
	}
	ctrl.SetMinNineties(context.Background(), 20)

	snap := ctrl.Snapshot()
	if !strings.Contains(snap.ErrMsg, "Cannot reach the stats backend") {
		t.Errorf("Expected connectivity message, got %q", snap.ErrMsg)
	}
	if len(snap.Players) != 2 {
		t.Errorf("Expected prior player list kept, got %d entries", len(snap.Players))
	}
	if snap.PlayerA != "Bukayo Saka" || snap.PlayerB != "Declan Rice" {
		t.Errorf("Expected prior selection kept, got %q / %q", snap.PlayerA, snap.PlayerB)
	}
}

func TestCompare_SharedHeatRangeStylesCells(t *testing.T) {
	api := healthyMock()
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	snap := ctrl.Snapshot()
	if snap.MaxHeat != 0.6 {
		t.Fatalf("Expected max heat 0.6 across both matrices, got %v", snap.MaxHeat)
	}

	style := ctrl.CellStyle(0.3, render.AccentBlue)
	if math.Abs(style.Opacity-0.525) > 1e-9 {
		t.Errorf("Expected opacity 0.525 for half the range, got %v", style.Opacity)
	}
}

func TestCompare_ChartIsRebuiltNotPatched(t *testing.T) {
	api := healthyMock()
	ctrl := newTestController(api)
	ctrl.Init(context.Background())

	first := ctrl.Snapshot().Chart
	ctrl.SelectPlayers(context.Background(), "Declan Rice", "Bukayo Saka")
	second := ctrl.Snapshot().Chart

	if first == nil || second == nil {
		t.Fatal("Expected charts on both comparisons")
	}
	if first == second {
		t.Error("Expected a fresh chart instance per comparison")
	}
}
