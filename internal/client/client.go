// Package client is the typed HTTP client for the stats API. The base URL
// is injected at construction so nothing in the dashboard depends on a
// process-wide endpoint.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/futscout/futscout/internal/models"
)

// Filters is the player-pool selection shared by the list and compare
// calls.
type Filters struct {
	League string
	Pos    string
	Min90s float64
}

// StatsAPI is the read surface the dashboard consumes. The concrete
// Client implements it; tests substitute their own.
type StatsAPI interface {
	Leagues(ctx context.Context) ([]string, error)
	Positions(ctx context.Context) ([]string, error)
	Players(ctx context.Context, f Filters) ([]models.PlayerSummary, error)
	Compare(ctx context.Context, f Filters, playerA, playerB string) (*models.CompareResult, error)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL reports the configured endpoint, used in user-facing
// connectivity messages.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("stats api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stats api %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Leagues fetches the league list.
func (c *Client) Leagues(ctx context.Context) ([]string, error) {
	var resp models.LeaguesResponse
	if err := c.get(ctx, "/meta/leagues", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Leagues, nil
}

// Positions fetches the position list.
func (c *Client) Positions(ctx context.Context) ([]string, error) {
	var resp models.PositionsResponse
	if err := c.get(ctx, "/meta/positions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Positions, nil
}

// Players fetches the filtered player list.
func (c *Client) Players(ctx context.Context, f Filters) ([]models.PlayerSummary, error) {
	query := url.Values{
		"league": {f.League},
		"pos":    {f.Pos},
		"min90s": {strconv.FormatFloat(f.Min90s, 'f', -1, 64)},
	}

	var resp models.PlayersResponse
	if err := c.get(ctx, "/players", query, &resp); err != nil {
		return nil, err
	}
	return resp.Players, nil
}

// Compare fetches the two-player comparison. A result carrying a non-empty
// Error field is a successful call reporting a domain failure; the caller
// decides how to surface it.
func (c *Client) Compare(ctx context.Context, f Filters, playerA, playerB string) (*models.CompareResult, error) {
	query := url.Values{
		"league":   {f.League},
		"player_a": {playerA},
		"player_b": {playerB},
		"pos":      {f.Pos},
		"min90s":   {strconv.FormatFloat(f.Min90s, 'f', -1, 64)},
	}

	var resp models.CompareResult
	if err := c.get(ctx, "/compare", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
