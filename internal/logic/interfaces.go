package logic

import (
	"context"

	"github.com/futscout/futscout/internal/dataset"
	"github.com/futscout/futscout/internal/models"
)

// PoolStore defines the interface for the season dataset store
type PoolStore interface {
	Leagues(ctx context.Context) ([]string, error)
	Positions(ctx context.Context) ([]string, error)
	Pool(ctx context.Context, league, pos string, min90s float64) ([]dataset.Row, error)
	Rows() int
}

// CompareService builds the two-player comparison payload
type CompareService interface {
	Compare(ctx context.Context, req models.CompareRequest) (*models.CompareResult, error)
}
