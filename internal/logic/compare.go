package logic

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/futscout/futscout/internal/dataset"
	"github.com/futscout/futscout/internal/models"
)

// Domain errors travel in-band on the result so the dashboard can surface
// them verbatim.
const (
	errEmptyPool      = "No players match the filters."
	errPlayerNotFound = "Player not found in the filtered pool."
)

type compareService struct {
	store    PoolStore
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
	logger   *zap.SugaredLogger
}

// NewCompareService builds the compare service. cache may be nil, in which
// case every request recomputes from the pool.
func NewCompareService(store PoolStore, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) CompareService {
	return &compareService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Sugar(),
	}
}

// Compare builds the full two-player comparison. Domain failures (empty
// pool, unknown player) return a result with Error set and a nil error;
// only infrastructure problems surface as errors.
func (s *compareService) Compare(ctx context.Context, req models.CompareRequest) (*models.CompareResult, error) {
	if cached := s.cacheGet(ctx, req); cached != nil {
		return cached, nil
	}

	pool, err := s.store.Pool(ctx, req.League, req.Pos, req.Min90s)
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	if len(pool) == 0 {
		return &models.CompareResult{Error: errEmptyPool}, nil
	}

	a := findPlayer(pool, req.PlayerA)
	b := findPlayer(pool, req.PlayerB)
	if a == nil || b == nil {
		return &models.CompareResult{Error: errPlayerNotFound}, nil
	}

	result := &models.CompareResult{
		League:  req.League,
		Filters: models.CompareFilters{Pos: req.Pos, Min90s: req.Min90s},
	}

	// The two sides are independent; build them concurrently.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.PlayerA = buildSide(pool, a)
		return nil
	})
	g.Go(func() error {
		result.PlayerB = buildSide(pool, b)
		return nil
	})
	g.Wait()

	s.cacheSet(ctx, req, result)
	return result, nil
}

// findPlayer returns the first pool row with the given name, mirroring the
// iloc[0] pick when a name appears more than once.
func findPlayer(pool []dataset.Row, name string) *dataset.Row {
	for i := range pool {
		if pool[i].Player == name {
			return &pool[i]
		}
	}
	return nil
}

func buildSide(pool []dataset.Row, row *dataset.Row) *models.ComparePlayer {
	return &models.ComparePlayer{
		Name:     row.Player,
		Squad:    row.Squad,
		Pos:      row.Pos,
		Age:      maybeInt(row.Age),
		Minutes:  maybeInt(row.Min),
		Nineties: maybeFloat(row.Nineties),
		Radar:    buildRadar(pool, row),
		Heatmap:  buildHeatmap(row),
	}
}

func cacheKey(req models.CompareRequest) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s|%g",
		req.League, req.PlayerA, req.PlayerB, req.Pos, req.Min90s)))
	return "futscout:compare:" + hex.EncodeToString(h[:16])
}

func (s *compareService) cacheGet(ctx context.Context, req models.CompareRequest) *models.CompareResult {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey(req)).Bytes()
	if err != nil {
		return nil
	}
	var result models.CompareResult
	if err := json.Unmarshal(raw, &result); err != nil {
		s.logger.Warnw("Dropping bad cache entry", "key", cacheKey(req), "error", err)
		return nil
	}
	return &result
}

func (s *compareService) cacheSet(ctx context.Context, req models.CompareRequest, result *models.CompareResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(req), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warnw("Cache write failed", "error", err)
	}
}
