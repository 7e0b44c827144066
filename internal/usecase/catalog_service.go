package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitrin/backend/internal/domain"
	"github.com/vitrin/backend/internal/infrastructure/cache"
	"github.com/vitrin/backend/internal/metrics"
)

const (
	catalogSnapshotKey = "catalog:snapshot"
	catalogLastGoodKey = "catalog:last-good"
	defaultRefreshTTL  = 5 * time.Minute
	lastGoodTTL        = 24 * time.Hour
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	RefreshTTL time.Duration
}

// CatalogService serves catalog snapshots, refreshing from the source when
// the cached copy expires.
type CatalogService struct {
	cache      domain.CacheRepository
	source     domain.CatalogSource
	refreshTTL time.Duration
	logger     zerolog.Logger
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	cacheRepo domain.CacheRepository,
	source domain.CatalogSource,
	config CatalogServiceConfig,
	logger zerolog.Logger,
) *CatalogService {
	ttl := config.RefreshTTL
	if ttl <= 0 {
		ttl = defaultRefreshTTL
	}

	return &CatalogService{
		cache:      cacheRepo,
		source:     source,
		refreshTTL: ttl,
		logger:     logger.With().Str("component", "catalog").Logger(),
	}
}

// Snapshot returns the current catalog.
// Flow: fresh cache -> source -> last good copy -> ErrCatalogUnavailable
func (s *CatalogService) Snapshot(ctx context.Context) ([]domain.Product, error) {
	if products, ok := s.fromCache(ctx, catalogSnapshotKey); ok {
		metrics.RecordCatalogFetch("hit")
		return products, nil
	}

	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("catalog fetch failed")
		if stale, ok := s.fromCache(ctx, catalogLastGoodKey); ok {
			metrics.RecordCatalogFetch("stale")
			return stale, nil
		}
		metrics.RecordCatalogFetch("error")
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	metrics.RecordCatalogFetch("fetched")
	if err := s.cache.Set(ctx, catalogSnapshotKey, products, s.refreshTTL); err != nil {
		s.logger.Warn().Err(err).Msg("caching catalog snapshot failed")
	}
	if err := s.cache.Set(ctx, catalogLastGoodKey, products, lastGoodTTL); err != nil {
		s.logger.Warn().Err(err).Msg("caching last good catalog failed")
	}

	return products, nil
}

// Invalidate drops the fresh snapshot so the next call refetches
func (s *CatalogService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, catalogSnapshotKey)
}

func (s *CatalogService) fromCache(ctx context.Context, key string) ([]domain.Product, bool) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var products []domain.Product
	if err := cache.Decode(value, &products); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable catalog cache entry")
		return nil, false
	}
	return products, true
}
