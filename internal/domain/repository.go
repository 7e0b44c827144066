package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogSource fetches the full product catalog from the hosted backend.
// Implementations may return duplicate ids when feeds are merged.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}
