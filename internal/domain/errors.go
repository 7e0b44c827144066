package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidSortKey is returned when a sort key is not one of the known keys
	ErrInvalidSortKey = errors.New("unknown sort key")

	// ErrCatalogUnavailable is returned when the catalog source cannot be reached
	ErrCatalogUnavailable = errors.New("catalog source unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
