package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitrin/backend/config"
	httpDelivery "github.com/vitrin/backend/internal/delivery/http"
	"github.com/vitrin/backend/internal/domain"
	"github.com/vitrin/backend/internal/infrastructure/cache"
	"github.com/vitrin/backend/internal/infrastructure/catalog"
	"github.com/vitrin/backend/internal/infrastructure/vocabulary"
	"github.com/vitrin/backend/internal/logging"
	"github.com/vitrin/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger := logging.Logger()

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Str("catalog_source", cfg.Catalog.Source).
		Msg("starting vitrin backend v1.0.0")

	cacheRepo, closeCache, err := newCache(cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize cache")
	}
	defer closeCache()

	source := newCatalogSource(cfg.Catalog, cfg.RateLimit)

	vocab, err := loadVocabulary(cfg.Search.VocabularyPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load vocabulary")
	}

	discoveryService := usecase.NewDiscoveryService(vocab, usecase.DiscoveryConfig{
		LooseFallbackLimit:   cfg.Search.FallbackLooseLimit,
		PopularFallbackLimit: cfg.Search.FallbackPopularLimit,
		SuggestionLimit:      cfg.Search.SuggestionLimit,
		EnableDebugLogging:   cfg.Search.Debug,
	}, logger)

	catalogService := usecase.NewCatalogService(cacheRepo, source, usecase.CatalogServiceConfig{
		RefreshTTL: cfg.Catalog.RefreshTTL,
	}, logger)

	preferenceService := usecase.NewPreferenceService(cacheRepo, usecase.PreferenceServiceConfig{
		RecentLimit: cfg.Search.RecentSearchLimit,
		TTL:         cfg.Cache.TTL,
	})

	logging.Info().
		Int("loose_limit", cfg.Search.FallbackLooseLimit).
		Int("popular_limit", cfg.Search.FallbackPopularLimit).
		Bool("debug", cfg.Search.Debug).
		Msg("discovery engine configured")

	handler := httpDelivery.NewHandler(discoveryService, catalogService, preferenceService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newCache builds the configured cache and its release function
func newCache(cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	if cfg.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, "vitrin:")
		if err != nil {
			return nil, nil, err
		}
		logging.Info().Msg("using redis cache")
		return redisCache, func() { _ = redisCache.Close() }, nil
	}

	memoryCache := cache.NewMemoryCache()
	return memoryCache, func() { _ = memoryCache.Close() }, nil
}

// newCatalogSource builds the configured catalog source
func newCatalogSource(cfg config.CatalogConfig, limits config.RateLimitConfig) domain.CatalogSource {
	if cfg.Source == "http" {
		if cfg.APIKey == "" {
			logging.Warn().Str("base_url", cfg.BaseURL).Msg("catalog API key not configured")
		}
		return catalog.NewClient(catalog.ClientConfig{
			BaseURL:         cfg.BaseURL,
			APIKey:          cfg.APIKey,
			IncludeShared:   cfg.SharedFeed,
			RequestsPerHour: limits.Catalog,
		}, logging.Logger())
	}

	logging.Info().Str("path", cfg.FilePath).Msg("serving catalog from file")
	return catalog.NewFileSource(cfg.FilePath)
}

// loadVocabulary reads the autocomplete vocabulary from path, or the
// built-in one when path is empty
func loadVocabulary(path string) (*domain.Vocabulary, error) {
	if path == "" {
		return vocabulary.Default()
	}
	logging.Info().Str("path", path).Msg("loading vocabulary file")
	return vocabulary.LoadFile(path)
}
