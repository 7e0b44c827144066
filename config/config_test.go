package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var configEnvVars = []string{
	"VITRIN_SERVER_PORT",
	"VITRIN_SERVER_ENVIRONMENT",
	"VITRIN_SERVER_ALLOWED_ORIGINS",
	"VITRIN_CATALOG_SOURCE",
	"VITRIN_CATALOG_BASE_URL",
	"VITRIN_CATALOG_API_KEY",
	"VITRIN_CATALOG_FILE_PATH",
	"VITRIN_CATALOG_SHARED_FEED",
	"VITRIN_CATALOG_REFRESH_TTL",
	"VITRIN_CACHE_TYPE",
	"VITRIN_CACHE_REDIS_URL",
	"VITRIN_CACHE_TTL",
	"VITRIN_RATELIMIT_PER_IP",
	"VITRIN_RATELIMIT_CATALOG",
	"VITRIN_SEARCH_DEBUG",
	"VITRIN_SEARCH_FALLBACK_LOOSE_LIMIT",
	"VITRIN_SEARCH_SUGGESTION_LIMIT",
	"VITRIN_LOG_LEVEL",
	"VITRIN_LOG_FORMAT",
}

func TestLoad(t *testing.T) {
	cleanupEnv := func() {
		for _, name := range configEnvVars {
			os.Unsetenv(name)
		}
	}

	// Load also reads ./config.yaml and ./.env, keep it away from the repo
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.Source != "file" {
			t.Errorf("Catalog.Source = %s, want file", cfg.Catalog.Source)
		}
		if cfg.Catalog.FilePath != "./data/catalog.json" {
			t.Errorf("Catalog.FilePath = %s, want ./data/catalog.json", cfg.Catalog.FilePath)
		}
		if !cfg.Catalog.SharedFeed {
			t.Error("Catalog.SharedFeed = false, want true")
		}
		if cfg.Catalog.RefreshTTL != 5*time.Minute {
			t.Errorf("Catalog.RefreshTTL = %v, want 5m", cfg.Catalog.RefreshTTL)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 720*time.Hour {
			t.Errorf("Cache.TTL = %v, want 720h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Catalog != 1000 {
			t.Errorf("RateLimit.Catalog = %d, want 1000", cfg.RateLimit.Catalog)
		}
		if cfg.Search.FallbackLooseLimit != 12 || cfg.Search.FallbackPopularLimit != 8 {
			t.Errorf("Search fallback limits = %d/%d, want 12/8", cfg.Search.FallbackLooseLimit, cfg.Search.FallbackPopularLimit)
		}
		if cfg.Search.SuggestionLimit != 8 {
			t.Errorf("Search.SuggestionLimit = %d, want 8", cfg.Search.SuggestionLimit)
		}
		if cfg.Search.RecentSearchLimit != 10 {
			t.Errorf("Search.RecentSearchLimit = %d, want 10", cfg.Search.RecentSearchLimit)
		}
		if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v, want info/json", cfg.Log)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VITRIN_SERVER_PORT", "9090")
		os.Setenv("VITRIN_SERVER_ENVIRONMENT", "production")
		os.Setenv("VITRIN_CATALOG_SOURCE", "http")
		os.Setenv("VITRIN_CATALOG_BASE_URL", "https://catalog.example.com/rest/v1")
		os.Setenv("VITRIN_CATALOG_API_KEY", "custom-api-key")
		os.Setenv("VITRIN_CATALOG_SHARED_FEED", "false")
		os.Setenv("VITRIN_CATALOG_REFRESH_TTL", "1m")
		os.Setenv("VITRIN_CACHE_TYPE", "redis")
		os.Setenv("VITRIN_CACHE_REDIS_URL", "redis://localhost:6379")
		os.Setenv("VITRIN_CACHE_TTL", "24h")
		os.Setenv("VITRIN_RATELIMIT_PER_IP", "200")
		os.Setenv("VITRIN_RATELIMIT_CATALOG", "2000")
		os.Setenv("VITRIN_SEARCH_DEBUG", "true")
		os.Setenv("VITRIN_SEARCH_SUGGESTION_LIMIT", "5")
		os.Setenv("VITRIN_LOG_LEVEL", "debug")
		os.Setenv("VITRIN_LOG_FORMAT", "console")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.Source != "http" {
			t.Errorf("Catalog.Source = %s, want http", cfg.Catalog.Source)
		}
		if cfg.Catalog.BaseURL != "https://catalog.example.com/rest/v1" {
			t.Errorf("Catalog.BaseURL = %s", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.APIKey != "custom-api-key" {
			t.Errorf("Catalog.APIKey = %s, want custom-api-key", cfg.Catalog.APIKey)
		}
		if cfg.Catalog.SharedFeed {
			t.Error("Catalog.SharedFeed = true, want false")
		}
		if cfg.Catalog.RefreshTTL != time.Minute {
			t.Errorf("Catalog.RefreshTTL = %v, want 1m", cfg.Catalog.RefreshTTL)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Catalog != 2000 {
			t.Errorf("RateLimit.Catalog = %d, want 2000", cfg.RateLimit.Catalog)
		}
		if !cfg.Search.Debug {
			t.Error("Search.Debug = false, want true")
		}
		if cfg.Search.SuggestionLimit != 5 {
			t.Errorf("Search.SuggestionLimit = %d, want 5", cfg.Search.SuggestionLimit)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
			t.Errorf("Log = %+v, want debug/console", cfg.Log)
		}
	})

	t.Run("fails validation when http source has no base URL", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VITRIN_CATALOG_SOURCE", "http")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for missing base URL")
		}
		if !strings.Contains(err.Error(), "catalog base URL is required") {
			t.Errorf("Load() error = %v, want 'catalog base URL is required'", err)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VITRIN_CACHE_TYPE", "invalid")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when redis URL missing for redis cache", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VITRIN_CACHE_TYPE", "redis")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for missing Redis URL")
		}
	})

	t.Run("reads config.yaml from the working directory", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		content := `
server:
  port: "7070"
search:
  fallback_popular_limit: 4
`
		if err := os.WriteFile("config.yaml", []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test config file: %v", err)
		}
		defer os.Remove("config.yaml")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if cfg.Search.FallbackPopularLimit != 4 {
			t.Errorf("Search.FallbackPopularLimit = %d, want 4", cfg.Search.FallbackPopularLimit)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2

# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_COMMENTED")
		defer func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
		}()

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		os.Setenv("TEST_OVERRIDE", "existing-value")
		defer os.Unsetenv("TEST_OVERRIDE")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog: CatalogConfig{Source: "file", FilePath: "./data/catalog.json"},
			Cache:   CacheConfig{Type: "memory"},
			Log:     LogConfig{Format: "json"},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails for unknown catalog source", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.Source = "ftp"
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for unknown source")
		}
	})

	t.Run("fails for file source without path", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.FilePath = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for missing file path")
		}
	})

	t.Run("validates http source with base URL", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.Source = "http"
		cfg.Catalog.BaseURL = "https://catalog.example.com"
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails for invalid cache type", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "invalid-type"
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for invalid cache type")
		}
	})

	t.Run("validates redis cache type with URL", func(t *testing.T) {
		cfg := valid()
		cfg.Cache = CacheConfig{Type: "redis", RedisURL: "redis://localhost:6379"}
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil for valid redis config", err)
		}
	})

	t.Run("fails for redis cache without URL", func(t *testing.T) {
		cfg := valid()
		cfg.Cache = CacheConfig{Type: "redis"}
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for redis without URL")
		}
	})

	t.Run("fails for unknown log format", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Format = "xml"
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for unknown log format")
		}
	})
}
