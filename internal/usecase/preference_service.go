package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vitrin/backend/internal/domain"
	"github.com/vitrin/backend/internal/infrastructure/cache"
)

const (
	defaultRecentLimit   = 10
	defaultPreferenceTTL = 720 * time.Hour
)

// PreferenceServiceConfig holds configuration for the preference service
type PreferenceServiceConfig struct {
	RecentLimit int
	TTL         time.Duration
}

// PreferenceService persists a user's last sort key and recent searches
type PreferenceService struct {
	cache       domain.CacheRepository
	recentLimit int
	ttl         time.Duration
	mu          sync.Mutex // serializes read-modify-write updates
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(cacheRepo domain.CacheRepository, config PreferenceServiceConfig) *PreferenceService {
	limit := config.RecentLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = defaultPreferenceTTL
	}

	return &PreferenceService{
		cache:       cacheRepo,
		recentLimit: limit,
		ttl:         ttl,
	}
}

func preferenceKey(userID string) string {
	return "prefs:" + userID
}

// Get returns the stored preferences, or defaults when none are stored
func (s *PreferenceService) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrInvalidRequest
	}

	value, err := s.cache.Get(ctx, preferenceKey(userID))
	if errors.Is(err, domain.ErrCacheMiss) {
		return &domain.Preferences{Sort: domain.SortRelevance, RecentSearches: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var prefs domain.Preferences
	if err := cache.Decode(value, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	if prefs.Sort == "" {
		prefs.Sort = domain.SortRelevance
	}
	if prefs.RecentSearches == nil {
		prefs.RecentSearches = []string{}
	}
	return &prefs, nil
}

// SetSort stores the user's last chosen sort key
func (s *PreferenceService) SetSort(ctx context.Context, userID string, key domain.SortKey) error {
	return s.update(ctx, userID, func(p *domain.Preferences) {
		p.Sort = key
	})
}

// RecordSearch puts a query at the front of the user's recent searches.
// Earlier case-insensitive duplicates are removed and the list is capped.
func (s *PreferenceService) RecordSearch(ctx context.Context, userID, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	return s.update(ctx, userID, func(p *domain.Preferences) {
		p.RecentSearches = pushRecent(p.RecentSearches, query, s.recentLimit)
	})
}

// ClearRecentSearches empties the user's recent searches
func (s *PreferenceService) ClearRecentSearches(ctx context.Context, userID string) error {
	return s.update(ctx, userID, func(p *domain.Preferences) {
		p.RecentSearches = []string{}
	})
}

func (s *PreferenceService) update(ctx context.Context, userID string, mutate func(*domain.Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	mutate(prefs)
	return s.cache.Set(ctx, preferenceKey(userID), prefs, s.ttl)
}

// pushRecent returns recent with query in front, duplicates removed, capped at limit
func pushRecent(recent []string, query string, limit int) []string {
	folded := foldCase(query)
	result := make([]string, 0, limit)
	result = append(result, query)
	for _, r := range recent {
		if len(result) == limit {
			break
		}
		if foldCase(r) == folded {
			continue
		}
		result = append(result, r)
	}
	return result
}
