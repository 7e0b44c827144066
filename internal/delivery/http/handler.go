package http

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vitrin/backend/internal/domain"
	"github.com/vitrin/backend/internal/metrics"
	"github.com/vitrin/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	discovery   *usecase.DiscoveryService
	catalog     *usecase.CatalogService
	preferences *usecase.PreferenceService
	logger      zerolog.Logger
}

// NewHandler creates a new HTTP handler. Endpoints whose service is nil
// answer 503.
func NewHandler(
	discovery *usecase.DiscoveryService,
	catalog *usecase.CatalogService,
	preferences *usecase.PreferenceService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		discovery:   discovery,
		catalog:     catalog,
		preferences: preferences,
		logger:      logger.With().Str("component", "http").Logger(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vitrin-backend",
		"version": "1.0.0",
	})
}

// Discover handles product discovery requests
func (h *Handler) Discover(c *gin.Context) {
	if h.discovery == nil || h.catalog == nil {
		serviceUnavailable(c, "discovery")
		return
	}

	var req domain.DiscoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sortKey, err := domain.ParseSortKey(req.Sort)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := strings.TrimSpace(req.UserID)

	// Without an explicit sort the user's last choice applies
	if req.Sort == "" && userID != "" && h.preferences != nil {
		if prefs, err := h.preferences.Get(ctx, userID); err == nil {
			sortKey = prefs.Sort
		}
	}

	start := time.Now()
	catalog, err := h.catalog.Snapshot(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	result := h.discovery.Discover(catalog, req.Query, req.Category, req.Facets, sortKey)
	metrics.RecordDiscovery(string(result.Stage), time.Since(start))

	if userID != "" && h.preferences != nil {
		if err := h.preferences.RecordSearch(ctx, userID, req.Query); err != nil {
			h.logger.Warn().Err(err).Str("user_id", userID).Msg("recording recent search failed")
		}
		if req.Sort != "" {
			if err := h.preferences.SetSort(ctx, userID, sortKey); err != nil {
				h.logger.Warn().Err(err).Str("user_id", userID).Msg("storing sort preference failed")
			}
		}
	}

	c.JSON(http.StatusOK, result)
}

// Suggestions handles autocomplete requests
func (h *Handler) Suggestions(c *gin.Context) {
	if h.discovery == nil {
		serviceUnavailable(c, "suggestions")
		return
	}

	mode := domain.SuggestionMode(c.DefaultQuery("mode", string(domain.SuggestProducts)))
	if mode != domain.SuggestProducts && mode != domain.SuggestUsers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be 'product' or 'user'"})
		return
	}

	var recent []string
	if userID := strings.TrimSpace(c.Query("userId")); userID != "" && h.preferences != nil {
		prefs, err := h.preferences.Get(c.Request.Context(), userID)
		if err != nil {
			h.logger.Warn().Err(err).Str("user_id", userID).Msg("loading recent searches failed")
		} else {
			recent = prefs.RecentSearches
		}
	}

	suggestions, kind := h.discovery.Suggestions().Suggest(c.Query("q"), mode, recent)
	metrics.RecordSuggestion(string(kind))

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"kind":        kind,
	})
}

// GetPreferences returns a user's sort preference and recent searches
func (h *Handler) GetPreferences(c *gin.Context) {
	if h.preferences == nil {
		serviceUnavailable(c, "preferences")
		return
	}

	prefs, err := h.preferences.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

type updatePreferencesRequest struct {
	Sort string `json:"sort" binding:"required"`
}

// UpdatePreferences stores a user's sort preference
func (h *Handler) UpdatePreferences(c *gin.Context) {
	if h.preferences == nil {
		serviceUnavailable(c, "preferences")
		return
	}

	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sortKey, err := domain.ParseSortKey(req.Sort)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := c.Param("userId")
	if err := h.preferences.SetSort(ctx, userID, sortKey); err != nil {
		h.writeError(c, err)
		return
	}

	prefs, err := h.preferences.Get(ctx, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// ClearRecentSearches empties a user's recent searches
func (h *Handler) ClearRecentSearches(c *gin.Context) {
	if h.preferences == nil {
		serviceUnavailable(c, "preferences")
		return
	}

	if err := h.preferences.ClearRecentSearches(c.Request.Context(), c.Param("userId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCategory describes how a category token resolves in the hierarchy
func (h *Handler) GetCategory(c *gin.Context) {
	if h.discovery == nil {
		serviceUnavailable(c, "categories")
		return
	}

	name := c.Param("name")
	hierarchy := h.discovery.Hierarchy()

	if hierarchy.IsParent(name) {
		c.JSON(http.StatusOK, gin.H{
			"category": name,
			"isParent": true,
			"shared":   false,
			"accepted": []string{name},
		})
		return
	}

	parent, ok := hierarchy.ResolveParent(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category: " + name})
		return
	}

	accepted := make([]string, 0)
	for category := range hierarchy.AcceptedCategoriesFor(name) {
		accepted = append(accepted, category)
	}
	slices.Sort(accepted)

	c.JSON(http.StatusOK, gin.H{
		"category": name,
		"parent":   parent,
		"isParent": false,
		"shared":   hierarchy.IsCommonSubcategory(name),
		"accepted": accepted,
	})
}

// writeError maps domain errors to HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidSortKey):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCatalogUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrCacheUnavailable):
		status = http.StatusServiceUnavailable
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func serviceUnavailable(c *gin.Context, name string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": name + " service not configured",
	})
}
