package usecase

import (
	"github.com/rs/zerolog"

	"github.com/vitrin/backend/internal/domain"
)

// DiscoveryConfig holds configuration for the discovery engine
type DiscoveryConfig struct {
	LooseFallbackLimit   int
	PopularFallbackLimit int
	SuggestionLimit      int
	EnableDebugLogging   bool
}

// DiscoveryService turns a catalog snapshot and a user's search inputs into
// an ordered, deduplicated product list. It holds no per-request state and
// never mutates the catalog.
type DiscoveryService struct {
	hierarchy   *CategoryHierarchy
	scorer      *RelevanceScorer
	fallback    FallbackChain
	suggestions *SuggestionEngine
}

// NewDiscoveryService creates the engine over a fixed vocabulary
func NewDiscoveryService(vocab *domain.Vocabulary, config DiscoveryConfig, logger zerolog.Logger) *DiscoveryService {
	var scorerLogger *zerolog.Logger
	if config.EnableDebugLogging {
		l := logger.With().Str("component", "scorer").Logger()
		scorerLogger = &l
	}

	return &DiscoveryService{
		hierarchy:   NewCategoryHierarchy(),
		scorer:      NewRelevanceScorer(scorerLogger),
		fallback:    DefaultFallbackChain(config.LooseFallbackLimit, config.PopularFallbackLimit),
		suggestions: NewSuggestionEngine(vocab, config.SuggestionLimit),
	}
}

// Hierarchy exposes the category hierarchy used for category filtering
func (s *DiscoveryService) Hierarchy() *CategoryHierarchy {
	return s.hierarchy
}

// Suggestions exposes the autocomplete engine
func (s *DiscoveryService) Suggestions() *SuggestionEngine {
	return s.suggestions
}

// Discover runs the discovery pipeline:
// category filter -> facets -> relevance (or fallback) -> dedupe -> sort.
func (s *DiscoveryService) Discover(
	catalog []domain.Product,
	rawQuery string,
	category string,
	facets domain.FacetSelection,
	sortKey domain.SortKey,
) domain.DiscoveryResult {
	pool := s.hierarchy.FilterByCategory(catalog, category)
	pool = NewFacetFilter(facets).Apply(pool)

	if len(pool) == 0 {
		return domain.DiscoveryResult{Products: []domain.Product{}, Stage: domain.StageEmpty}
	}

	query := ParseQuery(rawQuery)
	stage := domain.StageBrowse
	matches := pool

	if !query.Empty() {
		stage = domain.StageScored
		matches = s.scorer.Search(pool, query)
		if len(matches) == 0 {
			matches, stage = s.fallback.Run(pool, query)
		}
	}

	products := SortProducts(Dedupe(matches), sortKey)
	result := domain.DiscoveryResult{
		Products: products,
		Total:    len(products),
		Stage:    stage,
	}
	if stage == domain.StageFallbackLoose || stage == domain.StageFallbackPopular {
		result.DidYouMean = s.suggestions.DidYouMean(rawQuery)
	}
	return result
}
