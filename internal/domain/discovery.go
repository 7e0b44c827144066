package domain

// SortKey selects the secondary ordering applied to a result list
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPopular   SortKey = "popularity"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortDateNew   SortKey = "date-new"
	SortDateOld   SortKey = "date-old"
)

// ParseSortKey validates a raw sort key. The empty string maps to SortRelevance.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(raw) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortPopular, SortPriceLow, SortPriceHigh, SortDateNew, SortDateOld:
		return SortKey(raw), nil
	}
	return "", ErrInvalidSortKey
}

// CategoryAll is the sentinel category token that disables category filtering
const CategoryAll = "all"

// Stage names the part of the pipeline that produced a result list
type Stage string

const (
	StageBrowse          Stage = "browse"           // no query, filtered catalog returned as-is
	StageScored          Stage = "scored"           // relevance scorer produced matches
	StageFallbackLoose   Stage = "fallback_loose"   // first-token substring rescue
	StageFallbackPopular Stage = "fallback_popular" // most liked products
	StageEmpty           Stage = "empty"            // filtered catalog was empty
)

// DiscoveryRequest represents a product discovery request
type DiscoveryRequest struct {
	Query    string         `json:"query"`
	Category string         `json:"category,omitempty"`
	Facets   FacetSelection `json:"facets"`
	Sort     string         `json:"sort,omitempty"`
	UserID   string         `json:"userId,omitempty"`
}

// DiscoveryResult is the ordered, deduplicated outcome of a discovery request
type DiscoveryResult struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Stage      Stage     `json:"stage"`
	DidYouMean string    `json:"didYouMean,omitempty"`
}

// SuggestionMode selects the vocabulary used for scored autocomplete
type SuggestionMode string

const (
	SuggestProducts SuggestionMode = "product"
	SuggestUsers    SuggestionMode = "user"
)

// Preferences is the per-user state persisted between discovery requests
type Preferences struct {
	Sort           SortKey  `json:"sort"`
	RecentSearches []string `json:"recentSearches"`
}

// Vocabulary is the static data behind autocomplete
type Vocabulary struct {
	SmartPrefixes   map[string][]string `yaml:"smart_prefixes" json:"smartPrefixes"`
	Products        []string            `yaml:"products" json:"products"`
	Users           []string            `yaml:"users" json:"users"`
	PopularSearches []string            `yaml:"popular_searches" json:"popularSearches"`
}
