package usecase

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vitrin/backend/internal/domain"
)

func newTestDiscoveryService() *DiscoveryService {
	return NewDiscoveryService(testVocabulary(), DiscoveryConfig{}, zerolog.Nop())
}

func TestDiscover(t *testing.T) {
	svc := newTestDiscoveryService()
	upper := 500.0

	tests := []struct {
		name      string
		query     string
		category  string
		facets    domain.FacetSelection
		sort      domain.SortKey
		wantIDs   []int
		wantStage domain.Stage
	}{
		{
			name:      "single token query",
			query:     "gömlek",
			wantIDs:   []int{1, 2},
			wantStage: domain.StageScored,
		},
		{
			name:      "multi token query ranks full matches first",
			query:     "beyaz gömlek",
			wantIDs:   []int{1, 2},
			wantStage: domain.StageScored,
		},
		{
			name:      "duplicate ids collapse",
			query:     "elbise",
			wantIDs:   []int{3},
			wantStage: domain.StageScored,
		},
		{
			name:      "browse keeps catalog order without duplicates",
			wantIDs:   []int{1, 2, 3, 4, 5, 6, 7},
			wantStage: domain.StageBrowse,
		},
		{
			name:      "browse with sort",
			sort:      domain.SortPopular,
			wantIDs:   []int{6, 3, 5, 1, 2, 7, 4},
			wantStage: domain.StageBrowse,
		},
		{
			name:      "loose fallback",
			query:     "ş zzzz",
			wantIDs:   []int{7},
			wantStage: domain.StageFallbackLoose,
		},
		{
			name:      "popular fallback",
			query:     "xyznotfound",
			wantIDs:   []int{6, 3, 5, 1, 2, 7, 4},
			wantStage: domain.StageFallbackPopular,
		},
		{
			name:      "popular fallback honours the sort key",
			query:     "xyznotfound",
			sort:      domain.SortPriceLow,
			wantIDs:   []int{7, 2, 1, 3, 5, 4, 6},
			wantStage: domain.StageFallbackPopular,
		},
		{
			name:      "shared subcategory spans both clothing trees",
			category:  "Ayakkabı",
			wantIDs:   []int{4, 5},
			wantStage: domain.StageBrowse,
		},
		{
			name:      "category and facets narrow the pool before scoring",
			query:     "gömlek",
			category:  CategoryMen,
			facets:    domain.FacetSelection{PriceRange: &domain.PriceRange{Min: 100, Max: &upper}},
			wantIDs:   []int{1},
			wantStage: domain.StageScored,
		},
		{
			name:      "fallback stays inside the filtered pool",
			query:     "xyznotfound",
			category:  CategoryElectronics,
			wantIDs:   []int{6},
			wantStage: domain.StageFallbackPopular,
		},
		{
			name:      "empty pool",
			query:     "gömlek",
			facets:    domain.FacetSelection{PriceRange: &domain.PriceRange{Min: 100000}},
			wantIDs:   []int{},
			wantStage: domain.StageEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Discover(sampleCatalog(), tt.query, tt.category, tt.facets, tt.sort)
			if result.Stage != tt.wantStage {
				t.Errorf("Stage = %s, want %s", result.Stage, tt.wantStage)
			}
			if got := ids(result.Products); !equalIDs(got, tt.wantIDs) {
				t.Errorf("Products = %v, want %v", got, tt.wantIDs)
			}
			if result.Total != len(result.Products) {
				t.Errorf("Total = %d, want %d", result.Total, len(result.Products))
			}
		})
	}
}

func TestDiscoverCategoryExclusivity(t *testing.T) {
	svc := newTestDiscoveryService()
	catalog := []domain.Product{
		{ID: 1, Title: "Elbise", Category: CategoryWomen, Subcategory: "Elbise"},
		{ID: 2, Title: "Elbise", Category: CategoryMen, Subcategory: "Elbise"},
	}

	result := svc.Discover(catalog, "", "Elbise", domain.FacetSelection{}, domain.SortRelevance)
	if got := ids(result.Products); !equalIDs(got, []int{1}) {
		t.Errorf("Products = %v, want [1]", got)
	}
}

func TestDiscoverDidYouMean(t *testing.T) {
	svc := newTestDiscoveryService()

	result := svc.Discover(sampleCatalog(), "elbse", "", domain.FacetSelection{}, domain.SortRelevance)
	if result.Stage != domain.StageFallbackPopular {
		t.Fatalf("Stage = %s, want %s", result.Stage, domain.StageFallbackPopular)
	}
	if result.DidYouMean != "elbise" {
		t.Errorf("DidYouMean = %q, want %q", result.DidYouMean, "elbise")
	}

	scored := svc.Discover(sampleCatalog(), "elbise", "", domain.FacetSelection{}, domain.SortRelevance)
	if scored.DidYouMean != "" {
		t.Errorf("scored DidYouMean = %q, want empty", scored.DidYouMean)
	}
}

func TestDiscoverNonEmptyForNonEmptyPool(t *testing.T) {
	svc := newTestDiscoveryService()

	for _, q := range []string{"gömlek", "ş zzzz", "xyznotfound", "!!!", "a b c"} {
		result := svc.Discover(sampleCatalog(), q, "", domain.FacetSelection{}, domain.SortRelevance)
		if len(result.Products) == 0 {
			t.Errorf("Discover(%q) returned nothing for a non-empty pool", q)
		}
	}
}

func TestDiscoverIsIdempotent(t *testing.T) {
	svc := newTestDiscoveryService()
	catalog := sampleCatalog()

	first := svc.Discover(catalog, "beyaz gömlek", "", domain.FacetSelection{Rating: "4+"}, domain.SortDateNew)
	second := svc.Discover(catalog, "beyaz gömlek", "", domain.FacetSelection{Rating: "4+"}, domain.SortDateNew)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestDiscoverDoesNotMutateCatalog(t *testing.T) {
	svc := newTestDiscoveryService()
	catalog := sampleCatalog()
	before := sampleCatalog()

	svc.Discover(catalog, "", "", domain.FacetSelection{}, domain.SortPriceHigh)
	svc.Discover(catalog, "xyznotfound", "", domain.FacetSelection{}, domain.SortPopular)

	if !reflect.DeepEqual(catalog, before) {
		t.Error("catalog was modified")
	}
}

func TestDiscoverWithDebugLogging(t *testing.T) {
	svc := NewDiscoveryService(testVocabulary(), DiscoveryConfig{EnableDebugLogging: true}, zerolog.Nop())
	result := svc.Discover(sampleCatalog(), "gömlek", "", domain.FacetSelection{}, domain.SortRelevance)
	if result.Stage != domain.StageScored {
		t.Errorf("Stage = %s, want %s", result.Stage, domain.StageScored)
	}
}
