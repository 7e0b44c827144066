package usecase

import (
	"cmp"
	"slices"

	"github.com/vitrin/backend/internal/domain"
)

// Default result caps for the fallback stages
const (
	defaultLooseLimit   = 12
	defaultPopularLimit = 8
)

// FallbackStrategy produces a result for a query that matched nothing.
// An empty result hands over to the next strategy.
type FallbackStrategy struct {
	Stage domain.Stage
	Run   func(products []domain.Product, query Query) []domain.Product
}

// LooseTokenStrategy re-tests the first word of the query as a plain
// substring and returns up to limit hits in catalog order.
func LooseTokenStrategy(limit int) FallbackStrategy {
	if limit <= 0 {
		limit = defaultLooseLimit
	}
	return FallbackStrategy{
		Stage: domain.StageFallbackLoose,
		Run: func(products []domain.Product, query Query) []domain.Product {
			word := query.FirstWord()
			if word == "" {
				return nil
			}

			var hits []domain.Product
			for _, p := range Dedupe(products) {
				if !foldProduct(p).anyFieldContains(word) {
					continue
				}
				hits = append(hits, p)
				if len(hits) == limit {
					break
				}
			}
			return hits
		},
	}
}

// PopularStrategy returns the limit most liked products
func PopularStrategy(limit int) FallbackStrategy {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	return FallbackStrategy{
		Stage: domain.StageFallbackPopular,
		Run: func(products []domain.Product, _ Query) []domain.Product {
			popular := Dedupe(products)
			slices.SortStableFunc(popular, func(a, b domain.Product) int {
				return cmp.Compare(b.Likes, a.Likes)
			})
			if len(popular) > limit {
				popular = popular[:limit]
			}
			return popular
		},
	}
}

// FallbackChain tries its strategies in order until one returns products
type FallbackChain []FallbackStrategy

// DefaultFallbackChain is the loose-token rescue followed by the popular list
func DefaultFallbackChain(looseLimit, popularLimit int) FallbackChain {
	return FallbackChain{
		LooseTokenStrategy(looseLimit),
		PopularStrategy(popularLimit),
	}
}

// Run returns the first non-empty strategy result and its stage, or
// StageEmpty when every strategy came back empty.
func (c FallbackChain) Run(products []domain.Product, query Query) ([]domain.Product, domain.Stage) {
	for _, strategy := range c {
		if result := strategy.Run(products, query); len(result) > 0 {
			return result, strategy.Stage
		}
	}
	return nil, domain.StageEmpty
}
