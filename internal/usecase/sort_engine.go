package usecase

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/vitrin/backend/internal/domain"
)

// shareDateLayouts are the date formats seen in catalog feeds, tried in order
var shareDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"02.01.2006 15:04",
}

// ParseShareDate parses a catalog share date. ok is false when the date is
// missing or in none of the known layouts.
func ParseShareDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range shareDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortProducts returns a copy of products ordered by key. Equal keys keep
// their input order. For date keys, products without a valid share date
// sort last in both directions. SortRelevance returns the input order.
func SortProducts(products []domain.Product, key domain.SortKey) []domain.Product {
	sorted := slices.Clone(products)

	switch key {
	case domain.SortPopular:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.Likes, a.Likes)
		})
	case domain.SortPriceLow:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(ParsePrice(a.Price), ParsePrice(b.Price))
		})
	case domain.SortPriceHigh:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(ParsePrice(b.Price), ParsePrice(a.Price))
		})
	case domain.SortDateNew:
		sortByDate(sorted, true)
	case domain.SortDateOld:
		sortByDate(sorted, false)
	}

	return sorted
}

func sortByDate(products []domain.Product, newestFirst bool) {
	type dated struct {
		product domain.Product
		at      time.Time
		valid   bool
	}

	keyed := make([]dated, len(products))
	for i, p := range products {
		at, ok := ParseShareDate(p.ShareDate)
		keyed[i] = dated{product: p, at: at, valid: ok}
	}

	slices.SortStableFunc(keyed, func(a, b dated) int {
		switch {
		case a.valid && !b.valid:
			return -1
		case !a.valid && b.valid:
			return 1
		case !a.valid && !b.valid:
			return 0
		}
		if newestFirst {
			return b.at.Compare(a.at)
		}
		return a.at.Compare(b.at)
	})

	for i, k := range keyed {
		products[i] = k.product
	}
}
