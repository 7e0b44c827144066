package usecase

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/vitrin/backend/internal/domain"
)

// ParsePrice strips every non-digit from a display price and reads the
// remaining digits as an integer. Prices with no digits, or too many to
// fit, parse to 0.
func ParsePrice(price string) int64 {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}

	value, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// parseRatingFloor reads a "<float>+" rating facet. ok is false when the
// facet is malformed, in which case it constrains nothing.
func parseRatingFloor(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasSuffix(trimmed, "+") {
		return 0, false
	}
	floor, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(trimmed, "+")), 64)
	if err != nil || math.IsNaN(floor) {
		return 0, false
	}
	return floor, true
}

// facetPredicate decides whether a single product survives one facet
type facetPredicate func(domain.Product) bool

// FacetFilter applies the AND-combination of the selected facets
type FacetFilter struct {
	predicates []facetPredicate
}

// NewFacetFilter compiles a facet selection into predicates. Absent and
// empty facets compile to nothing.
func NewFacetFilter(selection domain.FacetSelection) *FacetFilter {
	f := &FacetFilter{}

	if r := selection.PriceRange; r != nil {
		lower, upper := r.Min, math.Inf(1)
		if r.Max != nil {
			upper = *r.Max
		}
		f.predicates = append(f.predicates, func(p domain.Product) bool {
			price := float64(ParsePrice(p.Price))
			return price >= lower && price <= upper
		})
	}

	if stores := toSet(selection.Stores); stores != nil {
		f.predicates = append(f.predicates, func(p domain.Product) bool {
			_, ok := stores[p.StoreName()]
			return ok
		})
	}

	if floor, ok := parseRatingFloor(selection.Rating); ok {
		f.predicates = append(f.predicates, func(p domain.Product) bool {
			return p.Rating != nil && *p.Rating >= floor
		})
	}

	if subs := toSet(selection.Subcategories); subs != nil {
		f.predicates = append(f.predicates, func(p domain.Product) bool {
			_, ok := subs[p.Subcategory]
			return ok
		})
	}

	if seasons := toSet(selection.Seasons); seasons != nil {
		f.predicates = append(f.predicates, func(p domain.Product) bool {
			_, ok := seasons[p.Season]
			return ok
		})
	}

	return f
}

// Active reports whether any facet constrains the result
func (f *FacetFilter) Active() bool {
	return len(f.predicates) > 0
}

// Accept reports whether the product passes every selected facet
func (f *FacetFilter) Accept(p domain.Product) bool {
	for _, pred := range f.predicates {
		if !pred(p) {
			return false
		}
	}
	return true
}

// Apply returns the products passing every facet, preserving input order
func (f *FacetFilter) Apply(products []domain.Product) []domain.Product {
	if !f.Active() {
		return products
	}

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Accept(p) {
			result = append(result, p)
		}
	}
	return result
}

// toSet builds a membership set from the non-blank values, or nil if there are none
func toSet(values []string) map[string]struct{} {
	var set map[string]struct{}
	for _, v := range values {
		if strings.TrimFunc(v, unicode.IsSpace) == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(values))
		}
		set[v] = struct{}{}
	}
	return set
}
