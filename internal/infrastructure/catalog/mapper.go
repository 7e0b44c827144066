package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vitrin/backend/internal/domain"
)

// currencySymbol is prefixed to prices the feed sends as bare numbers
const currencySymbol = "₺"

// feedRecord is a product as the hosted backend serves it. Older rows carry
// numeric ids and prices, newer rows strings, so both are accepted.
type feedRecord struct {
	ID            interface{} `json:"id"`
	Title         string      `json:"title"`
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory"`
	Season        string      `json:"season"`
	Store         string      `json:"store"`
	Brand         string      `json:"brand"`
	Price         interface{} `json:"price"`
	OriginalPrice interface{} `json:"originalPrice"`
	Rating        *float64    `json:"rating"`
	Likes         *float64    `json:"likes"`
	ShareDate     string      `json:"shareDate"`
	Description   string      `json:"description"`
	Image         string      `json:"image"`
}

// feedResponse wraps a page of products
type feedResponse struct {
	Products []feedRecord `json:"products"`
}

// MapToProduct converts a feed record to a domain product. Records without
// a usable id are rejected.
func MapToProduct(r feedRecord) (domain.Product, error) {
	id, err := parseID(r.ID)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:            id,
		Title:         strings.TrimSpace(r.Title),
		Category:      strings.TrimSpace(r.Category),
		Subcategory:   strings.TrimSpace(r.Subcategory),
		Season:        strings.TrimSpace(r.Season),
		Store:         strings.TrimSpace(r.Store),
		Brand:         strings.TrimSpace(r.Brand),
		Price:         formatPrice(r.Price),
		OriginalPrice: formatPrice(r.OriginalPrice),
		Rating:        clampRating(r.Rating),
		Likes:         clampLikes(r.Likes),
		ShareDate:     strings.TrimSpace(r.ShareDate),
		Description:   strings.TrimSpace(r.Description),
		ImageURL:      r.Image,
	}, nil
}

// MapRecords converts a feed page, skipping records without a usable id.
// The number of skipped records is returned for logging.
func MapRecords(records []feedRecord) ([]domain.Product, int) {
	products := make([]domain.Product, 0, len(records))
	skipped := 0
	for _, r := range records {
		p, err := MapToProduct(r)
		if err != nil {
			skipped++
			continue
		}
		products = append(products, p)
	}
	return products, skipped
}

func parseID(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || v < 0 || v > math.MaxInt32 {
			return 0, fmt.Errorf("invalid product id %v", v)
		}
		return int(v), nil
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || id < 0 {
			return 0, fmt.Errorf("invalid product id %q", v)
		}
		return id, nil
	}
	return 0, fmt.Errorf("missing product id")
}

// formatPrice keeps string prices as sent and renders numbers with the currency symbol
func formatPrice(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return currencySymbol + strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func clampRating(r *float64) *float64 {
	if r == nil || math.IsNaN(*r) {
		return nil
	}
	v := math.Max(0, math.Min(5, *r))
	return &v
}

func clampLikes(l *float64) int {
	if l == nil || *l < 0 || math.IsNaN(*l) {
		return 0
	}
	return int(*l)
}
