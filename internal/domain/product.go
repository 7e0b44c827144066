package domain

// Product is a catalog entry as served by the hosted backend.
// Price and OriginalPrice keep the display form (currency symbol and digits).
type Product struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category,omitempty"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Season        string   `json:"season,omitempty"`
	Store         string   `json:"store,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Price         string   `json:"price,omitempty"`
	OriginalPrice string   `json:"originalPrice,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Likes         int      `json:"likes,omitempty"`
	ShareDate     string   `json:"shareDate,omitempty"`
	Description   string   `json:"description,omitempty"`
	ImageURL      string   `json:"image,omitempty"`
}

// StoreName returns the store the product is sold by, falling back to the brand.
func (p Product) StoreName() string {
	if p.Store != "" {
		return p.Store
	}
	return p.Brand
}

// PriceRange bounds the parsed price. A nil Max is unbounded.
type PriceRange struct {
	Min float64  `json:"min"`
	Max *float64 `json:"max,omitempty"`
}

// FacetSelection holds the active facet filters. A nil or empty field
// means the facet is not constrained. All present facets are AND-combined.
type FacetSelection struct {
	PriceRange    *PriceRange `json:"priceRange,omitempty"`
	Stores        []string    `json:"store,omitempty"`
	Rating        string      `json:"rating,omitempty"` // "<float>+", e.g. "4.5+"
	Subcategories []string    `json:"subcategory,omitempty"`
	Seasons       []string    `json:"season,omitempty"`
}

// ScoredCandidate is a product with its relevance score for a single query.
type ScoredCandidate struct {
	Product Product
	Score   int
	Matched bool
}
