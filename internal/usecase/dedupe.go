package usecase

import "github.com/vitrin/backend/internal/domain"

// Dedupe keeps the first occurrence of each product id, preserving order
func Dedupe(products []domain.Product) []domain.Product {
	seen := make(map[int]struct{}, len(products))
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	return result
}
