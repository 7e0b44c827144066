package usecase

import (
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vitrin/backend/internal/domain"
)

// Field weights for a matching token
const (
	weightTitleExact    = 100
	weightTitlePrefix   = 80
	weightTitleContains = 60
	weightCategory      = 50
	weightSubcategory   = 50
	weightDescription   = 20
)

// Whole-phrase bonuses, multi-token queries only
const (
	phraseBonusTitle       = 50
	phraseBonusCategory    = 30
	phraseBonusDescription = 10
	matchRatioScale        = 100
)

// foldedProduct caches the case-folded searchable fields of a product
type foldedProduct struct {
	title       string
	category    string
	subcategory string
	description string
}

func foldProduct(p domain.Product) foldedProduct {
	return foldedProduct{
		title:       foldCase(p.Title),
		category:    foldCase(p.Category),
		subcategory: foldCase(p.Subcategory),
		description: foldCase(p.Description),
	}
}

// anyFieldContains reports whether the token occurs in any searchable field
func (f foldedProduct) anyFieldContains(token string) bool {
	return strings.Contains(f.title, token) ||
		strings.Contains(f.category, token) ||
		strings.Contains(f.subcategory, token) ||
		strings.Contains(f.description, token)
}

// RelevanceScorer scores products against a tokenized query
type RelevanceScorer struct {
	logger *zerolog.Logger
}

// NewRelevanceScorer creates a scorer. A non-nil logger receives a debug
// line per matched candidate.
func NewRelevanceScorer(logger *zerolog.Logger) *RelevanceScorer {
	return &RelevanceScorer{logger: logger}
}

// Score computes the relevance of a product for the query.
// matched is false when no token occurs in any searchable field.
func (s *RelevanceScorer) Score(product domain.Product, query Query) (int, bool) {
	if len(query.Tokens) == 0 {
		return 0, false
	}

	fields := foldProduct(product)
	if len(query.Tokens) == 1 {
		score := tokenScore(fields, query.Tokens[0])
		return score, score > 0
	}

	score := 0
	matchedTokens := 0
	for _, token := range query.Tokens {
		if !fields.anyFieldContains(token) {
			continue
		}
		matchedTokens++
		score += tokenScore(fields, token)
	}
	if matchedTokens == 0 {
		return 0, false
	}

	score += matchedTokens * matchRatioScale / len(query.Tokens)
	score += phraseScore(fields, query.Normalized)
	return score, true
}

// tokenScore sums the field weights a single token earns. Title tiers are
// exclusive; the other fields add independently.
func tokenScore(f foldedProduct, token string) int {
	score := 0
	switch {
	case f.title == token:
		score += weightTitleExact
	case strings.HasPrefix(f.title, token):
		score += weightTitlePrefix
	case strings.Contains(f.title, token):
		score += weightTitleContains
	}
	if strings.Contains(f.category, token) {
		score += weightCategory
	}
	if strings.Contains(f.subcategory, token) {
		score += weightSubcategory
	}
	if strings.Contains(f.description, token) {
		score += weightDescription
	}
	return score
}

// phraseScore rewards products containing the whole query string
func phraseScore(f foldedProduct, phrase string) int {
	if phrase == "" {
		return 0
	}
	score := 0
	if strings.Contains(f.title, phrase) {
		score += phraseBonusTitle
	}
	if strings.Contains(f.category, phrase) || strings.Contains(f.subcategory, phrase) {
		score += phraseBonusCategory
	}
	if strings.Contains(f.description, phrase) {
		score += phraseBonusDescription
	}
	return score
}

// Rank scores every product and returns the matched ones ordered by score
// descending, then likes descending, then input order.
func (s *RelevanceScorer) Rank(products []domain.Product, query Query) []domain.ScoredCandidate {
	candidates := make([]domain.ScoredCandidate, 0)
	for _, p := range products {
		score, matched := s.Score(p, query)
		if !matched {
			continue
		}
		if s.logger != nil {
			s.logger.Debug().
				Int("id", p.ID).
				Str("title", p.Title).
				Int("score", score).
				Msg("candidate scored")
		}
		candidates = append(candidates, domain.ScoredCandidate{Product: p, Score: score, Matched: true})
	}

	slices.SortStableFunc(candidates, func(a, b domain.ScoredCandidate) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return b.Product.Likes - a.Product.Likes
	})
	return candidates
}

// Search returns the matched products in rank order
func (s *RelevanceScorer) Search(products []domain.Product, query Query) []domain.Product {
	ranked := s.Rank(products, query)
	result := make([]domain.Product, len(ranked))
	for i, c := range ranked {
		result[i] = c.Product
	}
	return result
}
