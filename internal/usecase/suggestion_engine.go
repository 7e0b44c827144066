package usecase

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/vitrin/backend/internal/domain"
)

// Suggestion scores, highest wins
const (
	suggestExact        = 1000
	suggestPrefix       = 800
	suggestContains     = 600
	suggestAllWords     = 500
	suggestSomeWords    = 300
	suggestTolerant     = 200
	suggestLengthFactor = 100
)

// Typo tolerance: at least 70% of the query's characters must occur in the
// entry, and the query must have at least three characters.
const (
	tolerantRatioNum    = 7
	tolerantRatioDen    = 10
	tolerantMinQueryLen = 3
	defaultSuggestLimit = 8
)

// SuggestionKind names the branch that produced a suggestion list
type SuggestionKind string

const (
	SuggestionRecent      SuggestionKind = "recent"
	SuggestionSmartPrefix SuggestionKind = "smart_prefix"
	SuggestionScored      SuggestionKind = "scored"
)

type vocabEntry struct {
	text   string
	folded string
}

// SuggestionEngine produces autocomplete suggestions from static vocabulary
type SuggestionEngine struct {
	prefixes map[string][]string
	products []vocabEntry
	users    []vocabEntry
	popular  []string
	limit    int
}

// NewSuggestionEngine prepares the vocabulary for matching
func NewSuggestionEngine(vocab *domain.Vocabulary, limit int) *SuggestionEngine {
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	e := &SuggestionEngine{
		prefixes: make(map[string][]string),
		limit:    limit,
	}
	if vocab == nil {
		return e
	}

	for prefix, completions := range vocab.SmartPrefixes {
		e.prefixes[foldCase(strings.TrimSpace(prefix))] = slices.Clone(completions)
	}
	e.products = foldEntries(vocab.Products)
	e.users = foldEntries(vocab.Users)
	e.popular = slices.Clone(vocab.PopularSearches)
	return e
}

func foldEntries(values []string) []vocabEntry {
	entries := make([]vocabEntry, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		folded := foldCase(strings.TrimSpace(v))
		if folded == "" {
			continue
		}
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		entries = append(entries, vocabEntry{text: v, folded: folded})
	}
	return entries
}

// Suggest returns autocomplete suggestions for a raw, possibly partial query.
// An empty query yields the recent searches followed by popular searches.
func (e *SuggestionEngine) Suggest(raw string, mode domain.SuggestionMode, recent []string) ([]string, SuggestionKind) {
	q := foldCase(strings.TrimSpace(raw))
	if q == "" {
		return e.recentAndPopular(recent), SuggestionRecent
	}

	if mode != domain.SuggestUsers {
		if completions, ok := e.prefixes[q]; ok {
			return slices.Clone(completions), SuggestionSmartPrefix
		}
	}

	entries := e.products
	if mode == domain.SuggestUsers {
		entries = e.users
	}
	return e.scored(entries, q), SuggestionScored
}

// DidYouMean returns the best product suggestion for a query that found
// nothing, or "" when the best suggestion is the query itself.
func (e *SuggestionEngine) DidYouMean(raw string) string {
	q := foldCase(strings.TrimSpace(raw))
	if q == "" {
		return ""
	}
	suggestions := e.scored(e.products, q)
	if len(suggestions) == 0 || foldCase(suggestions[0]) == q {
		return ""
	}
	return suggestions[0]
}

func (e *SuggestionEngine) scored(entries []vocabEntry, q string) []string {
	type hit struct {
		text  string
		score int
	}

	var hits []hit
	for _, entry := range entries {
		if score := suggestionScore(entry.folded, q); score > 0 {
			hits = append(hits, hit{text: entry.text, score: score})
		}
	}

	slices.SortStableFunc(hits, func(a, b hit) int {
		return b.score - a.score
	})
	if len(hits) > e.limit {
		hits = hits[:e.limit]
	}

	result := make([]string, len(hits))
	for i, h := range hits {
		result[i] = h.text
	}
	return result
}

// suggestionScore rates a folded vocabulary entry against a folded query
func suggestionScore(entry, q string) int {
	score := 0
	switch {
	case entry == q:
		score = suggestExact
	case strings.HasPrefix(entry, q):
		score = suggestPrefix
	case strings.Contains(entry, q):
		score = suggestContains
	default:
		score = looseScore(entry, q)
	}

	if score == 0 {
		return 0
	}
	return score + suggestLengthFactor/utf8.RuneCountInString(entry)
}

// looseScore handles queries that are not a substring of the entry
func looseScore(entry, q string) int {
	words := strings.Fields(q)
	if len(words) > 1 {
		matched := 0
		for _, w := range words {
			if strings.Contains(entry, w) {
				matched++
			}
		}
		switch {
		case matched == len(words):
			return suggestAllWords
		case matched > 0:
			return suggestSomeWords
		}
		return 0
	}

	total := utf8.RuneCountInString(q)
	if total < tolerantMinQueryLen {
		return 0
	}
	present := 0
	for _, r := range q {
		if strings.ContainsRune(entry, r) {
			present++
		}
	}
	if present*tolerantRatioDen >= total*tolerantRatioNum {
		return suggestTolerant
	}
	return 0
}

func (e *SuggestionEngine) recentAndPopular(recent []string) []string {
	result := make([]string, 0, e.limit)
	seen := make(map[string]struct{})
	add := func(values []string) {
		for _, v := range values {
			if len(result) == e.limit {
				return
			}
			folded := foldCase(strings.TrimSpace(v))
			if folded == "" {
				continue
			}
			if _, dup := seen[folded]; dup {
				continue
			}
			seen[folded] = struct{}{}
			result = append(result, v)
		}
	}
	add(recent)
	add(e.popular)
	return result
}
