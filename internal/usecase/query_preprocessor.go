package usecase

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minMultiTokenLength is the shortest token kept when a query has several words
const minMultiTokenLength = 2

// Query is a raw search string and its tokenization
type Query struct {
	Raw        string
	Normalized string   // trimmed, case-folded raw query
	Tokens     []string // case-folded whitespace tokens
}

// Empty reports whether the query carries no search text
func (q Query) Empty() bool {
	return q.Normalized == ""
}

// FirstWord returns the first whitespace token of the normalized query,
// before short tokens are discarded.
func (q Query) FirstWord() string {
	fields := strings.Fields(q.Normalized)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ParseQuery folds and tokenizes a raw query. Tokens shorter than two
// characters are dropped only when the query has more than one word.
func ParseQuery(raw string) Query {
	normalized := foldCase(strings.TrimSpace(raw))
	words := strings.Fields(normalized)

	q := Query{Raw: raw, Normalized: normalized}
	if len(words) <= 1 {
		q.Tokens = words
		return q
	}

	for _, word := range words {
		if utf8.RuneCountInString(word) < minMultiTokenLength {
			continue
		}
		q.Tokens = append(q.Tokens, word)
	}
	return q
}

// foldCase lower-cases text with Turkish rules (İ→i, I→ı).
// A Caser is stateful, so one is built per call.
func foldCase(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Turkish).String(s)
}

// containsFolded reports whether the folded field contains the folded needle
func containsFolded(field, needle string) bool {
	if field == "" || needle == "" {
		return false
	}
	return strings.Contains(foldCase(field), needle)
}
