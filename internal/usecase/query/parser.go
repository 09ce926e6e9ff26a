// Package query turns raw search text into a structured ParsedQuery:
// normalized tokens, extracted filters, and intent flags.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// synonyms maps colloquial product terms to the canonical vocabulary
// used in catalog titles.
var synonyms = map[string]string{
	"mobile":   "smartphone",
	"cell":     "smartphone",
	"phone":    "smartphone",
	"tv":       "television",
	"laptop":   "notebook",
	"earbuds":  "headphones",
	"earphone": "headphones",
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "in": {}, "on": {}, "for": {},
	"of": {}, "with": {}, "buy": {}, "best": {}, "online": {},
}

// Intent vocabularies are substring-matched against the lowercased raw query.
var (
	intentCheap   = []string{"cheap", "budget", "sasta", "low price", "affordable"}
	intentPremium = []string{"premium", "expensive", "flagship", "pro", "max", "ultra"}
	intentLatest  = []string{"latest", "new", "2024", "2025", "gen", "generation"}
)

var (
	priceRe    = regexp.MustCompile(`(?:under|below|<)\s?(\d+)`)
	storageRe  = regexp.MustCompile(`(\d+)\s?(gb|tb)`)
	colorRe    = regexp.MustCompile(`\b(black|white|blue|red|green|gold|silver)\b`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)
)

// Parse extracts filters, intents, and normalized text from a raw
// query. It never fails; patterns that do not appear simply leave the
// corresponding field unset.
func Parse(raw string) domain.ParsedQuery {
	q := domain.ParsedQuery{Raw: raw}
	lower := strings.ToLower(raw)

	extractPrice(&q, lower)
	extractStorage(&q, lower)
	extractColor(&q, lower)
	extractIntents(&q, lower)
	q.Clean = cleanText(lower)

	return q
}

// extractPrice matches "under/below/< N" and flips the sort hint to
// ascending: a stated budget implies price sensitivity.
func extractPrice(q *domain.ParsedQuery, lower string) {
	m := priceRe.FindStringSubmatch(lower)
	if m == nil {
		return
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}
	q.MaxPrice = &v
	q.SortAscending = true
}

// extractStorage matches "N gb" / "N tb", normalizing TB to GB.
// Last match wins when the query mentions several capacities.
func extractStorage(q *domain.ParsedQuery, lower string) {
	matches := storageRe.FindAllStringSubmatch(lower, -1)
	if len(matches) == 0 {
		return
	}
	m := matches[len(matches)-1]
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return
	}
	if m[2] == "tb" {
		v *= 1024
	}
	q.StorageGB = &v
}

// extractColor scans the fixed color vocabulary as whole words, so
// "goldfish" does not match "gold". Last match wins.
func extractColor(q *domain.ParsedQuery, lower string) {
	matches := colorRe.FindAllString(lower, -1)
	if len(matches) == 0 {
		return
	}
	q.Color = matches[len(matches)-1]
}

func extractIntents(q *domain.ParsedQuery, lower string) {
	if containsAny(lower, intentCheap) {
		q.SortAscending = true
	}
	if containsAny(lower, intentPremium) {
		q.IsPremium = true
	}
	if containsAny(lower, intentLatest) {
		q.IsLatest = true
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// cleanText strips punctuation, drops stopwords, and substitutes
// synonyms. The result feeds the lexical and fuzzy scorers.
func cleanText(lower string) string {
	text := nonAlnumRe.ReplaceAllString(lower, "")

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if canonical, ok := synonyms[w]; ok {
			w = canonical
		}
		kept = append(kept, w)
	}

	return strings.Join(kept, " ")
}
