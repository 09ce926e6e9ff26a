package domain

import "strings"

// ParsedQuery is the structured form of a raw search query: normalized
// text plus the filters and intent flags extracted from it. Absent
// filters stay nil/false; extraction never fails.
type ParsedQuery struct {
	Raw   string
	Clean string

	MaxPrice  *float64
	StorageGB *int
	Color     string

	SortAscending bool
	IsPremium     bool
	IsLatest      bool
}

// Tokens splits the cleaned query on whitespace.
func (q ParsedQuery) Tokens() []string {
	return strings.Fields(q.Clean)
}
