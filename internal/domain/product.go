package domain

import "strconv"

// Product is a catalog item. The repository owns the record; the search
// core only reads snapshot copies.
type Product struct {
	ID          int64
	Title       string
	Description string
	Rating      float64
	Stock       int
	Price       float64
	MRP         float64
	Currency    string
	Metadata    map[string]string
}

// MetadataNumber parses a metadata value as a number. Missing or
// unparsable values yield 0; metadata is open-ended and upstream data
// is not trusted to be well-formed.
func (p Product) MetadataNumber(key string) float64 {
	raw, ok := p.Metadata[key]
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// UnitsSold returns the units_sold metadata field, 0 when absent.
func (p Product) UnitsSold() float64 {
	return p.MetadataNumber("units_sold")
}

// ClampedRating bounds the rating to [0, 5]. Scraped ratings are
// occasionally corrupt and wildly out of range.
func (p Product) ClampedRating() float64 {
	switch {
	case p.Rating < 0:
		return 0
	case p.Rating > 5:
		return 5
	default:
		return p.Rating
	}
}

// Clone returns a deep copy. Ranked results must not alias repository
// data.
func (p Product) Clone() Product {
	c := p
	if p.Metadata != nil {
		c.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}
