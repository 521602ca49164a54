package domain

import (
	"fmt"
	"strings"
)

// SearchFilters are the optional post-retrieval criteria. Each field is
// independently optional; supplied filters combine with AND semantics.
type SearchFilters struct {
	MaxPrice *float64
	Color    *string
	Size     *string
	Brand    *string
	Category *string
}

// SearchRequest is a free-text catalog search.
type SearchRequest struct {
	Keyword string
	Filters SearchFilters
}

// Validate checks the search request.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return fmt.Errorf("%w: keyword is required", ErrValidation)
	}
	return nil
}

// Match reports whether a product passes every supplied filter. A product
// lacking an optional attribute does not match when a filter on that
// attribute is supplied. Attribute matching is case-insensitive substring.
func (f *SearchFilters) Match(p *Product) bool {
	_, ok := f.FirstFailing(p)
	return ok
}

// FirstFailing evaluates the filters in a fixed order and names the first
// one the product fails, or returns ok when every filter passes.
func (f *SearchFilters) FirstFailing(p *Product) (string, bool) {
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return "max_price", false
	}
	if !attrContains(p.Color, f.Color) {
		return "color", false
	}
	if !attrContains(p.Size, f.Size) {
		return "size", false
	}
	if !attrContains(p.Brand, f.Brand) {
		return "brand", false
	}
	if !attrContains(p.Category, f.Category) {
		return "category", false
	}
	return "", true
}

func attrContains(attr, want *string) bool {
	if want == nil {
		return true
	}
	if attr == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*attr), strings.ToLower(*want))
}
