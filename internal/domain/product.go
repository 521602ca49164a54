package domain

import (
	"fmt"
	"strings"
)

// KeyPrefix namespaces every Redis key owned by this service.
const KeyPrefix = "sokoni:"

// Product is the authoritative listing record. Optional attributes are
// pointers so that an absent attribute is never confused with an empty
// string; post-search filtering relies on the distinction.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Currency    string
	OwnerID     string
	ImageURLs   []string
	VideoURLs   []string

	Color    *string
	Size     *string
	Brand    *string
	Category *string
}

// Validate checks the required product fields.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: product description is required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: product price must be non-negative", ErrValidation)
	}
	if strings.TrimSpace(p.Currency) == "" {
		return fmt.Errorf("%w: currency is required", ErrValidation)
	}
	if strings.TrimSpace(p.OwnerID) == "" {
		return fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	return nil
}

// Document is the indexed form of a product: the record plus the embedding
// of its description. It is always written whole: any description-affecting
// change triggers a full re-embed and re-upsert.
type Document struct {
	Product
	DescriptionVector []float32
}

// ProductUpdate is a sparse patch applied to an existing product. Nil fields
// are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Currency    *string
	ImageURLs   []string
	VideoURLs   []string
	Color       *string
	Size        *string
	Brand       *string
	Category    *string
}

// IsEmpty reports whether the patch changes nothing.
func (u *ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Currency == nil && u.ImageURLs == nil && u.VideoURLs == nil &&
		u.Color == nil && u.Size == nil && u.Brand == nil && u.Category == nil
}

// Apply merges the patch into a copy of p and returns it.
func (u *ProductUpdate) Apply(p Product) Product {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Currency != nil {
		p.Currency = *u.Currency
	}
	if u.ImageURLs != nil {
		p.ImageURLs = u.ImageURLs
	}
	if u.VideoURLs != nil {
		p.VideoURLs = u.VideoURLs
	}
	if u.Color != nil {
		p.Color = u.Color
	}
	if u.Size != nil {
		p.Size = u.Size
	}
	if u.Brand != nil {
		p.Brand = u.Brand
	}
	if u.Category != nil {
		p.Category = u.Category
	}
	return p
}
