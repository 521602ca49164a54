package catalog

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// Hash field names shared by the index schema and search return lists.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldCurrency    = "currency"
	fieldOwnerID     = "ownerId"
	fieldImageURLs   = "imageUrls"
	fieldVideoURLs   = "videoUrls"
	fieldColor       = "color"
	fieldSize        = "size"
	fieldBrand       = "brand"
	fieldCategory    = "category"
	fieldVector      = "descriptionVector"
)

// urlSeparator joins URL lists into a single TAG hash field.
const urlSeparator = "|"

// ScalarFields lists every non-vector field, in the order search results
// return them.
func ScalarFields() []string {
	return []string{
		fieldName, fieldDescription, fieldPrice, fieldCurrency, fieldOwnerID,
		fieldImageURLs, fieldVideoURLs, fieldColor, fieldSize, fieldBrand, fieldCategory,
	}
}

// buildHashFields converts a Document into a flat map for HSET. Optional
// attributes are written only when present; an absent attribute never
// becomes a stored empty string.
func buildHashFields(doc *domain.Document) map[string]string {
	m := map[string]string{
		fieldName:        doc.Name,
		fieldDescription: doc.Description,
		fieldPrice:       strconv.FormatFloat(doc.Price, 'f', -1, 64),
		fieldCurrency:    doc.Currency,
		fieldOwnerID:     doc.OwnerID,
		fieldVector:      vectorToBytes(doc.DescriptionVector),
	}
	if len(doc.ImageURLs) > 0 {
		m[fieldImageURLs] = strings.Join(doc.ImageURLs, urlSeparator)
	}
	if len(doc.VideoURLs) > 0 {
		m[fieldVideoURLs] = strings.Join(doc.VideoURLs, urlSeparator)
	}
	setOptional(m, fieldColor, doc.Color)
	setOptional(m, fieldSize, doc.Size)
	setOptional(m, fieldBrand, doc.Brand)
	setOptional(m, fieldCategory, doc.Category)
	return m
}

func setOptional(m map[string]string, field string, v *string) {
	if v != nil {
		m[field] = *v
	}
}

// parseHashFields converts a flat hash map back into a Document.
func parseHashFields(id string, m map[string]string) domain.Document {
	doc := domain.Document{Product: ParseProductFields(id, m)}
	if raw, ok := m[fieldVector]; ok {
		doc.DescriptionVector = bytesToVector(raw)
	}
	return doc
}

// ParseProductFields converts stored scalar fields into a Product. Shared
// with the search repository, which receives the same hash fields from
// FT.SEARCH hits.
func ParseProductFields(id string, m map[string]string) domain.Product {
	p := domain.Product{
		ID:          id,
		Name:        m[fieldName],
		Description: m[fieldDescription],
		Currency:    m[fieldCurrency],
		OwnerID:     m[fieldOwnerID],
	}
	if raw, ok := m[fieldPrice]; ok {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			p.Price = f
		}
	}
	if raw, ok := m[fieldImageURLs]; ok && raw != "" {
		p.ImageURLs = strings.Split(raw, urlSeparator)
	}
	if raw, ok := m[fieldVideoURLs]; ok && raw != "" {
		p.VideoURLs = strings.Split(raw, urlSeparator)
	}
	p.Color = optionalField(m, fieldColor)
	p.Size = optionalField(m, fieldSize)
	p.Brand = optionalField(m, fieldBrand)
	p.Category = optionalField(m, fieldCategory)
	return p
}

func optionalField(m map[string]string, field string) *string {
	if v, ok := m[field]; ok {
		return &v
	}
	return nil
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
