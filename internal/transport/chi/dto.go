package chi

import (
	"time"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeNotFound           = "not_found"
	codeEmbeddingProvider  = "embedding_provider_error"
	codeIndexUnavailable   = "index_unavailable"
	codeInternalError      = "internal_error"
	codeUnauthorized       = "unauthorized"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type productRequest struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	OwnerID     string   `json:"ownerId"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	VideoURLs   []string `json:"videoUrls,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Size        *string  `json:"size,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

type productResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	OwnerID     string   `json:"ownerId"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	VideoURLs   []string `json:"videoUrls,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Size        *string  `json:"size,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

type productUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	VideoURLs   []string `json:"videoUrls,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Size        *string  `json:"size,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

type searchRequest struct {
	Keyword  string   `json:"keyword"`
	UserID   string   `json:"user_id,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Color    *string  `json:"color,omitempty"`
	Size     *string  `json:"size,omitempty"`
	Brand    *string  `json:"brand,omitempty"`
	Category *string  `json:"category,omitempty"`
}

type productListResponse struct {
	Items []productResponse `json:"items"`
	Total int               `json:"total"`
}

type recordSearchRequest struct {
	Query string `json:"query"`
}

type historyEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

type historyListResponse struct {
	Items []historyEntryResponse `json:"items"`
	Total int                    `json:"total"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (r *productRequest) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		OwnerID:     r.OwnerID,
		ImageURLs:   r.ImageURLs,
		VideoURLs:   r.VideoURLs,
		Color:       r.Color,
		Size:        r.Size,
		Brand:       r.Brand,
		Category:    r.Category,
	}
}

func (r *productUpdateRequest) toDomain() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		ImageURLs:   r.ImageURLs,
		VideoURLs:   r.VideoURLs,
		Color:       r.Color,
		Size:        r.Size,
		Brand:       r.Brand,
		Category:    r.Category,
	}
}

func (r *searchRequest) toDomain() domain.SearchRequest {
	return domain.SearchRequest{
		Keyword: r.Keyword,
		Filters: domain.SearchFilters{
			MaxPrice: r.MaxPrice,
			Color:    r.Color,
			Size:     r.Size,
			Brand:    r.Brand,
			Category: r.Category,
		},
	}
}

func productToResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		OwnerID:     p.OwnerID,
		ImageURLs:   p.ImageURLs,
		VideoURLs:   p.VideoURLs,
		Color:       p.Color,
		Size:        p.Size,
		Brand:       p.Brand,
		Category:    p.Category,
	}
}

func historyToResponse(e *domain.QueryHistoryEntry) historyEntryResponse {
	return historyEntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Query:     e.Query,
		Timestamp: e.Timestamp,
	}
}
