package catalog

import (
	"context"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// Repository defines the storage contract for catalog documents.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, doc *domain.Document) error
	Get(ctx context.Context, id string) (domain.Document, error)
	Delete(ctx context.Context, id string) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
