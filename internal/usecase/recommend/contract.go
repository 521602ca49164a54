package recommend

import (
	"context"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// Repository runs KNN queries against the product index.
type Repository interface {
	SearchKNN(ctx context.Context, vector []float32, k, numCandidates int) ([]domain.Product, error)
}

// HistoryReader reads a user's most recent search queries.
type HistoryReader interface {
	Recent(ctx context.Context, userID string, n int) ([]domain.QueryHistoryEntry, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
