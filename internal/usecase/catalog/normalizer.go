package catalog

import (
	"context"
	"fmt"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// Normalizer turns a validated product into its indexed document form by
// embedding the description. Exactly one embedding call per normalization.
type Normalizer struct {
	embedder  Embedder
	vectorDim int
}

// NewNormalizer creates a normalizer that enforces the index vector dimension.
func NewNormalizer(embedder Embedder, vectorDim int) *Normalizer {
	return &Normalizer{embedder: embedder, vectorDim: vectorDim}
}

// Normalize embeds the product description and returns the indexable
// document. The description must already be validated as non-empty.
func (n *Normalizer) Normalize(ctx context.Context, p domain.Product) (domain.Document, error) {
	if err := p.Validate(); err != nil {
		return domain.Document{}, err
	}

	result, err := n.embedder.Embed(ctx, p.Description)
	if err != nil {
		return domain.Document{}, fmt.Errorf("vectorize description: %w", err)
	}

	if n.vectorDim > 0 && len(result.Embedding) != n.vectorDim {
		return domain.Document{}, fmt.Errorf(
			"vector dimension mismatch: got %d, want %d: %w",
			len(result.Embedding), n.vectorDim, domain.ErrDimensionMismatch,
		)
	}

	return domain.Document{
		Product:           p,
		DescriptionVector: result.Embedding,
	}, nil
}
