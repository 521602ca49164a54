package search

import (
	"context"
	"fmt"

	"github.com/sokoni-cloud/sokoni/internal/domain"
	"github.com/sokoni-cloud/sokoni/internal/metrics"
)

// Service answers free-text catalog searches: the keyword is embedded, the
// nearest listings are retrieved, then attribute filters prune the hits.
type Service struct {
	repo          Repository
	queryEmbedder Embedder
	vectorDim     int
	k             int
	numCandidates int
}

// New creates a search service. k bounds the result size, numCandidates
// sizes the runtime candidate pool for the vector index.
func New(repo Repository, queryEmbedder Embedder, vectorDim, k, numCandidates int) *Service {
	return &Service{
		repo:          repo,
		queryEmbedder: queryEmbedder,
		vectorDim:     vectorDim,
		k:             k,
		numCandidates: numCandidates,
	}
}

// Search runs the keyword through the embedding model and returns matching
// listings ordered by similarity. Filters are applied after retrieval, so
// results can shrink below k; zero hits is a valid outcome.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Product, error) {
	if err := req.Validate(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, err
	}

	result, err := s.queryEmbedder.Embed(ctx, req.Keyword)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	if s.vectorDim > 0 && len(result.Embedding) != s.vectorDim {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, fmt.Errorf(
			"query vector dimension mismatch: got %d, want %d: %w",
			len(result.Embedding), s.vectorDim, domain.ErrDimensionMismatch,
		)
	}

	hits, err := s.repo.SearchKNN(ctx, result.Embedding, s.k, s.numCandidates)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, fmt.Errorf("knn search: %w", err)
	}

	filtered := applyFilters(hits, req.Filters)

	metrics.SearchRequestsTotal.WithLabelValues("search", "success").Inc()
	return filtered, nil
}

// applyFilters prunes hits that fail any supplied filter, preserving the
// similarity order of the survivors.
func applyFilters(hits []domain.Product, f domain.SearchFilters) []domain.Product {
	if len(hits) == 0 {
		return nil
	}

	filtered := make([]domain.Product, 0, len(hits))
	for i := range hits {
		if name, ok := f.FirstFailing(&hits[i]); !ok {
			metrics.SearchHitsFiltered.WithLabelValues(name).Inc()
			continue
		}
		filtered = append(filtered, hits[i])
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
