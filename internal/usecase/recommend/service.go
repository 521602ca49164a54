package recommend

import (
	"context"
	"fmt"

	"github.com/sokoni-cloud/sokoni/internal/domain"
	"github.com/sokoni-cloud/sokoni/internal/metrics"
)

// Service produces listing recommendations from a user's latest search
// query. The query text is re-embedded and run through the same KNN index
// the search path uses, without attribute filters.
type Service struct {
	repo          Repository
	history       HistoryReader
	queryEmbedder Embedder
	vectorDim     int
	k             int
	numCandidates int
}

// New creates a recommendation service.
func New(repo Repository, history HistoryReader, queryEmbedder Embedder, vectorDim, k, numCandidates int) *Service {
	return &Service{
		repo:          repo,
		history:       history,
		queryEmbedder: queryEmbedder,
		vectorDim:     vectorDim,
		k:             k,
		numCandidates: numCandidates,
	}
}

// Recommend returns up to k listings similar to the user's most recent
// search. A user with no history gets an empty result, never an error.
func (s *Service) Recommend(ctx context.Context, userID string) ([]domain.Product, error) {
	if userID == "" {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "error").Inc()
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	entries, err := s.history.Recent(ctx, userID, 1)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "error").Inc()
		return nil, fmt.Errorf("read query history: %w", err)
	}
	if len(entries) == 0 {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "success").Inc()
		return nil, nil
	}

	result, err := s.queryEmbedder.Embed(ctx, entries[0].Query)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "error").Inc()
		return nil, fmt.Errorf("vectorize recent query: %w", err)
	}
	if s.vectorDim > 0 && len(result.Embedding) != s.vectorDim {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "error").Inc()
		return nil, fmt.Errorf(
			"query vector dimension mismatch: got %d, want %d: %w",
			len(result.Embedding), s.vectorDim, domain.ErrDimensionMismatch,
		)
	}

	hits, err := s.repo.SearchKNN(ctx, result.Embedding, s.k, s.numCandidates)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "error").Inc()
		return nil, fmt.Errorf("knn search: %w", err)
	}

	metrics.SearchRequestsTotal.WithLabelValues("recommend", "success").Inc()
	return hits, nil
}
