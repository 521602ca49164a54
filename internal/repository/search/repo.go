package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/sokoni-cloud/sokoni/internal/db"
	"github.com/sokoni-cloud/sokoni/internal/domain"
	"github.com/sokoni-cloud/sokoni/internal/repository/catalog"
)

const vectorField = "descriptionVector"

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo issues KNN queries against the product index and maps hits back to
// products.
type Repo struct {
	store     store
	indexName string
	keyPrefix string
}

// New creates a search repository for the named index.
func New(s store, name string) *Repo {
	return &Repo{
		store:     s,
		indexName: domain.KeyPrefix + name + ":idx",
		keyPrefix: domain.KeyPrefix + name + ":",
	}
}

// SearchKNN returns up to k products nearest to the query vector, ordered by
// similarity. numCandidates sizes the runtime candidate pool; callers
// over-fetch when post-filtering follows.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, k, numCandidates int) ([]domain.Product, error) {
	q := &db.KNNQuery{
		IndexName:     r.indexName,
		Field:         vectorField,
		Vector:        vector,
		K:             k,
		NumCandidates: numCandidates,
		ReturnFields:  catalog.ScalarFields(),
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: knn search %s: %w", domain.ErrIndexUnavailable, r.indexName, err)
	}

	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	products := make([]domain.Product, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, r.keyPrefix)
		products = append(products, catalog.ParseProductFields(id, entry.Fields))
	}
	return products, nil
}
