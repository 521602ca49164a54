package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// Service handles catalog listing lifecycle with automatic vectorization.
type Service struct {
	repo       Repository
	normalizer *Normalizer
}

// New creates a catalog service.
func New(repo Repository, normalizer *Normalizer) *Service {
	return &Service{repo: repo, normalizer: normalizer}
}

// EnsureIndex makes sure the vector index exists. Safe to call concurrently.
func (s *Service) EnsureIndex(ctx context.Context) error {
	return s.repo.EnsureIndex(ctx)
}

// Add validates, vectorizes and indexes a new listing. A missing id is
// assigned server-side. Returns the stored product.
func (s *Service) Add(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	doc, err := s.normalizer.Normalize(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.repo.Upsert(ctx, &doc); err != nil {
		return domain.Product{}, fmt.Errorf("index product: %w", err)
	}
	return doc.Product, nil
}

// Get returns a listing by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return doc.Product, nil
}

// Update applies a sparse patch to an existing listing. The merged product
// is re-embedded and re-indexed whole so stale attributes never linger.
func (s *Service) Update(ctx context.Context, id string, patch domain.ProductUpdate) (domain.Product, error) {
	if patch.IsEmpty() {
		return domain.Product{}, fmt.Errorf("%w: update contains no fields", domain.ErrValidation)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product for update: %w", err)
	}

	merged := patch.Apply(current.Product)
	merged.ID = id

	doc, err := s.normalizer.Normalize(ctx, merged)
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.repo.Upsert(ctx, &doc); err != nil {
		return domain.Product{}, fmt.Errorf("reindex product: %w", err)
	}
	return doc.Product, nil
}

// Delete removes a listing. Deleting an unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
