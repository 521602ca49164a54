package catalog

import (
	"context"
	"testing"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

type mockRepo struct {
	ensureIndexFn func(ctx context.Context) error
	upsertFn      func(ctx context.Context, doc *domain.Document) error
	getFn         func(ctx context.Context, id string) (domain.Document, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockRepo) EnsureIndex(ctx context.Context) error {
	if m.ensureIndexFn != nil {
		return m.ensureIndexFn(ctx)
	}
	return nil
}

func (m *mockRepo) Upsert(ctx context.Context, doc *domain.Document) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, doc)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domain.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Document{}, domain.ErrNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
	lastIn string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.lastIn = text
	return m.result, m.err
}

func newTestService(t *testing.T, dim int) (*Service, *mockRepo, *mockEmbedder) {
	t.Helper()
	repo := &mockRepo{}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, dim)}}
	svc := New(repo, NewNormalizer(emb, dim))
	return svc, repo, emb
}

func strPtr(s string) *string { return &s }

func validProduct() domain.Product {
	return domain.Product{
		Name:        "Leather sandals",
		Description: "Handmade brown leather sandals",
		Price:       1500,
		Currency:    "KES",
		OwnerID:     "seller-1",
		Color:       strPtr("brown"),
	}
}
