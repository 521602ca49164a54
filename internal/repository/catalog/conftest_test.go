package catalog

import (
	"context"
	"testing"

	"github.com/sokoni-cloud/sokoni/internal/db"
	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hReplaceFn    func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	refreshFn     func(ctx context.Context, name string) error

	refreshCalls int
}

func (m *mockStore) HReplace(ctx context.Context, key string, fields map[string]string) error {
	if m.hReplaceFn != nil {
		return m.hReplaceFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) Refresh(ctx context.Context, name string) error {
	m.refreshCalls++
	if m.refreshFn != nil {
		return m.refreshFn(ctx, name)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "products", 768), ms
}

func strPtr(s string) *string { return &s }

func testDocument(t *testing.T) domain.Document {
	t.Helper()
	return domain.Document{
		Product: domain.Product{
			ID:          "p-1",
			Name:        "Trail runner",
			Description: "running shoes",
			Price:       49.99,
			Currency:    "KES",
			OwnerID:     "u-1",
			ImageURLs:   []string{"https://img.example/a.jpg", "https://img.example/b.jpg"},
			Color:       strPtr("red"),
		},
		DescriptionVector: testVector(768),
	}
}

func testVector(dim int) []float32 {
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = float32(i) * 0.001
	}
	return vec
}
