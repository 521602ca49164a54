package search

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/sokoni-cloud/sokoni/internal/domain"
	"github.com/sokoni-cloud/sokoni/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterCoreMetrics()
	os.Exit(m.Run())
}

type mockRepo struct {
	searchFn func(ctx context.Context, vector []float32, k, numCandidates int) ([]domain.Product, error)
}

func (m *mockRepo) SearchKNN(ctx context.Context, vector []float32, k, numCandidates int) ([]domain.Product, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, vector, k, numCandidates)
	}
	return nil, nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	lastIn string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.lastIn = text
	return m.result, m.err
}

func strPtr(s string) *string { return &s }
func fPtr(v float64) *float64 { return &v }

func product(id string, price float64, color *string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        "item " + id,
		Description: "desc " + id,
		Price:       price,
		Currency:    "KES",
		OwnerID:     "seller-1",
		Color:       color,
	}
}

func newTestService(repo *mockRepo, emb *mockEmbedder) *Service {
	return New(repo, emb, 4, 4, 500)
}

func TestSearch_EmbedsKeywordAndQueries(t *testing.T) {
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, 4)}}

	var gotK, gotNC int
	repo := &mockRepo{
		searchFn: func(_ context.Context, _ []float32, k, nc int) ([]domain.Product, error) {
			gotK, gotNC = k, nc
			return []domain.Product{product("a", 10, nil)}, nil
		},
	}
	svc := newTestService(repo, emb)

	hits, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "leather shoes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.lastIn != "leather shoes" {
		t.Errorf("embedded %q", emb.lastIn)
	}
	if gotK != 4 || gotNC != 500 {
		t.Errorf("unexpected k/candidates %d/%d", gotK, gotNC)
	}
	if len(hits) != 1 || hits[0].ID != "a" {
		t.Errorf("unexpected hits: %+v", hits)
	}
}

func TestSearch_EmptyKeyword(t *testing.T) {
	svc := newTestService(&mockRepo{}, &mockEmbedder{})

	_, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "  "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSearch_MaxPriceFilter(t *testing.T) {
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, 4)}}
	repo := &mockRepo{
		searchFn: func(_ context.Context, _ []float32, _, _ int) ([]domain.Product, error) {
			return []domain.Product{
				product("a", 50, strPtr("red")),
				product("b", 150, strPtr("blue")),
			}, nil
		},
	}
	svc := newTestService(repo, emb)

	hits, err := svc.Search(context.Background(), domain.SearchRequest{
		Keyword: "shoes",
		Filters: domain.SearchFilters{MaxPrice: fPtr(100)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "a" {
		t.Errorf("expected only the cheaper hit, got %+v", hits)
	}
}

func TestSearch_FiltersAreConjunctive(t *testing.T) {
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, 4)}}
	repo := &mockRepo{
		searchFn: func(_ context.Context, _ []float32, _, _ int) ([]domain.Product, error) {
			return []domain.Product{
				product("a", 50, strPtr("red")),  // passes both
				product("b", 50, strPtr("blue")), // fails color
				product("c", 150, strPtr("red")), // fails price
			}, nil
		},
	}
	svc := newTestService(repo, emb)

	hits, err := svc.Search(context.Background(), domain.SearchRequest{
		Keyword: "shoes",
		Filters: domain.SearchFilters{MaxPrice: fPtr(100), Color: strPtr("red")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "a" {
		t.Errorf("expected only the hit passing all filters, got %+v", hits)
	}
}

func TestSearch_MissingAttributeFails(t *testing.T) {
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, 4)}}
	repo := &mockRepo{
		searchFn: func(_ context.Context, _ []float32, _, _ int) ([]domain.Product, error) {
			return []domain.Product{product("a", 50, nil)}, nil
		},
	}
	svc := newTestService(repo, emb)

	hits, err := svc.Search(context.Background(), domain.SearchRequest{
		Keyword: "shoes",
		Filters: domain.SearchFilters{Color: strPtr("red")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("product without the attribute must be dropped, got %+v", hits)
	}
}

func TestSearch_OrderPreserved(t *testing.T) {
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, 4)}}
	repo := &mockRepo{
		searchFn: func(_ context.Context, _ []float32, _, _ int) ([]domain.Product, error) {
			return []domain.Product{
				product("first", 10, nil),
				product("second", 200, nil),
				product("third", 30, nil),
			}, nil
		},
	}
	svc := newTestService(repo, emb)

	hits, err := svc.Search(context.Background(), domain.SearchRequest{
		Keyword: "shoes",
		Filters: domain.SearchFilters{MaxPrice: fPtr(100)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 || hits[0].ID != "first" || hits[1].ID != "third" {
		t.Errorf("similarity order lost: %+v", hits)
	}
}

func TestSearch_ZeroHitsIsSuccess(t *testing.T) {
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, 4)}}
	svc := newTestService(&mockRepo{}, emb)

	hits, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "nothing like this"})
	if err != nil {
		t.Fatalf("zero hits must be success: %v", err)
	}
	if hits != nil {
		t.Errorf("expected nil, got %+v", hits)
	}
}

func TestSearch_DimensionMismatch(t *testing.T) {
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, 3)}}
	repo := &mockRepo{
		searchFn: func(_ context.Context, _ []float32, _, _ int) ([]domain.Product, error) {
			t.Fatal("index must not be queried with a malformed vector")
			return nil, nil
		},
	}
	svc := newTestService(repo, emb)

	_, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "shoes"})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSearch_EmbedderFailure(t *testing.T) {
	emb := &mockEmbedder{err: errors.New("provider down")}
	svc := newTestService(&mockRepo{}, emb)

	_, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "shoes"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_RepoFailure(t *testing.T) {
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: make([]float32, 4)}}
	repo := &mockRepo{
		searchFn: func(_ context.Context, _ []float32, _, _ int) ([]domain.Product, error) {
			return nil, domain.ErrIndexUnavailable
		},
	}
	svc := newTestService(repo, emb)

	_, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "shoes"})
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Errorf("expected ErrIndexUnavailable, got %v", err)
	}
}
