package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sokoni-cloud/sokoni/internal/domain"
	healthuc "github.com/sokoni-cloud/sokoni/internal/usecase/health"
)

type mockCatalog struct {
	addFn    func(ctx context.Context, p domain.Product) (domain.Product, error)
	getFn    func(ctx context.Context, id string) (domain.Product, error)
	updateFn func(ctx context.Context, id string, patch domain.ProductUpdate) (domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockCatalog) Add(ctx context.Context, p domain.Product) (domain.Product, error) {
	if m.addFn != nil {
		return m.addFn(ctx, p)
	}
	return p, nil
}

func (m *mockCatalog) Get(ctx context.Context, id string) (domain.Product, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Product{}, domain.ErrNotFound
}

func (m *mockCatalog) Update(ctx context.Context, id string, patch domain.ProductUpdate) (domain.Product, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return domain.Product{}, domain.ErrNotFound
}

func (m *mockCatalog) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockSearch struct {
	searchFn func(ctx context.Context, req domain.SearchRequest) ([]domain.Product, error)
}

func (m *mockSearch) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Product, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return nil, nil
}

type mockRecommend struct {
	recommendFn func(ctx context.Context, userID string) ([]domain.Product, error)
}

func (m *mockRecommend) Recommend(ctx context.Context, userID string) ([]domain.Product, error) {
	if m.recommendFn != nil {
		return m.recommendFn(ctx, userID)
	}
	return nil, nil
}

type mockHistory struct {
	recordFn func(ctx context.Context, userID, query string) (domain.QueryHistoryEntry, error)
	recentFn func(ctx context.Context, userID string, n int) ([]domain.QueryHistoryEntry, error)
}

func (m *mockHistory) Record(ctx context.Context, userID, query string) (domain.QueryHistoryEntry, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, userID, query)
	}
	return domain.QueryHistoryEntry{ID: "e-1", UserID: userID, Query: query}, nil
}

func (m *mockHistory) Recent(ctx context.Context, userID string, n int) ([]domain.QueryHistoryEntry, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, n)
	}
	return nil, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

type testMocks struct {
	catalog   *mockCatalog
	search    *mockSearch
	recommend *mockRecommend
	history   *mockHistory
	health    *mockHealth
}

func newTestServer(t *testing.T) (*httptest.Server, *testMocks) {
	t.Helper()

	m := &testMocks{
		catalog:   &mockCatalog{},
		search:    &mockSearch{},
		recommend: &mockRecommend{},
		history:   &mockHistory{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}},
	}

	srv := NewServer(m.catalog, m.search, m.recommend, m.history, m.health, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, m
}
