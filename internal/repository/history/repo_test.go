package history

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

type mockStore struct {
	zaddFn      func(ctx context.Context, key string, score float64, member string) error
	zrevRangeFn func(ctx context.Context, key string, start, stop int64) ([]string, error)
}

func (m *mockStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	if m.zaddFn != nil {
		return m.zaddFn(ctx, key, score, member)
	}
	return nil
}

func (m *mockStore) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.zrevRangeFn != nil {
		return m.zrevRangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func testEntry(query string, ts time.Time) domain.QueryHistoryEntry {
	return domain.QueryHistoryEntry{
		ID:        "e-" + query,
		UserID:    "u-1",
		Query:     query,
		Timestamp: ts,
	}
}

func TestAppend_ScoresByTimestamp(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotKey, gotMember string
	var gotScore float64
	ms.zaddFn = func(_ context.Context, key string, score float64, member string) error {
		gotKey, gotScore, gotMember = key, score, member
		return nil
	}

	if err := repo.Append(context.Background(), testEntry("red shoes", ts)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "sokoni:history:u-1" {
		t.Errorf("unexpected key %q", gotKey)
	}
	if gotScore != float64(ts.UnixNano()) {
		t.Errorf("unexpected score %v", gotScore)
	}

	var entry domain.QueryHistoryEntry
	if err := json.Unmarshal([]byte(gotMember), &entry); err != nil {
		t.Fatalf("member is not a JSON entry: %v", err)
	}
	if entry.Query != "red shoes" || entry.UserID != "u-1" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestAppend_StoreFailure(t *testing.T) {
	ms := &mockStore{
		zaddFn: func(_ context.Context, _ string, _ float64, _ string) error {
			return errors.New("connection refused")
		},
	}
	repo := New(ms)

	err := repo.Append(context.Background(), testEntry("x", time.Now()))
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Errorf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestRecent_MostRecentFirst(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	newer, _ := json.Marshal(testEntry("leather boots", ts))
	older, _ := json.Marshal(testEntry("red shoes", ts.Add(-time.Hour)))

	ms := &mockStore{
		zrevRangeFn: func(_ context.Context, key string, start, stop int64) ([]string, error) {
			if key != "sokoni:history:u-1" {
				t.Errorf("unexpected key %q", key)
			}
			if start != 0 || stop != 1 {
				t.Errorf("unexpected range %d..%d", start, stop)
			}
			return []string{string(newer), string(older)}, nil
		},
	}
	repo := New(ms)

	entries, err := repo.Recent(context.Background(), "u-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Query != "leather boots" || entries[1].Query != "red shoes" {
		t.Errorf("order lost: %+v", entries)
	}
}

func TestRecent_EmptyHistory(t *testing.T) {
	ms := &mockStore{
		zrevRangeFn: func(_ context.Context, _ string, _, _ int64) ([]string, error) {
			return nil, nil
		},
	}
	repo := New(ms)

	entries, err := repo.Recent(context.Background(), "nobody", 5)
	if err != nil {
		t.Fatalf("empty history must not be an error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty slice, got %v", entries)
	}
}

func TestRecent_NonPositiveN(t *testing.T) {
	called := false
	ms := &mockStore{
		zrevRangeFn: func(_ context.Context, _ string, _, _ int64) ([]string, error) {
			called = true
			return nil, nil
		},
	}
	repo := New(ms)

	entries, err := repo.Recent(context.Background(), "u-1", 0)
	if err != nil || entries != nil {
		t.Errorf("expected nil, nil; got %v, %v", entries, err)
	}
	if called {
		t.Error("store must not be hit for n <= 0")
	}
}
