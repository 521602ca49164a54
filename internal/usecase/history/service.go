package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// Service records and reads per-user search query history.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a history service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record appends a query to the user's history with a server-side timestamp
// and id, and returns the stored entry.
func (s *Service) Record(ctx context.Context, userID, query string) (domain.QueryHistoryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.QueryHistoryEntry{}, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(query) == "" {
		return domain.QueryHistoryEntry{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	entry := domain.QueryHistoryEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Query:     query,
		Timestamp: s.now().UTC(),
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return domain.QueryHistoryEntry{}, fmt.Errorf("append history: %w", err)
	}
	return entry, nil
}

// Recent returns up to n entries for the user, most recent first.
func (s *Service) Recent(ctx context.Context, userID string, n int) ([]domain.QueryHistoryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	entries, err := s.repo.Recent(ctx, userID, n)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}
