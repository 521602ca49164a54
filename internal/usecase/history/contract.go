package history

import (
	"context"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// Repository persists per-user query history.
type Repository interface {
	Append(ctx context.Context, entry domain.QueryHistoryEntry) error
	Recent(ctx context.Context, userID string, n int) ([]domain.QueryHistoryEntry, error)
}
