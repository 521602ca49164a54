package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sokoni-cloud/sokoni/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "history:"

// store is the consumer interface for query history (ISP).
type store interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo persists per-user query history as a timestamp-scored sorted set.
// Entries are append-only; nothing here mutates or deletes them.
type Repo struct {
	store store
}

// New creates a history repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Append stores a history entry scored by its timestamp. The entry id keeps
// identical query texts from collapsing into one sorted-set member.
func (r *Repo) Append(ctx context.Context, entry domain.QueryHistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	key := keyPrefix + entry.UserID
	score := float64(entry.Timestamp.UnixNano())
	if err := r.store.ZAdd(ctx, key, score, string(data)); err != nil {
		return fmt.Errorf("%w: zadd %s: %w", domain.ErrIndexUnavailable, key, err)
	}
	return nil
}

// Recent returns up to n entries, most recent first. A user with no history
// yields an empty slice, not an error.
func (r *Repo) Recent(ctx context.Context, userID string, n int) ([]domain.QueryHistoryEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	key := keyPrefix + userID
	members, err := r.store.ZRevRange(ctx, key, 0, int64(n-1))
	if err != nil {
		return nil, fmt.Errorf("%w: zrange %s: %w", domain.ErrIndexUnavailable, key, err)
	}

	entries := make([]domain.QueryHistoryEntry, 0, len(members))
	for _, m := range members {
		var entry domain.QueryHistoryEntry
		if err := json.Unmarshal([]byte(m), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal history entry for %s: %w", userID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
