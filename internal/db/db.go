package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces. Consumers
// depend on the narrow sub-interfaces, never on Store itself.
type Store interface {
	Pinger
	HashStore
	KVStore
	SortedSetStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based document operations.
type HashStore interface {
	// HReplace replaces the whole hash at key in a single transaction. Old
	// and new fields never mix, and a failed replace leaves the previous
	// hash intact.
	HReplace(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SortedSetStore provides timestamp-ordered append/read operations, used for
// per-user query history.
type SortedSetStore interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	// ZRevRange returns members ordered by descending score, from rank start
	// to rank stop inclusive.
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	// Refresh blocks until the index backfill scanner reports idle, so a
	// write issued before Refresh is visible to searches issued after it.
	Refresh(ctx context.Context, name string) error
}

// Searcher provides KNN search over FT indexes.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}
