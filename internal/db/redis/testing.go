package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an arbitrary rueidis client (usually a mock) in a Store.
func NewStoreForTest(client rueidis.Client) *Store {
	return &Store{client: client}
}
