package redis

import (
	"context"
	"strconv"

	"github.com/sokoni-cloud/sokoni/internal/db"
)

// ZAdd adds a member with the given score to a sorted set.
func (s *Store) ZAdd(ctx context.Context, key string, score float64, member string) error {
	cmd := s.b().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRevRange returns members ordered by descending score, ranks start..stop
// inclusive. A missing key yields an empty slice.
func (s *Store) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Zrange().
		Key(key).
		Min(strconv.FormatInt(start, 10)).
		Max(strconv.FormatInt(stop, 10)).
		Rev().
		Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return members, nil
}
