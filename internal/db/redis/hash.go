package redis

import (
	"context"

	"github.com/sokoni-cloud/sokoni/internal/db"
)

// HReplace replaces the whole hash at key via a MULTI/EXEC transaction
// around DEL and HSET. The commands apply together or not at all, so a
// failed replace leaves the previous hash intact and stale fields from an
// earlier write never survive a successful one.
func (s *Store) HReplace(ctx context.Context, key string, fields map[string]string) error {
	hset := s.b().Hset().Key(key).FieldValue()
	for k, v := range fields {
		hset = hset.FieldValue(k, v)
	}

	resps := s.client.DoMulti(ctx,
		s.b().Multi().Build(),
		s.b().Del().Key(key).Build(),
		hset.Build(),
		s.b().Exec().Build(),
	)
	for _, resp := range resps {
		if err := resp.Error(); err != nil {
			return &db.Error{Op: db.OpHReplace, Err: err}
		}
	}
	return nil
}

// HGetAll returns all fields of a hash. A missing key yields an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return m, nil
}

// Del deletes a key. Deleting a missing key is not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
