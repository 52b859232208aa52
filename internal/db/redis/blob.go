package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/globearc/internal/db"
)

// Fetch returns the value at key, or db.ErrNotFound.
func (s *Store) Fetch(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	switch {
	case rueidis.IsRedisNil(err):
		return nil, db.ErrNotFound
	case err != nil:
		return nil, &db.OpError{Op: db.OpGet, Key: key, Err: err}
	}
	return blob, nil
}

// Put writes blob at key, with an expiry when ttl > 0.
func (s *Store) Put(ctx context.Context, key string, blob []byte, ttl time.Duration) error {
	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = s.client.B().Set().Key(key).Value(rueidis.BinaryString(blob)).Ex(ttl).Build()
	} else {
		cmd = s.client.B().Set().Key(key).Value(rueidis.BinaryString(blob)).Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.OpError{Op: db.OpSet, Key: key, Err: err}
	}
	return nil
}

// Touch resets the expiry of key. It is a no-op when ttl <= 0 and is not
// an error for a missing key.
func (s *Store) Touch(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	secs := max(int64(ttl/time.Second), 1)
	if err := s.client.Do(ctx, s.client.B().Expire().Key(key).Seconds(secs).Build()).Error(); err != nil {
		return &db.OpError{Op: db.OpExpire, Key: key, Err: err}
	}
	return nil
}

// Delete removes key. Deleting a missing key succeeds.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(key).Build()).Error(); err != nil {
		return &db.OpError{Op: db.OpDel, Key: key, Err: err}
	}
	return nil
}
