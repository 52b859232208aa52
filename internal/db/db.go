// Package db is the storage facade behind the scene cache.
package db

import (
	"context"
	"time"
)

// Store is a connected blob store.
type Store interface {
	Pinger
	BlobStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BlobStore keeps opaque values under string keys. A ttl <= 0 means no expiry.
type BlobStore interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte, ttl time.Duration) error
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
