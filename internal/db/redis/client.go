// Package redis implements db.Store on rueidis. Valkey speaks the same
// protocol for every command used here, so one client serves both.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/globearc/internal/db"
)

var _ db.Store = (*Store)(nil)

const (
	firstRetry = 50 * time.Millisecond
	maxRetry   = time.Second
)

// Config holds connection parameters.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	DB          int
	ClientName  string
	DialTimeout time.Duration
}

// Store is a rueidis-backed blob store.
type Store struct {
	client rueidis.Client
}

// NewStore dials the configured nodes.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: at least one address is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		ClientName:   cfg.ClientName,
		Dialer:       net.Dialer{Timeout: cfg.DialTimeout},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("redis: connect %v: %w", cfg.Addrs, err)
	}
	return &Store{client: client}, nil
}

// NewStoreForTest wraps an existing client, usually a rueidis mock.
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}

// Ping sends PING.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return &db.OpError{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases the client's connections.
func (s *Store) Close() { s.client.Close() }

// WaitForReady pings with doubling backoff until the server answers
// or timeout elapses. The first ping is sent immediately.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	delay := firstRetry
	for {
		err := s.Ping(ctx)
		if err == nil {
			return nil
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("redis: not ready after %s (last error: %v): %w", timeout, err, ctx.Err())
		case <-timer.C:
		}
		delay = min(delay*2, maxRetry)
	}
}
