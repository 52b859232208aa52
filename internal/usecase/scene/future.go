package scene

import (
	"context"
	"fmt"
	"sync"
)

// Future is the completion signal for the single load-then-build step.
type Future struct {
	done  chan struct{}
	once  sync.Once
	scene *Scene
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Done returns a channel closed once the scene is finalized or failed.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the scene is finalized or ctx is done.
func (f *Future) Wait(ctx context.Context) (*Scene, error) {
	select {
	case <-f.done:
		return f.scene, f.err
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for scene: %w", ctx.Err())
	}
}

// Poll returns the outcome without blocking. ok is false while loading.
func (f *Future) Poll() (s *Scene, err error, ok bool) { //nolint:revive // ok last reads naturally here
	select {
	case <-f.done:
		return f.scene, f.err, true
	default:
		return nil, nil, false
	}
}

func (f *Future) complete(s *Scene, err error) {
	f.once.Do(func() {
		f.scene, f.err = s, err
		close(f.done)
	})
}
