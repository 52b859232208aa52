package scene

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/repository/assets"
)

// Service serves the scene produced by a single assembler run.
type Service struct {
	future   *Future
	renderer Renderer
}

// NewService wraps a started build. renderer is used for viewport fits, which
// do not depend on the scene being ready.
func NewService(f *Future, renderer Renderer) *Service {
	return &Service{future: f, renderer: renderer}
}

// Scene returns the finalized scene, ErrSceneNotReady while loads are still in
// flight, or the build error.
func (s *Service) Scene(_ context.Context) (*Scene, error) {
	sc, err, ok := s.future.Poll()
	if !ok {
		return nil, domain.ErrSceneNotReady
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Ready reports whether the scene was built successfully.
func (s *Service) Ready() bool {
	sc, err, ok := s.future.Poll()
	return ok && err == nil && sc != nil
}

// Ping implements the health check contract. It fails until the scene is ready.
func (s *Service) Ping(ctx context.Context) error {
	if _, err := s.Scene(ctx); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}

// Arc returns one arc of the finalized scene.
func (s *Service) Arc(ctx context.Context, i int) (arc.Arc, error) {
	sc, err := s.Scene(ctx)
	if err != nil {
		return arc.Arc{}, err
	}
	return sc.Arc(i)
}

// Asset returns an overlay model of the finalized scene.
func (s *Service) Asset(ctx context.Context, name string) (*assets.Asset, error) {
	sc, err := s.Scene(ctx)
	if err != nil {
		return nil, err
	}
	return sc.Asset(name)
}

// Viewport fits the camera and drawing buffer to a resized client surface.
func (s *Service) Viewport(v Viewport) (ViewportFit, error) {
	return s.renderer.Fit(v)
}
