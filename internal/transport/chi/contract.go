package chi

import (
	"context"

	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/repository/assets"
	healthuc "github.com/kailas-cloud/globearc/internal/usecase/health"
	sceneuc "github.com/kailas-cloud/globearc/internal/usecase/scene"
)

// SceneService serves the assembled scene.
type SceneService interface {
	Scene(ctx context.Context) (*sceneuc.Scene, error)
	Arc(ctx context.Context, i int) (arc.Arc, error)
	Asset(ctx context.Context, name string) (*assets.Asset, error)
	Viewport(v sceneuc.Viewport) (sceneuc.ViewportFit, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
