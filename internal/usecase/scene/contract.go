package scene

import (
	"context"

	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/repository/assets"
)

// DatasetLoader reads the edge data file.
type DatasetLoader interface {
	Load(ctx context.Context) (domain.Dataset, error)
}

// AssetLoader reads an overlay model.
type AssetLoader interface {
	Load(ctx context.Context, spec assets.Spec) (*assets.Asset, error)
}

// Cache stores built arcs by key. Implementations log their own failures;
// a miss and an error look the same to the assembler.
type Cache interface {
	Get(ctx context.Context, key string) ([]arc.Arc, bool)
	Put(ctx context.Context, key string, arcs []arc.Arc)
}
