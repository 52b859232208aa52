// Package assets loads the overlay meshes drawn on top of the globe. Their
// geometry is opaque to the server; it only serves the bytes to the client.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/globearc/internal/domain"
)

// Material describes how the client tints an overlay.
type Material struct {
	Color       string  `json:"color" yaml:"color"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	Transparent bool    `json:"transparent" yaml:"transparent"`
}

// Spec names an overlay and where to find its model file.
type Spec struct {
	Name     string   `yaml:"name"`
	Path     string   `yaml:"path"`
	Material Material `yaml:"material"`
}

// DefaultSpecs returns the coordinate grid and political borders overlays.
func DefaultSpecs() []Spec {
	return []Spec{
		{
			Name:     "grid",
			Path:     "models/world_grid_nofaces.obj",
			Material: Material{Color: "#ffffff", Opacity: 0.25, Transparent: true},
		},
		{
			Name:     "borders",
			Path:     "models/borders_3d_nofaces.obj",
			Material: Material{Color: "#00000f", Opacity: 1},
		},
	}
}

// Asset is a loaded overlay model.
type Asset struct {
	spec        Spec
	data        []byte
	etag        string
	contentType string
}

// Name returns the overlay name.
func (a *Asset) Name() string { return a.spec.Name }

// Spec returns the overlay definition the asset was loaded from.
func (a *Asset) Spec() Spec { return a.spec }

// Data returns the raw model bytes.
func (a *Asset) Data() []byte { return a.data }

// ETag returns a strong validator derived from the content hash.
func (a *Asset) ETag() string { return a.etag }

// ContentType returns the MIME type served for the model.
func (a *Asset) ContentType() string { return a.contentType }

// Loader reads overlay models relative to a base directory.
type Loader struct {
	baseDir string
}

// NewLoader creates a loader. Relative spec paths resolve against baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{baseDir: baseDir}
}

// Load reads the model file for spec.
func (l *Loader) Load(ctx context.Context, spec Spec) (*Asset, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("asset name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load asset %s: %w", spec.Name, err)
	}

	path := spec.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, path)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrAssetNotFound, spec.Name, path)
		}
		return nil, fmt.Errorf("read asset %s: %w", spec.Name, err)
	}

	return NewAsset(spec, data), nil
}

// NewAsset wraps model bytes already in memory.
func NewAsset(spec Spec, data []byte) *Asset {
	sum := sha256.Sum256(data)
	return &Asset{
		spec:        spec,
		data:        data,
		etag:        `"` + hex.EncodeToString(sum[:16]) + `"`,
		contentType: contentType(spec.Path),
	}
}

func contentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return "model/obj"
	case ".glb":
		return "model/gltf-binary"
	case ".gltf":
		return "model/gltf+json"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
