package chi

import (
	"time"

	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/domain/colormap"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
	sceneuc "github.com/kailas-cloud/globearc/internal/usecase/scene"
)

// ErrorCode is the machine-readable error identifier in error responses.
type ErrorCode string

// Error codes returned by the API.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeSceneNotReady    ErrorCode = "scene_not_ready"
	ErrorCodeSceneBuildFailed ErrorCode = "scene_build_failed"
	ErrorCodeArcNotFound      ErrorCode = "arc_not_found"
	ErrorCodeAssetNotFound    ErrorCode = "asset_not_found"
	ErrorCodeInvalidViewport  ErrorCode = "invalid_viewport"
	ErrorCodeRateLimited      ErrorCode = "rate_limited"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SceneResponse is the body of GET /v1/scene.
type SceneResponse struct {
	ID          string                 `json:"id"`
	BuiltAt     time.Time              `json:"built_at"`
	DatasetHash string                 `json:"dataset_hash,omitempty"`
	FromCache   bool                   `json:"from_cache"`
	Globe       sceneuc.Globe          `json:"globe"`
	Light       sceneuc.Light          `json:"light"`
	Camera      sceneuc.Camera         `json:"camera"`
	Renderer    sceneuc.Renderer       `json:"renderer"`
	Overlays    []sceneuc.Overlay      `json:"overlays"`
	Arcs        []ArcResponse          `json:"arcs"`
	Skipped     []domain.SkippedRecord `json:"skipped,omitempty"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// ArcsResponse is the body of GET /v1/arcs.
type ArcsResponse struct {
	Count int           `json:"count"`
	Arcs  []ArcResponse `json:"arcs"`
}

// ArcResponse is one render-ready arc.
type ArcResponse struct {
	Index            int          `json:"index"`
	From             geo.GeoPoint `json:"from"`
	To               geo.GeoPoint `json:"to"`
	Weight           float64      `json:"weight"`
	Altitude         float64      `json:"altitude"`
	Color            string       `json:"color"`
	ColorRGB         colormap.RGB `json:"color_rgb"`
	SurfaceDistanceM float64      `json:"surface_distance_m"`
	ControlPoints    [4]geo.Vec3  `json:"control_points"`
	Points           []geo.Vec3   `json:"points"`
}

func arcToResponse(i int, a *arc.Arc) ArcResponse {
	e := a.Edge()
	return ArcResponse{
		Index:            i,
		From:             e.A,
		To:               e.B,
		Weight:           e.Weight,
		Altitude:         a.Altitude(),
		Color:            a.Color().Hex(),
		ColorRGB:         a.Color(),
		SurfaceDistanceM: a.SurfaceDistanceMeters(),
		ControlPoints:    a.Curve().Cage(),
		Points:           a.Points(),
	}
}

func arcsToResponse(arcs []arc.Arc) []ArcResponse {
	out := make([]ArcResponse, len(arcs))
	for i := range arcs {
		out[i] = arcToResponse(i, &arcs[i])
	}
	return out
}

func sceneToResponse(s *sceneuc.Scene) SceneResponse {
	return SceneResponse{
		ID:          s.ID,
		BuiltAt:     s.BuiltAt,
		DatasetHash: s.DatasetHash,
		FromCache:   s.FromCache,
		Globe:       s.Globe,
		Light:       s.Light,
		Camera:      s.Camera,
		Renderer:    s.Renderer,
		Overlays:    s.Overlays,
		Arcs:        arcsToResponse(s.Arcs),
		Skipped:     s.Skipped,
		Warnings:    s.Warnings,
	}
}
