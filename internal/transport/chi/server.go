package chi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/globearc/internal/domain"
	logpkg "github.com/kailas-cloud/globearc/internal/logger"
	healthuc "github.com/kailas-cloud/globearc/internal/usecase/health"
	sceneuc "github.com/kailas-cloud/globearc/internal/usecase/scene"
)

// Seconds a client should wait before polling a scene that is still loading.
const retryAfterSeconds = "1"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the scene over HTTP.
type Server struct {
	scene         SceneService
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(scene SceneService, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		scene:  scene,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sceneNotReadyHandler,
		sentinelHandler(domain.ErrSceneBuildFailed, http.StatusInternalServerError, ErrorCodeSceneBuildFailed),
		sentinelHandler(domain.ErrArcNotFound, http.StatusNotFound, ErrorCodeArcNotFound),
		sentinelHandler(domain.ErrAssetNotFound, http.StatusNotFound, ErrorCodeAssetNotFound),
		sentinelHandler(domain.ErrInvalidViewport, http.StatusBadRequest, ErrorCodeInvalidViewport),
	}
	return s
}

// Routes registers all endpoints on r. The api middlewares wrap only the /v1 group.
func (s *Server) Routes(r chi.Router, api ...func(http.Handler) http.Handler) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/", s.WebClient)
	r.Get("/assets/{name}", s.GetAsset)
	r.Route("/v1", func(r chi.Router) {
		r.Use(api...)
		r.Get("/scene", s.GetScene)
		r.Get("/arcs", s.ListArcs)
		r.Get("/arcs/{index}", s.GetArc)
		r.Get("/viewport", s.FitViewport)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// GetScene handles GET /v1/scene.
func (s *Server) GetScene(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scene.Scene(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sceneToResponse(sc))
}

// ListArcs handles GET /v1/arcs. format=geojson switches to a FeatureCollection.
func (s *Server) ListArcs(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "geojson" {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "format must be json or geojson")
		return
	}

	sc, err := s.scene.Scene(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if format == "geojson" {
		data, err := arcsToGeoJSON(sc.Arcs).MarshalJSON()
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	writeJSON(w, http.StatusOK, ArcsResponse{Count: len(sc.Arcs), Arcs: arcsToResponse(sc.Arcs)})
}

// GetArc handles GET /v1/arcs/{index}.
func (s *Server) GetArc(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "arc index must be an integer")
		return
	}

	a, err := s.scene.Arc(r.Context(), i)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, arcToResponse(i, &a))
}

// FitViewport handles GET /v1/viewport.
func (s *Server) FitViewport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, err := strconv.Atoi(q.Get("width"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "width must be an integer")
		return
	}
	height, err := strconv.Atoi(q.Get("height"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "height must be an integer")
		return
	}
	var dpr float64
	if v := q.Get("dpr"); v != "" {
		dpr, err = strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "dpr must be a number")
			return
		}
	}

	fit, err := s.scene.Viewport(sceneuc.Viewport{Width: width, Height: height, DevicePixelRatio: dpr})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fit)
}

// GetAsset handles GET /assets/{name}.
func (s *Server) GetAsset(w http.ResponseWriter, r *http.Request) {
	a, err := s.scene.Asset(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("ETag", a.ETag())
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if etagMatches(r.Header.Get("If-None-Match"), a.ETag()) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", a.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data())
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSceneNotReady,
		domain.ErrSceneBuildFailed,
		domain.ErrArcNotFound,
		domain.ErrAssetNotFound,
		domain.ErrInvalidViewport,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// sceneNotReadyHandler answers 503 with Retry-After while the scene is loading.
func sceneNotReadyHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrSceneNotReady) {
		return false
	}
	w.Header().Set("Retry-After", retryAfterSeconds)
	writeError(w, http.StatusServiceUnavailable, ErrorCodeSceneNotReady, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	if !errors.Is(err, domain.ErrSceneNotReady) {
		log.Warn("domain error", zap.Error(err))
	}
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
