package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/globearc/internal/config"
	"github.com/kailas-cloud/globearc/internal/db"
	dbRedis "github.com/kailas-cloud/globearc/internal/db/redis"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/domain/colormap"
	logpkg "github.com/kailas-cloud/globearc/internal/logger"
	"github.com/kailas-cloud/globearc/internal/metrics"
	"github.com/kailas-cloud/globearc/internal/repository/assets"
	"github.com/kailas-cloud/globearc/internal/repository/dataset"
	"github.com/kailas-cloud/globearc/internal/repository/scenecache"
	chiTransport "github.com/kailas-cloud/globearc/internal/transport/chi"
	healthuc "github.com/kailas-cloud/globearc/internal/usecase/health"
	sceneuc "github.com/kailas-cloud/globearc/internal/usecase/scene"
	"github.com/kailas-cloud/globearc/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting globearc server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("data_path", cfg.Data.Path),
		zap.String("colormap", cfg.ColorMap.Name),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	metrics.RegisterSceneMetrics()

	lut, err := buildColorMap(&cfg)
	if err != nil {
		logger.Fatal("Invalid color map", zap.Error(err))
	}

	builder, err := arc.NewBuilder(arc.Config{
		AltitudeFactor: cfg.Arcs.AltitudeFactor,
		MinAltitude:    cfg.Arcs.MinAltitude,
		MaxAltitude:    cfg.Arcs.MaxAltitude,
		Divisions:      cfg.Arcs.Divisions,
	}, lut)
	if err != nil {
		logger.Fatal("Invalid arc settings", zap.Error(err))
	}

	dataLoader, err := dataset.New(cfg.Data.Path, dataset.Format(cfg.Data.Format), logger)
	if err != nil {
		logger.Fatal("Invalid data source", zap.Error(err))
	}

	sceneCfg := sceneuc.DefaultConfig()
	sceneCfg.Overlays = cfg.Assets.Overlays

	assembler := sceneuc.NewAssembler(
		sceneCfg, dataLoader, assets.NewLoader(cfg.Assets.BaseDir), builder, lutKey(lut), logger,
	)

	// Optional scene cache. A store that is down at startup disables it
	// rather than blocking the scene.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled {
		store, err := newStore(ctx, cfg.Cache)
		if err != nil {
			logger.Warn("Scene cache unavailable, building without it", zap.Error(err))
		} else {
			defer store.Close()
			logger.Info("Connected to cache store",
				zap.String("driver", cfg.Cache.Driver),
				zap.Strings("addrs", cfg.Cache.Addrs),
			)
			ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
			assembler.WithCache(scenecache.New(store, ttl, metrics.SceneCacheTotal, logger))
			cachePinger = store
		}
	}

	// Loads run in the background; requests get 503 until the scene is ready.
	future := assembler.Start(ctx)
	sceneSvc := sceneuc.NewService(future, sceneCfg.Renderer)
	healthSvc := healthuc.New(sceneSvc, cachePinger)

	server := chiTransport.NewServer(sceneSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.MaxAgeSec))
	r.Use(chiTransport.RateLimitMiddleware(cfg.HTTP.RateLimitPerMin, time.Minute))
	r.Use(metrics.Middleware())
	server.Routes(r, chiTransport.APIKeyAuth(cfg.Auth.APIKeys))

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func buildColorMap(cfg *config.Config) (*colormap.LUT, error) {
	name := cfg.ColorMap.Name
	lut, err := colormap.New(name, cfg.ColorMap.Resolution)
	if err != nil {
		return nil, fmt.Errorf("colormap %s: %w", name, err)
	}
	lut, err = lut.WithRange(cfg.ColorRange())
	if err != nil {
		return nil, fmt.Errorf("colormap %s range: %w", name, err)
	}
	return lut, nil
}

// lutKey identifies a color table in scene cache keys.
func lutKey(l *colormap.LUT) string {
	lo, hi := l.Range()
	return l.Name() + "/" + strconv.Itoa(l.Len()) + "/" +
		strconv.FormatFloat(lo, 'g', -1, 64) + ":" + strconv.FormatFloat(hi, 'g', -1, 64)
}

// newStore connects to the cache store and waits until it answers.
func newStore(ctx context.Context, cfg config.CacheConfig) (db.Store, error) {
	readiness := time.Duration(cfg.ReadinessTimeout) * time.Second
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:       cfg.Addrs,
		Password:    cfg.Password,
		ClientName:  "globearc",
		DialTimeout: readiness,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}
	if err := store.WaitForReady(ctx, readiness); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s store not ready: %w", cfg.Driver, err)
	}
	return store, nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.String("if_none_match", r.Header.Get("If-None-Match")),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
