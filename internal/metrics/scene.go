package metrics

import "github.com/prometheus/client_golang/prometheus"

// Scene build Prometheus metrics.
var (
	SceneBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "globearc",
			Name:      "scene_build_duration_seconds",
			Help:      "Time from load start to a finalized scene",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SceneBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "globearc",
			Name:      "scene_builds_total",
			Help:      "Scene builds by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)

	SceneArcs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "globearc",
			Name:      "scene_arcs",
			Help:      "Number of arcs in the current scene",
		},
	)

	DatasetRecordsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "globearc",
			Name:      "dataset_records_skipped_total",
			Help:      "Malformed data records left out of the scene",
		},
	)

	AssetLoadFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "globearc",
			Name:      "asset_load_failures_total",
			Help:      "Overlay assets that failed to load",
		},
		[]string{"asset"},
	)

	SceneCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "globearc",
			Name:      "scene_cache_total",
			Help:      "Scene cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var sceneMetricsRegistered bool

// RegisterSceneMetrics registers Prometheus scene metrics. Must be called once from main.
func RegisterSceneMetrics() {
	if sceneMetricsRegistered {
		return
	}
	prometheus.MustRegister(SceneBuildDuration)
	prometheus.MustRegister(SceneBuildsTotal)
	prometheus.MustRegister(SceneArcs)
	prometheus.MustRegister(DatasetRecordsSkippedTotal)
	prometheus.MustRegister(AssetLoadFailuresTotal)
	prometheus.MustRegister(SceneCacheTotal)
	sceneMetricsRegistered = true
}
