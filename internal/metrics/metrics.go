// Package metrics provides Prometheus metrics for the scoring pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds the pipeline metrics. One instance per process, registered
// against its own registry so the default Go collectors stay out of the
// scrape output.
type Manager struct {
	registry *prometheus.Registry

	framesScored    prometheus.Counter
	framesNoHand    prometheus.Counter
	framesFailed    *prometheus.CounterVec
	pipelineLatency prometheus.Histogram
	lastScore       prometheus.Gauge
}

// NewManager creates a metrics manager with its own registry.
func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Manager{
		registry: registry,
		framesScored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "signtutor",
			Name:      "frames_scored_total",
			Help:      "Frames that produced a score sample.",
		}),
		framesNoHand: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "signtutor",
			Name:      "frames_no_hand_total",
			Help:      "Frames skipped because no hand was detected.",
		}),
		framesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signtutor",
			Name:      "frames_failed_total",
			Help:      "Frames skipped by failure kind.",
		}, []string{"kind"}),
		pipelineLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "signtutor",
			Name:      "pipeline_seconds",
			Help:      "Per-frame capture, detect and submit latency.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05},
		}),
		lastScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "signtutor",
			Name:      "last_score",
			Help:      "Most recent similarity score.",
		}),
	}
}

// FrameScored records a scored frame and its score.
func (m *Manager) FrameScored(score float64) {
	m.framesScored.Inc()
	m.lastScore.Set(score)
}

// ObservePipeline records the per-frame latency from capture through
// frame submission, in seconds.
func (m *Manager) ObservePipeline(seconds float64) {
	m.pipelineLatency.Observe(seconds)
}

// FrameNoHand records a frame with no detected hand.
func (m *Manager) FrameNoHand() {
	m.framesNoHand.Inc()
}

// FrameFailed records a skipped frame by failure kind.
func (m *Manager) FrameFailed(kind string) {
	m.framesFailed.WithLabelValues(kind).Inc()
}

// Handler returns the HTTP handler serving the /metrics scrape endpoint.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
