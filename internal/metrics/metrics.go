// Package metrics records module load outcomes as Prometheus metrics.
//
// Metrics live in a private registry rather than the global default, so each
// run (and each test) starts from zero. WriteTextfile exports them in the
// node_exporter textfile format for monitoring systems that scrape files.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StatusSuccess labels a load that completed without error.
const StatusSuccess = "success"

// Recorder provides methods to record module metrics. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	moduleLoadsTotal      *prometheus.CounterVec
	moduleLoadDuration    *prometheus.HistogramVec
	credentialResolutions *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		moduleLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospectus_module_loads_total",
				Help: "Total number of module loads by outcome",
			},
			[]string{"module", "status"},
		),
		moduleLoadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prospectus_module_load_duration_seconds",
				Help:    "Duration of module loads in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"module"},
		),
		credentialResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospectus_credential_resolutions_total",
				Help: "Total number of API tokens resolved by origin",
			},
			[]string{"origin"},
		),
	}
}

// RecordLoad records one module load. status is StatusSuccess or an error kind.
func (r *Recorder) RecordLoad(module, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.moduleLoadsTotal.WithLabelValues(module, status).Inc()
	r.moduleLoadDuration.WithLabelValues(module).Observe(duration.Seconds())
}

// RecordCredential records a token resolved from origin.
func (r *Recorder) RecordCredential(origin string) {
	if r == nil {
		return
	}
	r.credentialResolutions.WithLabelValues(origin).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
