// Package metrics exports triage counters and queue gauges to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

// Recorder owns a private registry so several recorders can coexist in tests.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	waiting    prometheus.Gauge
	assigned   *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triage_operations_total",
			Help: "Triage operations by outcome.",
		}, []string{"operation", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "triage_operation_duration_seconds",
			Help:    "Time spent inside triage operations.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"operation"}),
		waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "triage_waiting_patients",
			Help: "Patients in the waiting room.",
		}),
		assigned: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "triage_assigned_patients",
			Help: "Patients queued for a practitioner, by department.",
		}, []string{"category"}),
	}
	r.registry.MustRegister(r.operations, r.durations, r.waiting, r.assigned)
	return r
}

// Observe records the outcome of one operation. result is "success" or an
// error kind label.
func (r *Recorder) Observe(operation, result string, d time.Duration) {
	r.operations.WithLabelValues(operation, result).Inc()
	r.durations.WithLabelValues(operation).Observe(d.Seconds())
}

// SetQueues refreshes the gauges from a facility snapshot.
func (r *Recorder) SetQueues(s models.Snapshot) {
	r.waiting.Set(float64(s.Waiting))
	for _, d := range s.Departments {
		r.assigned.WithLabelValues(d.Category.String()).Set(float64(d.Assigned))
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
