// Package observability exposes playback and ingestion metrics through a
// dedicated Prometheus registry.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "georeplay"

// Metrics bundles the collectors the replay pipeline reports into. Each
// instance owns its registry, so tests never collide on duplicate
// registration.
type Metrics struct {
	registry *prometheus.Registry

	RecordsIngested prometheus.Counter
	RecordsRejected prometheus.Counter
	EventsIngested  prometheus.Counter
	EventsRejected  prometheus.Counter
	StepsPlayed     prometheus.Counter

	BucketCount     prometheus.Gauge
	CurrentBucket   prometheus.Gauge
	CumulativeTotal prometheus.Gauge
}

// NewMetrics builds the collector set on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RecordsIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_ingested_total",
			Help:      "Timed records accepted during ingestion.",
		}),
		RecordsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_rejected_total",
			Help:      "Features dropped for unparseable dates or missing coordinates.",
		}),
		EventsIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_ingested_total",
			Help:      "Execution events accepted during ingestion.",
		}),
		EventsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_rejected_total",
			Help:      "Execution rows dropped as malformed.",
		}),
		StepsPlayed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_played_total",
			Help:      "Playback steps emitted, including seeks.",
		}),
		BucketCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "timeline_buckets",
			Help:      "Month buckets in the active timeline.",
		}),
		CurrentBucket: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "timeline_current_bucket",
			Help:      "Index of the bucket the cursor sits on.",
		}),
		CumulativeTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cumulative_total_euros",
			Help:      "Cumulative executed amount at the cursor, in euros.",
		}),
	}
}

// Handler serves this instance's registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for test assertions.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
