package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "unit_converter"

// Metrics holds the Prometheus collectors for the conversion service.
type Metrics struct {
	Conversions        *prometheus.CounterVec   // labels: category, outcome={success,<error kind>}
	ConversionDuration *prometheus.HistogramVec // labels: category
	CacheLookups       *prometheus.CounterVec   // labels: result={hit,miss}

	// Audit stream metrics.
	EventsPublished  prometheus.Counter
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates all service metrics and registers them with reg.
func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.Conversions,
		m.ConversionDuration,
		m.CacheLookups,
		m.EventsPublished,
		m.PublishErrors,
		m.PublisherEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversion requests by category and outcome.",
		}, []string{"category", "outcome"}),
		ConversionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time spent computing a conversion, excluding cache hits.",
			Buckets:   []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001},
		}, []string{"category"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Conversion events written to the audit topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Conversion events that failed to publish.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "publisher_enabled",
			Help:      "1 when conversion events are published, 0 otherwise.",
		}),
	}
}
