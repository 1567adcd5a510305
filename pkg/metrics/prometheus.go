package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerCalls   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	sourceUp        *prometheus.GaugeVec
	sourceLatency   *prometheus.HistogramVec
	transfers       *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
}

// New creates a recorder registered on the default Prometheus registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder on reg; tests pass a fresh registry.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		providerCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbridge_provider_calls_total",
				Help: "Total adapter calls by provider, operation and result",
			},
			[]string{"provider", "operation", "result"},
		),
		providerLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbridge_provider_call_duration_seconds",
				Help:    "Adapter call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),
		sourceUp: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finbridge_price_source_up",
				Help: "1 if the last call to the price source succeeded",
			},
			[]string{"source"},
		),
		sourceLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbridge_price_source_duration_seconds",
				Help:    "Price source call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		transfers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbridge_transfers_total",
				Help: "Routed transfers by provider and result",
			},
			[]string{"provider", "result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbridge_errors_total",
				Help: "Total number of internal errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordProviderCall records one adapter call.
func (r *Recorder) RecordProviderCall(provider, operation, result string, seconds float64) {
	r.providerCalls.WithLabelValues(provider, operation, result).Inc()
	r.providerLatency.WithLabelValues(provider, operation).Observe(seconds)
}

// RecordPriceSource records availability and latency of a price source.
func (r *Recorder) RecordPriceSource(source string, online bool, seconds float64) {
	up := 0.0
	if online {
		up = 1
	}
	r.sourceUp.WithLabelValues(source).Set(up)
	r.sourceLatency.WithLabelValues(source).Observe(seconds)
}

// RecordTransfer records a routed transfer outcome.
func (r *Recorder) RecordTransfer(provider, result string) {
	r.transfers.WithLabelValues(provider, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// Noop discards all measurements.
type Noop struct{}

func (Noop) RecordProviderCall(string, string, string, float64) {}
func (Noop) RecordPriceSource(string, bool, float64)            {}
func (Noop) RecordTransfer(string, string)                      {}
func (Noop) RecordError(string)                                 {}
