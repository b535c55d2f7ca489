package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Media gateway metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "customgpt",
			Subsystem: "media_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "customgpt",
			Subsystem: "media_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"method", "endpoint"},
	)

	// Generation counters
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "customgpt",
			Subsystem: "media_api",
			Name:      "generations_total",
			Help:      "Total media generation requests by kind and model",
		},
		[]string{"media_type", "model", "status"},
	)

	// Generation duration
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "customgpt",
			Subsystem: "media_api",
			Name:      "generation_duration_seconds",
			Help:      "End-to-end generation duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"media_type", "model"},
	)

	// Provider call counters
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "customgpt",
			Subsystem: "media_api",
			Name:      "provider_calls_total",
			Help:      "Total outbound provider calls",
		},
		[]string{"model", "status"},
	)

	// Provider call duration
	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "customgpt",
			Subsystem: "media_api",
			Name:      "provider_call_duration_seconds",
			Help:      "Outbound provider call duration in seconds",
			Buckets:   []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"model"},
	)
)

// RecordRequest records an HTTP request.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordGeneration records a media generation attempt.
func RecordGeneration(mediaType, model, status string, durationSec float64) {
	GenerationsTotal.WithLabelValues(mediaType, model, status).Inc()
	GenerationDuration.WithLabelValues(mediaType, model).Observe(durationSec)
}

// RecordProviderCall records an outbound provider call.
func RecordProviderCall(model, status string, durationSec float64) {
	ProviderCallsTotal.WithLabelValues(model, status).Inc()
	ProviderCallDuration.WithLabelValues(model).Observe(durationSec)
}
