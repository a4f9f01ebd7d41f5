package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// documentExtractions counts extractor outcomes by format and status.
	documentExtractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carf_document_extractions_total",
		Help: "Document extractions by format and outcome",
	}, []string{"format", "status"})

	// providerCalls counts generative provider calls by operation and result code.
	providerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carf_provider_calls_total",
		Help: "Generative model calls by operation and result",
	}, []string{"operation", "result"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carf_provider_call_duration_seconds",
		Help:    "Generative model call duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to ~32s
	}, []string{"operation"})

	audioSynthesis = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carf_audio_synthesis_total",
		Help: "Speech synthesis attempts by result (ok, degraded)",
	}, []string{"result"})

	rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carf_rate_limited_total",
		Help: "Requests rejected by the per-client limiter, by flow",
	}, []string{"flow"})

	httpRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carf_http_request_duration_seconds",
		Help:    "HTTP request duration by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func ObserveExtraction(format, status string) {
	documentExtractions.WithLabelValues(format, status).Inc()
}

// ObserveProviderCall records one call; result is "ok" or an error code.
func ObserveProviderCall(operation, result string, elapsed time.Duration) {
	providerCalls.WithLabelValues(operation, result).Inc()
	providerLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func ObserveAudio(result string) {
	audioSynthesis.WithLabelValues(result).Inc()
}

func ObserveRateLimited(flow string) {
	rateLimited.WithLabelValues(flow).Inc()
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
