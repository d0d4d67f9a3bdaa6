package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "summaryhub_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// SummarizeTotal counts summarize calls by provider and outcome.
	SummarizeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "summaryhub_summarize_total",
		Help: "Summarize requests by provider and outcome.",
	}, []string{"provider", "outcome"})

	// SummarizeDuration tracks end-to-end summarize latency per provider.
	SummarizeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "summaryhub_summarize_duration_seconds",
		Help:    "Time spent on one summarize request.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider"})

	// ProviderAvailable tracks whether each provider passes its probe.
	ProviderAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "summaryhub_provider_available",
		Help: "Whether a provider is available (1) or not (0).",
	}, []string{"provider"})
)
