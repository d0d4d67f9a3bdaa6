package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SummaryHub/internal/handler"
	"SummaryHub/internal/middleware"
)

// SetupMux builds the HTTP routing table with the middleware chain
// applied.
func SetupMux(svc handler.SummarizeService, directory handler.ProviderDirectory, logger *slog.Logger, authToken string) http.Handler {
	ai := handler.NewAIHandler(svc)
	providers := handler.NewProviderHandler(directory)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ai/process-file", ai.ProcessFile)
	mux.HandleFunc("/api/ai/process-link", ai.ProcessLink)
	mux.HandleFunc("/api/ai/providers", providers.Providers)
	mux.HandleFunc("/api/ai/health", providers.Health)
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.Chain(mux, logger, authToken)
}
