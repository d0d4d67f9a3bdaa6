package handler

import (
	"context"
	"net/http"

	"SummaryHub/internal/domain"
)

// ProviderDirectory is the registry surface the discovery and health
// endpoints need.
type ProviderDirectory interface {
	List() []domain.ProviderDescriptor
	DefaultName() string
	HealthCheck(ctx context.Context) map[string]bool
}

// ProviderHandler serves provider discovery and health endpoints.
type ProviderHandler struct {
	directory ProviderDirectory
}

// NewProviderHandler constructs the handler.
func NewProviderHandler(directory ProviderDirectory) *ProviderHandler {
	return &ProviderHandler{directory: directory}
}

// Providers lists the registered adapters and their capabilities.
// GET /api/ai/providers
func (h *ProviderHandler) Providers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	defaultName := h.directory.DefaultName()
	descriptors := h.directory.List()
	infos := make([]providerInfo, 0, len(descriptors))
	for _, d := range descriptors {
		infos = append(infos, providerInfo{
			Name:                d.Name,
			Model:               d.Model,
			Default:             d.Name == defaultName,
			SupportsBinary:      d.SupportsBinary,
			SupportsURL:         d.SupportsURL,
			SupportsNativeVideo: d.SupportsNativeVideo,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": infos})
}

// Health probes every adapter live and reports overall status.
// GET /api/ai/health
func (h *ProviderHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	statuses := h.directory.HealthCheck(r.Context())
	overall := "ok"
	status := http.StatusOK
	for _, healthy := range statuses {
		if !healthy {
			overall = "degraded"
			status = http.StatusServiceUnavailable
			break
		}
	}
	writeJSON(w, status, healthResponse{Status: overall, Providers: statuses})
}
