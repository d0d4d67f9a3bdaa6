package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"SummaryHub/internal/domain"
	"SummaryHub/internal/middleware"
	"SummaryHub/internal/usecase"
)

// SummarizeService is the slice of the orchestration layer the handlers
// depend on.
type SummarizeService interface {
	Summarize(ctx context.Context, req usecase.SummarizeRequest) domain.ProcessingResult
}

// AIHandler serves the content processing endpoints.
type AIHandler struct {
	svc SummarizeService
}

// NewAIHandler constructs the handler.
func NewAIHandler(svc SummarizeService) *AIHandler {
	return &AIHandler{svc: svc}
}

// ProcessFile summarizes a stored file.
// POST /api/ai/process-file
func (h *AIHandler) ProcessFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req processFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateProcessRequest(req.FileID, req.Prompt); err != "" {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := h.svc.Summarize(r.Context(), usecase.SummarizeRequest{
		ItemID:   req.FileID,
		Kind:     domain.KindFile,
		Prompt:   req.Prompt,
		Provider: req.Provider,
		UserID:   middleware.UserIDFromContext(r.Context()),
	})
	writeResult(w, result)
}

// ProcessLink summarizes a saved link.
// POST /api/ai/process-link
func (h *AIHandler) ProcessLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req processLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateProcessRequest(req.LinkID, req.Prompt); err != "" {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := h.svc.Summarize(r.Context(), usecase.SummarizeRequest{
		ItemID:   req.LinkID,
		Kind:     domain.KindLink,
		Prompt:   req.Prompt,
		Provider: req.Provider,
		UserID:   middleware.UserIDFromContext(r.Context()),
	})
	writeResult(w, result)
}

func validateProcessRequest(itemID, prompt string) string {
	if strings.TrimSpace(itemID) == "" {
		return "item id is required"
	}
	if strings.TrimSpace(prompt) == "" {
		return "prompt is required"
	}
	return ""
}

func writeResult(w http.ResponseWriter, result domain.ProcessingResult) {
	body := aiResponse{
		Success:           result.Success,
		ProcessingResults: result.Output,
		Service:           result.Provider,
		Model:             result.Model,
		UserID:            result.UserID,
		ContentType:       string(result.Category),
		OriginalPrompt:    result.OriginalPrompt,
	}
	status := http.StatusOK
	if !result.Success {
		body.Error = result.Error.Message
		status = statusForKind(result.Error.Kind)
	}
	writeJSON(w, status, body)
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrUnknownProvider:
		return http.StatusBadRequest
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrUnsupportedContentType:
		return http.StatusUnsupportedMediaType
	case domain.ErrAuthFailure:
		return http.StatusUnauthorized
	case domain.ErrRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrTimeout:
		return http.StatusGatewayTimeout
	case domain.ErrUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
