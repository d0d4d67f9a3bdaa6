package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"SummaryHub/internal/classifier"
	"SummaryHub/internal/domain"
	"SummaryHub/internal/metrics"
	"SummaryHub/internal/ports"
	"SummaryHub/internal/prompt"
	"SummaryHub/internal/provider"
)

// SummarizeRequest identifies one summarize call.
type SummarizeRequest struct {
	ItemID   string
	Kind     domain.ContentKind
	Prompt   string
	Provider string
	UserID   string
}

// ServiceDeps wires the collaborators into the orchestration service.
type ServiceDeps struct {
	Repository ports.ItemRepository
	Registry   *provider.Registry
	Logger     *slog.Logger
}

// Service is the stateless orchestration façade: classify, enhance,
// resolve, dispatch. Every failure path is represented in the returned
// ProcessingResult; nothing propagates past this boundary.
type Service struct {
	repository ports.ItemRepository
	registry   *provider.Registry
	logger     *slog.Logger
}

// NewService constructs the orchestration component.
func NewService(deps ServiceDeps) *Service {
	return &Service{
		repository: deps.Repository,
		registry:   deps.Registry,
		logger:     deps.Logger,
	}
}

// Summarize runs one request end to end and always returns a result.
func (s *Service) Summarize(ctx context.Context, req SummarizeRequest) domain.ProcessingResult {
	start := time.Now()

	item, err := s.lookup(ctx, req)
	if err != nil {
		return s.finish(req, "", "", start, failure(req, "", "", err))
	}

	category := classifier.Classify(item)
	enhanced := prompt.Enhance(req.Prompt, category, item.Name)

	adapter, err := s.registry.Resolve(req.Provider)
	if err != nil {
		// Unknown provider short-circuits before any adapter runs.
		return s.finish(req, "", category, start, failure(req, category, enhanced.ComposedText, err))
	}

	descriptor := adapter.Descriptor()
	payload := domain.URLPayload(item.URL)

	output, err := adapter.Process(ctx, payload, enhanced.ComposedText)
	if err != nil {
		result := failure(req, category, enhanced.ComposedText, err)
		result.Provider = descriptor.Name
		result.Model = descriptor.Model
		return s.finish(req, descriptor.Name, category, start, result)
	}

	result := domain.ProcessingResult{
		Success:        true,
		Output:         output.Text,
		Provider:       descriptor.Name,
		Model:          output.Model,
		Category:       category,
		ComposedPrompt: enhanced.ComposedText,
		OriginalPrompt: req.Prompt,
		UserID:         req.UserID,
		ItemID:         req.ItemID,
	}
	return s.finish(req, descriptor.Name, category, start, result)
}

func (s *Service) lookup(ctx context.Context, req SummarizeRequest) (domain.ContentItem, error) {
	if s.repository == nil {
		return domain.ContentItem{}, domain.NewAdapterError(domain.ErrUpstream, "item repository is not configured")
	}
	if req.Kind == domain.KindFile {
		return s.repository.GetFile(ctx, req.ItemID, req.UserID)
	}
	return s.repository.GetLink(ctx, req.ItemID, req.UserID)
}

func (s *Service) finish(req SummarizeRequest, providerName string, category domain.ContentCategory, start time.Time, result domain.ProcessingResult) domain.ProcessingResult {
	label := providerName
	if label == "" {
		label = "none"
	}

	outcome := "success"
	if !result.Success {
		outcome = string(result.Error.Kind)
	}
	metrics.SummarizeTotal.WithLabelValues(label, outcome).Inc()
	metrics.SummarizeDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if s.logger != nil {
		if result.Success {
			s.logger.Info("summarize done",
				"item", req.ItemID, "kind", req.Kind, "category", category,
				"provider", providerName, "duration_ms", time.Since(start).Milliseconds())
		} else {
			s.logger.Warn("summarize failed",
				"item", req.ItemID, "kind", req.Kind, "category", category,
				"provider", providerName, "error_kind", result.Error.Kind,
				"error", result.Error.Message)
		}
	}
	return result
}

// failure converts any error into a failed ProcessingResult carrying the
// taxonomy kind and its retryability.
func failure(req SummarizeRequest, category domain.ContentCategory, composedPrompt string, err error) domain.ProcessingResult {
	info := errorInfo(err)
	return domain.ProcessingResult{
		Success:        false,
		Category:       category,
		ComposedPrompt: composedPrompt,
		OriginalPrompt: req.Prompt,
		UserID:         req.UserID,
		ItemID:         req.ItemID,
		Error:          &info,
	}
}

func errorInfo(err error) domain.ErrorInfo {
	var adapterErr *domain.AdapterError
	if errors.As(err, &adapterErr) {
		return adapterErr.Info()
	}
	if errors.Is(err, domain.ErrItemNotFound) {
		return domain.ErrorInfo{Kind: domain.ErrNotFound, Message: err.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrorInfo{Kind: domain.ErrTimeout, Message: "the operation took too long to complete", Retryable: true}
	}
	return domain.ErrorInfo{Kind: domain.ErrUpstream, Message: err.Error(), Retryable: true}
}
