package ports

import (
	"context"

	"SummaryHub/internal/domain"
)

// ProviderAdapter is the capability interface every LLM backend
// implements. Process performs exactly one outbound call per invocation;
// retry policy belongs to the caller.
type ProviderAdapter interface {
	Descriptor() domain.ProviderDescriptor
	Process(ctx context.Context, payload domain.ContentPayload, composedPrompt string) (domain.ProcessingOutput, error)
	Healthy(ctx context.Context) bool
}

// ItemRepository reads stored files and links scoped to their owner.
type ItemRepository interface {
	GetFile(ctx context.Context, id, userID string) (domain.ContentItem, error)
	GetLink(ctx context.Context, id, userID string) (domain.ContentItem, error)
}

// PageFetcher downloads a web page and reduces it to readable text for
// adapters without their own URL understanding.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}
