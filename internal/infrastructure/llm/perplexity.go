package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"SummaryHub/internal/config"
	"SummaryHub/internal/domain"
	"SummaryHub/internal/ports"
)

const (
	perplexityProviderName = "perplexity"
	perplexitySystemPrompt = "You are a content analysis assistant. Provide clear, well-structured insights based on the provided content. Focus on key information and practical takeaways."
)

// PerplexityAdapter talks to the Perplexity API, which is wire-compatible
// with the OpenAI chat-completions contract. Web-search augmentation
// comes from the online model family. URL content is reduced to readable
// text by the page fetcher before being embedded in the user message.
type PerplexityAdapter struct {
	client  *openai.Client
	model   string
	apiKey  string
	fetcher ports.PageFetcher
}

var _ ports.ProviderAdapter = (*PerplexityAdapter)(nil)

// NewPerplexityAdapter builds an adapter from configuration. fetcher may
// be nil, in which case URLs are passed through as plain text.
func NewPerplexityAdapter(cfg config.PerplexityConfig, fetcher ports.PageFetcher) *PerplexityAdapter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &PerplexityAdapter{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		fetcher: fetcher,
	}
}

// Descriptor reports the perplexity capability set.
func (p *PerplexityAdapter) Descriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		Name:        perplexityProviderName,
		Model:       p.model,
		SupportsURL: true,
	}
}

// Process performs exactly one chat-completions call for the payload.
func (p *PerplexityAdapter) Process(ctx context.Context, payload domain.ContentPayload, composedPrompt string) (domain.ProcessingOutput, error) {
	if payload.Kind == domain.PayloadBinary {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrUnsupportedContentType, "perplexity cannot process binary documents")
	}
	if p.apiKey == "" {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrAuthFailure, "perplexity API key is not configured")
	}

	contentText := p.contentText(ctx, payload)
	userPrompt := fmt.Sprintf("Content to process:\n%s\n\nPrompt: %s", contentText, composedPrompt)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: perplexitySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	})
	if err != nil {
		return domain.ProcessingOutput{}, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrUpstream, "perplexity returned no response text")
	}

	model := resp.Model
	if model == "" {
		model = p.model
	}

	return domain.ProcessingOutput{Text: strings.TrimSpace(resp.Choices[0].Message.Content), Model: model}, nil
}

// contentText normalizes the payload into plain text. A failed page fetch
// degrades to the raw URL so the provider can still reason about it.
func (p *PerplexityAdapter) contentText(ctx context.Context, payload domain.ContentPayload) string {
	switch payload.Kind {
	case domain.PayloadText:
		return payload.Text
	case domain.PayloadURL:
		if p.fetcher != nil {
			if text, err := p.fetcher.FetchText(ctx, payload.URL); err == nil && text != "" {
				return text
			}
		}
		return payload.URL
	}
	return ""
}

// Healthy reports whether the adapter holds a credential. Perplexity has
// no cheap unauthenticated probe endpoint.
func (p *PerplexityAdapter) Healthy(ctx context.Context) bool {
	return p.apiKey != ""
}

func mapOpenAIError(err error) *domain.AdapterError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(perplexityProviderName, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(perplexityProviderName, reqErr.HTTPStatusCode, reqErr.Error())
	}
	return transportError(perplexityProviderName, err)
}
