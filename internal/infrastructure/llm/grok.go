package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"SummaryHub/internal/config"
	"SummaryHub/internal/domain"
	"SummaryHub/internal/ports"
)

const (
	grokProviderName = "grok"
	grokSystemPrompt = "You are Grok, an AI assistant. Provide clear, insightful analysis based on the provided content."
)

// GrokAdapter talks to the xAI chat-completions API. It handles text and
// URL content; X/Twitter URLs additionally enable live search against X
// sources. Binary documents are rejected up front.
type GrokAdapter struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.ProviderAdapter = (*GrokAdapter)(nil)

// NewGrokAdapter builds an adapter from configuration. No client timeout:
// the caller's context deadline bounds the call.
func NewGrokAdapter(cfg config.GrokConfig) *GrokAdapter {
	return &GrokAdapter{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
	}
}

// Descriptor reports the grok capability set.
func (g *GrokAdapter) Descriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		Name:        grokProviderName,
		Model:       g.model,
		SupportsURL: true,
	}
}

type grokMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type grokSearchSource struct {
	Type string `json:"type"`
}

type grokSearchParameters struct {
	Mode             string             `json:"mode"`
	Sources          []grokSearchSource `json:"sources"`
	ReturnCitations  bool               `json:"return_citations"`
	MaxSearchResults int                `json:"max_search_results"`
}

type grokChatRequest struct {
	Model            string                `json:"model"`
	Messages         []grokMessage         `json:"messages"`
	Temperature      float64               `json:"temperature"`
	MaxTokens        int                   `json:"max_tokens"`
	Stream           bool                  `json:"stream"`
	SearchParameters *grokSearchParameters `json:"search_parameters,omitempty"`
}

type grokChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message grokMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		NumSourcesUsed int `json:"num_sources_used"`
	} `json:"usage"`
}

// Process performs exactly one chat-completions call for the payload.
func (g *GrokAdapter) Process(ctx context.Context, payload domain.ContentPayload, composedPrompt string) (domain.ProcessingOutput, error) {
	if payload.Kind == domain.PayloadBinary {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrUnsupportedContentType, "grok cannot process binary documents")
	}
	if g.apiKey == "" {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrAuthFailure, "grok API key is not configured")
	}

	userPrompt := composedPrompt
	var search *grokSearchParameters
	switch payload.Kind {
	case domain.PayloadText:
		if payload.Text != "" {
			userPrompt = fmt.Sprintf("Content:\n%s\n\n%s", payload.Text, composedPrompt)
		}
	case domain.PayloadURL:
		userPrompt = fmt.Sprintf("Content URL: %s\n\n%s", payload.URL, composedPrompt)
		if isXURL(payload.URL) {
			search = &grokSearchParameters{
				Mode:             "auto",
				Sources:          []grokSearchSource{{Type: "x"}},
				ReturnCitations:  true,
				MaxSearchResults: 3,
			}
		}
	}

	reqBody := grokChatRequest{
		Model: g.model,
		Messages: []grokMessage{
			{Role: "system", Content: grokSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:      0.7,
		MaxTokens:        2048,
		SearchParameters: search,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return domain.ProcessingOutput{}, fmt.Errorf("marshal grok request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.ProcessingOutput{}, fmt.Errorf("new grok request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.ProcessingOutput{}, transportError(grokProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.ProcessingOutput{}, statusError(grokProviderName, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var chatResp grokChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrUpstream, "grok returned an unreadable response")
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrUpstream, "grok returned no response text")
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if chatResp.Usage.NumSourcesUsed > 0 {
		text += fmt.Sprintf("\n\n[Analysis used %d data sources]", chatResp.Usage.NumSourcesUsed)
	}

	model := chatResp.Model
	if model == "" {
		model = g.model
	}

	return domain.ProcessingOutput{Text: text, Model: model}, nil
}

// Healthy probes the models endpoint with a short deadline.
func (g *GrokAdapter) Healthy(ctx context.Context) bool {
	if g.apiKey == "" {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, g.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isXURL(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "twitter.com") || strings.Contains(lower, "x.com")
}
