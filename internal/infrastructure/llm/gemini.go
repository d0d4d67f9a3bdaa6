package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"SummaryHub/internal/config"
	"SummaryHub/internal/domain"
	"SummaryHub/internal/ports"
)

const geminiProviderName = "gemini"

var youtubeIDExpr = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)

// GeminiAdapter talks to the Google Generative Language API. It is the
// only adapter with native document and video understanding: PDFs are
// inlined as base64 parts and YouTube URLs are attached as file data.
type GeminiAdapter struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.ProviderAdapter = (*GeminiAdapter)(nil)

// NewGeminiAdapter builds an adapter from configuration. The HTTP client
// carries no timeout of its own; the caller's context deadline bounds
// every call.
func NewGeminiAdapter(cfg config.GeminiConfig) *GeminiAdapter {
	return &GeminiAdapter{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
	}
}

// Descriptor reports the gemini capability set.
func (g *GeminiAdapter) Descriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		Name:                geminiProviderName,
		Model:               g.model,
		SupportsBinary:      true,
		SupportsURL:         true,
		SupportsNativeVideo: true,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	FileData   *geminiFileData   `json:"fileData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiFileData struct {
	FileURI string `json:"fileUri"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Process performs exactly one generateContent call for the payload.
func (g *GeminiAdapter) Process(ctx context.Context, payload domain.ContentPayload, composedPrompt string) (domain.ProcessingOutput, error) {
	if g.apiKey == "" {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrAuthFailure, "gemini API key is not configured")
	}

	parts, err := g.buildParts(ctx, payload)
	if err != nil {
		return domain.ProcessingOutput{}, err
	}
	parts = append(parts, geminiPart{Text: composedPrompt})

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return domain.ProcessingOutput{}, fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.ProcessingOutput{}, fmt.Errorf("new gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.ProcessingOutput{}, transportError(geminiProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.ProcessingOutput{}, statusError(geminiProviderName, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var apiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrUpstream, "gemini returned an unreadable response")
	}

	text := candidateText(apiResp)
	if text == "" {
		// Truncated or empty candidates are upstream failures, never
		// silent success.
		return domain.ProcessingOutput{}, domain.NewAdapterError(domain.ErrUpstream, "gemini returned no candidate text")
	}

	return domain.ProcessingOutput{Text: text, Model: g.model}, nil
}

func (g *GeminiAdapter) buildParts(ctx context.Context, payload domain.ContentPayload) ([]geminiPart, error) {
	switch payload.Kind {
	case domain.PayloadText:
		return []geminiPart{{Text: payload.Text}}, nil
	case domain.PayloadBinary:
		mimeType := payload.MimeType
		if mimeType == "" {
			mimeType = "application/pdf"
		}
		return []geminiPart{{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(payload.Data),
		}}}, nil
	case domain.PayloadURL:
		if videoID := extractYouTubeID(payload.URL); videoID != "" {
			return []geminiPart{{FileData: &geminiFileData{
				FileURI: "https://www.youtube.com/watch?v=" + videoID,
			}}}, nil
		}
		data, err := g.fetchURL(ctx, payload.URL)
		if err != nil {
			return nil, err
		}
		return []geminiPart{{InlineData: &geminiInlineData{
			MimeType: "application/pdf",
			Data:     base64.StdEncoding.EncodeToString(data),
		}}}, nil
	}
	return nil, domain.NewAdapterError(domain.ErrUnsupportedContentType, "gemini cannot process this payload")
}

// fetchURL downloads document bytes before inlining them. This is part of
// the same invocation, not a separate provider call.
func (g *GeminiAdapter) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new fetch request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, transportError(geminiProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewAdapterError(domain.ErrUpstream, "fetch %s returned status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Healthy probes the model metadata endpoint with a short deadline.
func (g *GeminiAdapter) Healthy(ctx context.Context) bool {
	if g.apiKey == "" {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func extractYouTubeID(url string) string {
	match := youtubeIDExpr.FindStringSubmatch(url)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

func candidateText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}
