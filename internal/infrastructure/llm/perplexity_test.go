package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SummaryHub/internal/config"
	"SummaryHub/internal/domain"
)

type stubFetcher struct {
	text string
	err  error
}

func (s *stubFetcher) FetchText(ctx context.Context, url string) (string, error) {
	return s.text, s.err
}

func newPerplexityServer(t *testing.T, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if captured != nil {
			json.NewDecoder(r.Body).Decode(captured)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"model":"sonar-test","choices":[{"message":{"role":"assistant","content":"the insight"}}]}`)
	}))
}

func newPerplexityForTest(baseURL string, fetcher *stubFetcher) *PerplexityAdapter {
	cfg := config.PerplexityConfig{BaseURL: baseURL, Model: "sonar-test", APIKey: "test-key"}
	if fetcher == nil {
		return NewPerplexityAdapter(cfg, nil)
	}
	return NewPerplexityAdapter(cfg, fetcher)
}

func userMessage(t *testing.T, captured map[string]any) string {
	t.Helper()
	messages, ok := captured["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected system plus user message, got %v", captured["messages"])
	}
	user := messages[1].(map[string]any)
	return user["content"].(string)
}

func TestPerplexityProcessText(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	srv := newPerplexityServer(t, &captured)
	defer srv.Close()

	adapter := newPerplexityForTest(srv.URL, nil)
	out, err := adapter.Process(context.Background(), domain.TextPayload("article body"), "Summarize.")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.Text != "the insight" {
		t.Fatalf("unexpected output %q", out.Text)
	}
	if out.Model != "sonar-test" {
		t.Fatalf("unexpected model %q", out.Model)
	}

	content := userMessage(t, captured)
	if !strings.Contains(content, "Content to process:\narticle body") {
		t.Fatalf("payload text missing from user message: %q", content)
	}
	if !strings.Contains(content, "Prompt: Summarize.") {
		t.Fatalf("composed prompt missing from user message: %q", content)
	}
}

func TestPerplexityURLUsesFetchedPageText(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	srv := newPerplexityServer(t, &captured)
	defer srv.Close()

	fetcher := &stubFetcher{text: "Readable page text."}
	adapter := newPerplexityForTest(srv.URL, fetcher)
	if _, err := adapter.Process(context.Background(), domain.URLPayload("https://example.com/post"), "Summarize."); err != nil {
		t.Fatalf("process: %v", err)
	}

	content := userMessage(t, captured)
	if !strings.Contains(content, "Readable page text.") {
		t.Fatalf("fetched text missing from user message: %q", content)
	}
}

func TestPerplexityURLFetchFailureDegradesToRawURL(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	srv := newPerplexityServer(t, &captured)
	defer srv.Close()

	fetcher := &stubFetcher{err: errors.New("fetch failed")}
	adapter := newPerplexityForTest(srv.URL, fetcher)
	if _, err := adapter.Process(context.Background(), domain.URLPayload("https://example.com/post"), "Summarize."); err != nil {
		t.Fatalf("process: %v", err)
	}

	content := userMessage(t, captured)
	if !strings.Contains(content, "https://example.com/post") {
		t.Fatalf("raw URL missing from degraded user message: %q", content)
	}
}

func TestPerplexityRejectsBinary(t *testing.T) {
	t.Parallel()

	adapter := newPerplexityForTest("http://unused", nil)
	_, err := adapter.Process(context.Background(), domain.BinaryPayload([]byte("pdf"), "application/pdf"), "Summarize.")

	var adapterErr *domain.AdapterError
	if !errors.As(err, &adapterErr) || adapterErr.Kind != domain.ErrUnsupportedContentType {
		t.Fatalf("binary must be rejected as unsupported, got %v", err)
	}
}

func TestPerplexityAPIErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   domain.ErrorKind
	}{
		{http.StatusUnauthorized, domain.ErrAuthFailure},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusInternalServerError, domain.ErrUpstream},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			fmt.Fprint(w, `{"error":{"message":"backend says no","type":"invalid_request_error"}}`)
		}))

		adapter := newPerplexityForTest(srv.URL, nil)
		_, err := adapter.Process(context.Background(), domain.TextPayload("x"), "y")
		srv.Close()

		var adapterErr *domain.AdapterError
		if !errors.As(err, &adapterErr) {
			t.Fatalf("status %d: expected AdapterError, got %v", tc.status, err)
		}
		if adapterErr.Kind != tc.want {
			t.Fatalf("status %d: expected %s, got %s", tc.status, tc.want, adapterErr.Kind)
		}
	}
}

func TestPerplexityHealthyNeedsKey(t *testing.T) {
	t.Parallel()

	withKey := newPerplexityForTest("http://unused", nil)
	if !withKey.Healthy(context.Background()) {
		t.Fatal("adapter with a key must report healthy")
	}

	withoutKey := NewPerplexityAdapter(config.PerplexityConfig{BaseURL: "http://unused", Model: "m"}, nil)
	if withoutKey.Healthy(context.Background()) {
		t.Fatal("adapter without a key must not report healthy")
	}
}
