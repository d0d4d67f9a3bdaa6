package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"SummaryHub/internal/ports"
)

const defaultMaxChars = 8000

// PageFetcher downloads a web page and reduces it to readable text:
// title plus paragraph-level content, truncated to a provider-friendly
// length.
type PageFetcher struct {
	client   *http.Client
	maxChars int
}

var _ ports.PageFetcher = (*PageFetcher)(nil)

// NewPageFetcher wires an HTTP client; a nil client gets a 20s timeout.
func NewPageFetcher(client *http.Client) *PageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &PageFetcher{client: client, maxChars: defaultMaxChars}
}

// FetchText returns the page title and body text.
func (f *PageFetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "SummaryHub/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	return f.extractText(doc), nil
}

func (f *PageFetcher) extractText(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, noscript, nav, footer, header").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, p, li").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	body := strings.TrimSpace(sb.String())
	if body == "" {
		body = strings.TrimSpace(doc.Find("body").Text())
	}

	combined := body
	if title != "" {
		combined = title + "\n\n" + body
	}

	if len(combined) > f.maxChars {
		combined = combined[:f.maxChars]
	}
	return combined
}
