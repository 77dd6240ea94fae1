package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const extractTimeout = 5 * time.Second

// Extractor fetches a linked article page and distills its body text.
// Extraction is always best-effort: callers fall back to the feed-provided
// summary when it fails.
type Extractor struct {
	client    *http.Client
	userAgent string
}

func NewExtractor(client *http.Client, userAgent string) *Extractor {
	return &Extractor{client: client, userAgent: userAgent}
}

// Run retrieves the page at link and returns its readable text content.
func (e *Extractor) Run(ctx context.Context, link string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	pageURL, _ := url.Parse(link)
	page, err := readability.FromReader(strings.NewReader(string(data)), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.TrimSpace(page.TextContent)
	if text == "" {
		return "", fmt.Errorf("no content extracted from %s", link)
	}

	return text, nil
}
