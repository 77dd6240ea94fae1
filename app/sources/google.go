package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/newsjungle/newsjungle/app/article"
)

const googleBaseURL = "https://www.googleapis.com/customsearch/v1"

// GoogleSource queries the Google Custom Search API. Without credentials it
// is a guaranteed-empty producer; the condition is logged once at
// construction, not on every fetch.
type GoogleSource struct {
	apiKey    string
	engineID  string
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	extractor *Extractor
}

func NewGoogleSource(apiKey, engineID string, client *http.Client, extractor *Extractor) *GoogleSource {
	if apiKey == "" || engineID == "" {
		slog.Info("Google Search credentials not configured, source disabled")
	}

	return &GoogleSource{
		apiKey:    apiKey,
		engineID:  engineID,
		baseURL:   googleBaseURL,
		client:    client,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		extractor: extractor,
	}
}

func (s *GoogleSource) Name() string {
	return "google"
}

type googleResponse struct {
	Items []googleItem `json:"items"`
}

type googleItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

func (s *GoogleSource) Fetch(ctx context.Context, query string, windowDays int) ([]article.Raw, error) {
	if s.apiKey == "" || s.engineID == "" {
		return nil, nil
	}

	// Calls against the shared quota are serialized with a minimum
	// inter-request interval, even when the orchestrator runs other
	// adapters concurrently.
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// A quoted query is passed through as-is; otherwise bias the search
	// toward news coverage.
	if !(strings.HasPrefix(query, `"`) && strings.HasSuffix(query, `"`)) {
		query = query + " news articles"
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("cx", s.engineID)
	params.Set("q", query)
	params.Set("dateRestrict", fmt.Sprintf("d%d", windowDays))
	params.Set("num", "10")
	params.Set("safe", "active")

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		slog.Warn("Rate limited by Google Search API, backing off")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var data googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	var articles []article.Raw
	for _, item := range data.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}

		content := item.Snippet
		if extracted, err := s.extractor.Run(ctx, item.Link); err == nil {
			content = extracted
		} else {
			slog.Debug("Content extraction failed, using snippet", "link", item.Link, "error", err)
		}

		source := item.DisplayLink
		if source == "" {
			source = hostOf(item.Link)
		}

		articles = append(articles, article.Raw{
			Title:       item.Title,
			Link:        item.Link,
			Description: content,
			// The search API does not expose a publication date; the
			// normalizer substitutes fetch-time "now" for the empty string.
			Published: "",
			Source:    source,
		})
	}

	return articles, nil
}
