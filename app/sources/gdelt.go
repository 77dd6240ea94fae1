package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/newsjungle/newsjungle/app/article"
	"github.com/newsjungle/newsjungle/app/config"
)

const gdeltBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

// GDELTSource queries the GDELT document API. Results are restricted to a
// domain-suffix allow-list as a crude relevance/geography filter.
type GDELTSource struct {
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	cfg       config.GDELTConfig
}

func NewGDELTSource(client *http.Client, userAgent string, cfg config.GDELTConfig) *GDELTSource {
	return &GDELTSource{
		baseURL:   gdeltBaseURL,
		client:    client,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		userAgent: userAgent,
		cfg:       cfg,
	}
}

func (s *GDELTSource) Name() string {
	return "gdelt"
}

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

type gdeltArticle struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Domain   string `json:"domain"`
	Excerpt  string `json:"excerpt"`
	SeenDate string `json:"seendate"`
}

func (s *GDELTSource) Fetch(ctx context.Context, query string, windowDays int) ([]article.Raw, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if s.cfg.SourceLocation != "" {
		query = fmt.Sprintf("%s sourceloc:%s", query, s.cfg.SourceLocation)
	}

	// GDELT expresses the lookback window in minutes.
	timespan := windowDays * 24 * 60

	params := url.Values{}
	params.Set("query", query)
	params.Set("mode", "artlist")
	params.Set("format", "json")
	params.Set("timespan", strconv.Itoa(timespan))
	params.Set("sort", "DateDesc")
	params.Set("maxrecords", strconv.Itoa(s.cfg.MaxRecords))

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query GDELT: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		slog.Warn("Rate limited by GDELT, backing off")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var data gdeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode GDELT response: %w", err)
	}

	var articles []article.Raw
	for _, item := range data.Articles {
		if item.Title == "" || item.URL == "" {
			continue
		}
		if !s.allowedDomain(item.Domain) {
			continue
		}

		articles = append(articles, article.Raw{
			Title:       item.Title,
			Link:        item.URL,
			Description: item.Excerpt,
			Published:   item.SeenDate,
			Source:      item.Domain,
		})
	}

	return articles, nil
}

func (s *GDELTSource) allowedDomain(domain string) bool {
	if len(s.cfg.AllowedSuffixes) == 0 {
		return true
	}
	for _, suffix := range s.cfg.AllowedSuffixes {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	return false
}
