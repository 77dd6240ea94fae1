package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/newsjungle/newsjungle/app/article"
	"github.com/newsjungle/newsjungle/app/relevance"
)

const feedFetchTimeout = 10 * time.Second

// FeedSource polls a fixed list of RSS/Atom endpoints. Items passing the
// time-window and relevance checks get a secondary fetch of the linked page
// for full body text, falling back to the feed-provided description.
type FeedSource struct {
	feedURLs  []string
	client    *http.Client
	parser    *gofeed.Parser
	extractor *Extractor
	userAgent string
}

func NewFeedSource(feedURLs []string, client *http.Client, extractor *Extractor, userAgent string) *FeedSource {
	return &FeedSource{
		feedURLs:  feedURLs,
		client:    client,
		parser:    gofeed.NewParser(),
		extractor: extractor,
		userAgent: userAgent,
	}
}

func (s *FeedSource) Name() string {
	return "rss"
}

func (s *FeedSource) Fetch(ctx context.Context, query string, windowDays int) ([]article.Raw, error) {
	compiled := relevance.Compile(query)
	cutoff := time.Now().AddDate(0, 0, -windowDays)

	var articles []article.Raw
	for _, feedURL := range s.feedURLs {
		items, err := s.fetchFeed(ctx, feedURL, compiled, cutoff)
		if err != nil {
			// Per-feed failures are contained; other feeds still proceed.
			slog.Warn("Feed fetch failed", "feed", feedURL, "error", err)
			continue
		}
		articles = append(articles, items...)
	}

	return articles, nil
}

func (s *FeedSource) fetchFeed(ctx context.Context, feedURL string, query relevance.Query, cutoff time.Time) ([]article.Raw, error) {
	data, err := s.download(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := s.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	sourceName := hostOf(feedURL)

	var articles []article.Raw
	for _, item := range feed.Items {
		raw, ok := s.processItem(ctx, item, sourceName, query, cutoff)
		if !ok {
			continue
		}
		articles = append(articles, raw)
	}

	return articles, nil
}

func (s *FeedSource) processItem(ctx context.Context, item *gofeed.Item, sourceName string, query relevance.Query, cutoff time.Time) (article.Raw, bool) {
	// Required per-item fields; a missing one skips the item, not the feed.
	if item.Title == "" || item.Link == "" {
		return article.Raw{}, false
	}

	published := item.Published
	if published == "" && item.Updated != "" {
		published = item.Updated
	}
	if published == "" {
		return article.Raw{}, false
	}

	publishedAt := item.PublishedParsed
	if publishedAt == nil {
		publishedAt = item.UpdatedParsed
	}
	if publishedAt == nil {
		parsed, _ := article.ParseTimestamp(published)
		publishedAt = &parsed
	}

	if publishedAt.Before(cutoff) {
		return article.Raw{}, false
	}

	if !query.Match(item.Title + " " + item.Description) {
		return article.Raw{}, false
	}

	content := item.Description
	if extracted, err := s.extractor.Run(ctx, item.Link); err == nil {
		content = extracted
	} else {
		slog.Debug("Content extraction failed, using feed description", "link", item.Link, "error", err)
	}

	return article.Raw{
		Title:       item.Title,
		Link:        item.Link,
		Description: content,
		Published:   publishedAt.Format(time.RFC3339),
		Source:      sourceName,
	}, true
}

func (s *FeedSource) download(ctx context.Context, feedURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, feedFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// hostOf reduces an endpoint URL to its host for use as the source label.
func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return rawURL
}
