package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/newsjungle/newsjungle/app/article"
	"github.com/newsjungle/newsjungle/app/enrich"
)

const (
	summaryCacheTTL   = 24 * time.Hour
	summaryArticleCap = 5
	summaryContentCap = 500
	fallbackPointCap  = 2
)

// Summary is the topic digest served alongside query results. AI reports
// whether the points came from the reasoning service or from the
// extractive fallback.
type Summary struct {
	Points []string `json:"points"`
	URLs   []string `json:"urls"`
	AI     bool     `json:"is_ai"`
}

// SummaryCache stores rendered summaries keyed by the versioned content
// hash; entries older than maxAge are treated as absent.
type SummaryCache interface {
	GetSummary(ctx context.Context, key string, maxAge time.Duration) (string, bool, error)
	SaveSummary(ctx context.Context, key, summary string) error
}

// Summarizer renders a short digest of the top articles for a topic. The
// model is optional; without one every summary falls back to article
// titles.
type Summarizer struct {
	model enrich.ChatModel
	cache SummaryCache
}

func NewSummarizer(model enrich.ChatModel, cache SummaryCache) *Summarizer {
	return &Summarizer{
		model: model,
		cache: cache,
	}
}

// Summarize returns a digest for the topic over the given articles,
// serving a cached copy when one from the last 24 hours matches the same
// topic and top titles. Summarize never fails: any model or cache error
// degrades to the extractive fallback.
func (s *Summarizer) Summarize(ctx context.Context, topic string, articles []article.Article) Summary {
	if len(articles) == 0 {
		return Summary{
			Points: []string{"No articles available for summarization."},
			URLs:   []string{},
		}
	}

	cacheKey := article.SummaryCacheKey(topic, articles)

	if cached, ok := s.lookupCache(ctx, cacheKey); ok {
		return cached
	}

	if s.model == nil {
		return fallbackSummary(articles)
	}

	summary, err := s.generateSummary(ctx, topic, articles)
	if err != nil {
		slog.Warn("Summary generation failed, using extractive fallback", "topic", topic, "error", err)
		return fallbackSummary(articles)
	}

	s.saveCache(ctx, cacheKey, summary)

	return summary
}

func (s *Summarizer) lookupCache(ctx context.Context, key string) (Summary, bool) {
	if s.cache == nil {
		return Summary{}, false
	}

	payload, found, err := s.cache.GetSummary(ctx, key, summaryCacheTTL)
	if err != nil {
		slog.Warn("Summary cache lookup failed", "error", err)
		return Summary{}, false
	}
	if !found {
		return Summary{}, false
	}

	var summary Summary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		slog.Warn("Discarding malformed cached summary", "key", key, "error", err)
		return Summary{}, false
	}

	return summary, true
}

func (s *Summarizer) saveCache(ctx context.Context, key string, summary Summary) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.SaveSummary(ctx, key, string(payload)); err != nil {
		slog.Warn("Failed to cache summary", "key", key, "error", err)
	}
}

func (s *Summarizer) generateSummary(ctx context.Context, topic string, articles []article.Article) (Summary, error) {
	top := articles
	if len(top) > summaryArticleCap {
		top = top[:summaryArticleCap]
	}

	var sb strings.Builder
	for i, a := range top {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		content := a.Content
		if len(content) > summaryContentCap {
			content = content[:summaryContentCap]
		}
		fmt.Fprintf(&sb, "Title: %s\nSource: %s\nContent: %s", a.Title, a.Source, content)
	}

	prompt := fmt.Sprintf(`Analyze these news articles about %s and provide a VERY concise summary.
Return the response in this exact JSON format:
{"points": ["point 1", "point 2"], "article_indices": [0, 1]}

Articles to analyze:
%s

Requirements:
1. Maximum 2-3 key points
2. Each point should be 10-15 words maximum
3. Focus on the most important developments only
4. Keep it objective and factual
5. For each point, specify which article (0-%d) best represents that point`, topic, sb.String(), len(top)-1)

	var resp struct {
		Points         []string `json:"points"`
		ArticleIndices []int    `json:"article_indices"`
	}
	if err := enrich.GenerateJSON(ctx, s.model, prompt, &resp); err != nil {
		return Summary{}, err
	}
	if len(resp.Points) == 0 {
		return Summary{}, fmt.Errorf("summary response contained no points")
	}

	urls := make([]string, 0, len(resp.ArticleIndices))
	for _, idx := range resp.ArticleIndices {
		if idx >= 0 && idx < len(top) {
			urls = append(urls, top[idx].URL)
		}
	}

	return Summary{Points: resp.Points, URLs: urls, AI: true}, nil
}

// fallbackSummary extracts up to two distinct top-article titles as the
// digest when the reasoning service is absent or failing.
func fallbackSummary(articles []article.Article) Summary {
	summary := Summary{Points: []string{}, URLs: []string{}}

	top := articles
	if len(top) > summaryArticleCap {
		top = top[:summaryArticleCap]
	}

	seen := make(map[string]bool)
	for _, a := range top {
		if len(summary.Points) >= fallbackPointCap {
			break
		}
		title := strings.TrimSpace(a.Title)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		summary.Points = append(summary.Points, title)
		summary.URLs = append(summary.URLs, a.URL)
	}

	if len(summary.Points) == 0 {
		summary.Points = []string{"No key points found"}
	}

	return summary
}
