package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsjungle/newsjungle/app/article"
)

const (
	defaultWindowDays = 7
	maxWindowDays     = 30
	defaultMaxResults = 20
	maxMaxResults     = 100
)

func NewHandler(fetcher NewsFetcherInterface, summarizer SummarizerInterface,
	articleRepo ArticleReaderInterface, sourceCount int, version string) *Handler {
	return &Handler{
		fetcher:     fetcher,
		summarizer:  summarizer,
		articleRepo: articleRepo,
		sourceCount: sourceCount,
		version:     version,
	}
}

func (h *Handler) GetArticles(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		query = "all"
	}

	days := intQuery(c, "days", defaultWindowDays, 1, maxWindowDays)
	limit := intQuery(c, "limit", defaultMaxResults, 1, maxMaxResults)

	articles := h.fetcher.FetchNews(c.Request.Context(), query, days, limit)

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"days":     days,
		"count":    len(articles),
		"articles": articles,
	})
}

func (h *Handler) GetSummary(c *gin.Context) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "topic parameter is required",
		})
		return
	}

	days := intQuery(c, "days", defaultWindowDays, 1, maxWindowDays)

	articles := h.fetcher.FetchNews(c.Request.Context(), topic, days, defaultMaxResults)
	summary := h.summarizer.Summarize(c.Request.Context(), topic, articles)

	c.JSON(http.StatusOK, gin.H{
		"topic":    topic,
		"days":     days,
		"articles": len(articles),
		"summary":  summary,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"sources":   h.sourceCount,
	}

	if count, err := h.articleRepo.GetArticleCount(c.Request.Context()); err == nil {
		health["articles"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"version": h.version,
		"sources": h.sourceCount,
	}

	ctx := c.Request.Context()
	if count, err := h.articleRepo.GetArticleCount(ctx); err == nil {
		stats["article_count"] = count
	}

	if recent, err := h.articleRepo.GetRecentArticles(ctx, maxMaxResults); err == nil {
		stats["enriched_recent"] = countEnriched(recent)
		if len(recent) > 0 {
			stats["latest_published_at"] = recent[0].PublishedAt.Format(time.RFC3339)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func countEnriched(articles []article.Article) int {
	n := 0
	for _, a := range articles {
		if a.Enrichment != nil {
			n++
		}
	}
	return n
}

// intQuery parses a positive integer query parameter, clamping it into
// [min, max] and falling back to def when absent or malformed.
func intQuery(c *gin.Context, name string, def, min, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
