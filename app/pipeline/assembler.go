package pipeline

import (
	"sort"

	"github.com/newsjungle/newsjungle/app/article"
)

// Assemble produces the final result slice. When the ranking step already
// ordered the articles the order is kept as-is; otherwise articles are
// sorted newest first. The result is truncated to maxResults and is never
// nil, so callers can range over it without a check.
func Assemble(articles []article.Article, ranked bool, maxResults int) []article.Article {
	result := make([]article.Article, len(articles))
	copy(result, articles)

	if !ranked {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PublishedAt.After(result[j].PublishedAt)
		})
	}

	if maxResults > 0 && len(result) > maxResults {
		result = result[:maxResults]
	}

	return result
}
