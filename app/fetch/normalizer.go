package fetch

import (
	"log/slog"

	"github.com/newsjungle/newsjungle/app/article"
)

// Normalize maps adapter-level records into canonical Articles. Records
// missing a required field are skipped; unparseable timestamps are
// approximated by the current instant, a known accepted behavior that makes
// them sort as "now".
func Normalize(raws []article.Raw) []article.Article {
	articles := make([]article.Article, 0, len(raws))

	for _, raw := range raws {
		if raw.Title == "" || raw.Link == "" {
			continue
		}

		publishedAt, ok := article.ParseTimestamp(raw.Published)
		if !ok && raw.Published != "" {
			slog.Debug("Unparseable timestamp, using current time", "value", raw.Published, "link", raw.Link)
		}

		articles = append(articles, article.Article{
			Title:       raw.Title,
			Source:      raw.Source,
			Content:     raw.Description,
			URL:         raw.Link,
			PublishedAt: publishedAt,
		})
	}

	return articles
}

// Deduplicate keeps the first-seen record per identity key, checking both
// the (title, source) tuple and the URL. Given a fixed input order the
// output order is stable; only the inter-adapter merge order upstream is
// non-deterministic.
func Deduplicate(articles []article.Article) []article.Article {
	seenKeys := make(map[article.Key]struct{}, len(articles))
	seenURLs := make(map[string]struct{}, len(articles))

	unique := make([]article.Article, 0, len(articles))
	for _, a := range articles {
		if _, ok := seenKeys[a.Key()]; ok {
			continue
		}
		if _, ok := seenURLs[a.URL]; ok {
			continue
		}

		seenKeys[a.Key()] = struct{}{}
		seenURLs[a.URL] = struct{}{}
		unique = append(unique, a)
	}

	return unique
}
