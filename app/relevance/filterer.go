package relevance

import (
	"github.com/newsjungle/newsjungle/app/article"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run narrows the normalized article list to those matching the query,
// evaluated against title and content. Input order is preserved.
func (f *Filterer) Run(rawQuery string, articles []article.Article) []article.Article {
	query := Compile(rawQuery)
	if query.Wildcard {
		return articles
	}

	filtered := make([]article.Article, 0, len(articles))
	for _, a := range articles {
		if query.Match(a.Title + " " + a.Content) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}
