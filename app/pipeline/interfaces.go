package pipeline

import (
	"context"

	"github.com/newsjungle/newsjungle/app/article"
)

// ArticleStore persists assembled articles. Persistence is best-effort:
// the pipeline logs failures and keeps going.
type ArticleStore interface {
	UpsertArticle(ctx context.Context, a article.Article) error
}
