package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newsjungle/newsjungle/app/article"
)

// ArticleRepository handles database operations for articles
type ArticleRepository struct {
	db *DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// UpsertArticle stores an article, updating the existing row when the URL
// is already known.
func (r *ArticleRepository) UpsertArticle(ctx context.Context, a article.Article) error {
	var biasScore, politicalBias, outletSize sql.NullFloat64
	var sentiment sql.NullString
	if e := a.Enrichment; e != nil {
		biasScore = sql.NullFloat64{Float64: e.BiasScore, Valid: true}
		politicalBias = sql.NullFloat64{Float64: e.PoliticalBias, Valid: true}
		outletSize = sql.NullFloat64{Float64: e.OutletSize, Valid: true}
		sentiment = sql.NullString{String: string(e.Sentiment), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO articles (
			title, source, content, url, published_at,
			bias_score, sentiment, political_bias, outlet_size
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			title = excluded.title,
			source = excluded.source,
			content = excluded.content,
			published_at = excluded.published_at,
			bias_score = excluded.bias_score,
			sentiment = excluded.sentiment,
			political_bias = excluded.political_bias,
			outlet_size = excluded.outlet_size,
			updated_at = CURRENT_TIMESTAMP
	`, a.Title, a.Source, a.Content, a.URL, a.PublishedAt.UTC(),
		biasScore, sentiment, politicalBias, outletSize)

	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}

	return nil
}

// GetRecentArticles returns the most recently published articles
func (r *ArticleRepository) GetRecentArticles(ctx context.Context, limit int) ([]article.Article, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT title, source, content, url, published_at,
			bias_score, sentiment, political_bias, outlet_size
		FROM articles
		ORDER BY published_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent articles: %w", err)
	}
	defer rows.Close()

	var articles []article.Article
	for rows.Next() {
		var a article.Article
		var biasScore, politicalBias, outletSize sql.NullFloat64
		var sentiment sql.NullString

		err := rows.Scan(&a.Title, &a.Source, &a.Content, &a.URL, &a.PublishedAt,
			&biasScore, &sentiment, &politicalBias, &outletSize)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}

		if biasScore.Valid {
			a.Enrichment = &article.Enrichment{
				BiasScore:     biasScore.Float64,
				Sentiment:     article.Sentiment(sentiment.String),
				PoliticalBias: politicalBias.Float64,
				OutletSize:    outletSize.Float64,
			}
		}

		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// GetArticleCount returns the total number of stored articles
func (r *ArticleRepository) GetArticleCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}
