package api

import (
	"context"

	"github.com/newsjungle/newsjungle/app/article"
	"github.com/newsjungle/newsjungle/app/database"
	"github.com/newsjungle/newsjungle/app/pipeline"
	"github.com/newsjungle/newsjungle/app/summarizer"
)

type NewsFetcherInterface interface {
	FetchNews(ctx context.Context, query string, windowDays, maxResults int) []article.Article
}

var _ NewsFetcherInterface = (*pipeline.Pipeline)(nil)

type SummarizerInterface interface {
	Summarize(ctx context.Context, topic string, articles []article.Article) summarizer.Summary
}

var _ SummarizerInterface = (*summarizer.Summarizer)(nil)

type ArticleReaderInterface interface {
	GetRecentArticles(ctx context.Context, limit int) ([]article.Article, error)
	GetArticleCount(ctx context.Context) (int, error)
}

var _ ArticleReaderInterface = (*database.ArticleRepository)(nil)

type Handler struct {
	fetcher     NewsFetcherInterface
	summarizer  SummarizerInterface
	articleRepo ArticleReaderInterface
	sourceCount int
	version     string
}
