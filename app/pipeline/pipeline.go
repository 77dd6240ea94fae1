package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/newsjungle/newsjungle/app/article"
	"github.com/newsjungle/newsjungle/app/enrich"
	"github.com/newsjungle/newsjungle/app/fetch"
	"github.com/newsjungle/newsjungle/app/relevance"
)

// Pipeline composes fetching, filtering, enrichment and assembly into the
// single news-retrieval entrypoint. The search agent and batcher are
// optional; without a configured reasoning service articles skip the
// enrichment stages unchanged.
type Pipeline struct {
	orchestrator *fetch.Orchestrator
	filterer     *relevance.Filterer
	agent        *enrich.SearchAgent
	batcher      *enrich.Batcher
	store        ArticleStore
}

func NewPipeline(orchestrator *fetch.Orchestrator, filterer *relevance.Filterer, agent *enrich.SearchAgent, batcher *enrich.Batcher, store ArticleStore) *Pipeline {
	return &Pipeline{
		orchestrator: orchestrator,
		filterer:     filterer,
		agent:        agent,
		batcher:      batcher,
		store:        store,
	}
}

// FetchNews runs the full pipeline for one query. It never fails: source
// errors are contained upstream and any panic from a stage is recovered
// here, yielding an empty result instead of taking the caller down.
func (p *Pipeline) FetchNews(ctx context.Context, query string, windowDays, maxResults int) (result []article.Article) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("News pipeline panicked", "query", query, "panic", r)
			result = []article.Article{}
		}
	}()

	started := time.Now()

	raws := p.orchestrator.Run(ctx, query, windowDays)
	articles := fetch.Deduplicate(fetch.Normalize(raws))
	filtered := p.filterer.Run(query, articles)

	slog.Debug("Fetched and filtered articles",
		"query", query, "fetched", len(raws), "deduped", len(articles), "filtered", len(filtered))

	ranked := false
	if p.agent != nil {
		filtered, ranked = p.agent.Process(ctx, filtered, query)
	}
	if p.batcher != nil {
		filtered = p.batcher.Run(ctx, filtered, query)
	}

	result = Assemble(filtered, ranked, maxResults)
	p.persist(ctx, result)

	slog.Info("News pipeline completed",
		"query", query, "articles", len(result), "duration", time.Since(started).Round(time.Millisecond))

	return result
}

func (p *Pipeline) persist(ctx context.Context, articles []article.Article) {
	if p.store == nil {
		return
	}

	for _, a := range articles {
		if err := p.store.UpsertArticle(ctx, a); err != nil {
			slog.Warn("Failed to persist article", "url", a.URL, "error", err)
		}
	}
}
