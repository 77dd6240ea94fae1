package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/newsjungle/newsjungle/app/article"
	"github.com/newsjungle/newsjungle/app/cache"
	"github.com/newsjungle/newsjungle/app/sources"
)

const fetchCacheTTL = 5 * time.Minute

// Orchestrator fans out over the configured source adapters with bounded
// parallelism, wrapping each call in a timeout and a bounded retry. A
// source that fails every attempt contributes zero articles; the merged
// result is collected from a completion channel, so arrival order across
// adapters is not deterministic.
type Orchestrator struct {
	sources     []sources.Source
	cache       *cache.Cache
	workerCount int
	timeout     time.Duration
	maxRetries  int
	baseDelay   time.Duration
}

func NewOrchestrator(srcs []sources.Source, fetchCache *cache.Cache, workerCount int, timeout time.Duration, maxRetries int) *Orchestrator {
	if workerCount < 1 {
		workerCount = 1
	}

	return &Orchestrator{
		sources:     srcs,
		cache:       fetchCache,
		workerCount: workerCount,
		timeout:     timeout,
		maxRetries:  maxRetries,
		baseDelay:   time.Second,
	}
}

// Run fetches from every source concurrently and merges the raw results.
// It never returns an error: individual failures degrade to fewer articles.
func (o *Orchestrator) Run(ctx context.Context, query string, windowDays int) []article.Raw {
	jobs := make(chan sources.Source)
	results := make(chan []article.Raw)

	var wg sync.WaitGroup
	for i := 0; i < o.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				results <- o.fetchSource(ctx, src, query, windowDays)
			}
		}()
	}

	go func() {
		for _, src := range o.sources {
			jobs <- src
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var merged []article.Raw
	for batch := range results {
		merged = append(merged, batch...)
	}

	return merged
}

func (o *Orchestrator) fetchSource(ctx context.Context, src sources.Source, query string, windowDays int) []article.Raw {
	cacheKey := cache.FetchKey(src.Name(), query, windowDays)

	var cached []article.Raw
	if found, err := o.cache.Get(ctx, cacheKey, &cached); err != nil {
		slog.Warn("Fetch cache lookup failed", "source", src.Name(), "error", err)
	} else if found {
		slog.Debug("Fetch cache hit", "source", src.Name(), "count", len(cached))
		return cached
	}

	articles, err := o.fetchWithRetry(ctx, src, query, windowDays)
	if err != nil {
		slog.Error("Source failed after retries", "source", src.Name(), "retries", o.maxRetries, "error", err)
		return nil
	}

	if err := o.cache.Set(ctx, cacheKey, articles, fetchCacheTTL); err != nil {
		slog.Warn("Fetch cache store failed", "source", src.Name(), "error", err)
	}

	return articles
}

func (o *Orchestrator) fetchWithRetry(ctx context.Context, src sources.Source, query string, windowDays int) ([]article.Raw, error) {
	var lastErr error

	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			delay := o.baseDelay * time.Duration(1<<(attempt-1))
			slog.Warn("Retrying source", "source", src.Name(), "attempt", attempt, "delay", delay.String(), "error", lastErr)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
		articles, err := src.Fetch(attemptCtx, query, windowDays)
		cancel()

		if err == nil {
			return articles, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", o.maxRetries+1, lastErr)
}
