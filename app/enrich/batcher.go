package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/newsjungle/newsjungle/app/article"
)

const (
	defaultBatchSize   = 10
	batchContentLimit  = 500
	defaultBatchWorker = 3
)

// Batcher runs the optional enrichment pass: fixed-size batches of
// articles are sent concurrently to the reasoning service for bias and
// sentiment metrics. A failing batch substitutes its original articles
// verbatim, so partial failure never drops articles, only added fields.
type Batcher struct {
	model       ChatModel
	batchSize   int
	workerCount int
}

func NewBatcher(model ChatModel, workerCount int) *Batcher {
	if workerCount < 1 {
		workerCount = defaultBatchWorker
	}

	return &Batcher{
		model:       model,
		batchSize:   defaultBatchSize,
		workerCount: workerCount,
	}
}

type batchArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

type batchRequest struct {
	Articles []batchArticle `json:"articles"`
	Query    string         `json:"query"`
}

type enrichedFields struct {
	BiasScore     *float64 `json:"bias_score"`
	Sentiment     string   `json:"sentiment"`
	PoliticalBias *float64 `json:"political_bias"`
	OutletSize    *float64 `json:"outlet_size"`
}

type batchResponse struct {
	Articles []enrichedFields `json:"articles"`
}

// Run enriches the list in place-preserving order. Results are written
// back by batch index, so the input order (possibly a ranking order)
// survives regardless of batch completion order.
func (b *Batcher) Run(ctx context.Context, articles []article.Article, query string) []article.Article {
	if b.model == nil || len(articles) == 0 {
		return articles
	}

	batches := splitBatches(articles, b.batchSize)
	enriched := make([][]article.Article, len(batches))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < b.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				enriched[idx] = b.enhanceBatch(ctx, batches[idx], query)
			}
		}()
	}

	for idx := range batches {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	result := make([]article.Article, 0, len(articles))
	for _, batch := range enriched {
		result = append(result, batch...)
	}

	return result
}

// enhanceBatch sends one batch to the reasoning service and merges the
// per-position fields back. On any failure the original batch is returned
// unchanged.
func (b *Batcher) enhanceBatch(ctx context.Context, batch []article.Article, query string) []article.Article {
	req := batchRequest{Query: query}
	for _, a := range batch {
		req.Articles = append(req.Articles, batchArticle{
			Title:   a.Title,
			Content: truncate(a.Content, batchContentLimit),
			Source:  a.Source,
		})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		slog.Error("Failed to marshal enrichment batch", "error", err)
		return batch
	}

	prompt := fmt.Sprintf(`You are a news analysis AI. For each article provide:
1. bias_score (-1 to 1, where -1 is far left, 0 is center, 1 is far right)
2. sentiment (Positive, Negative, Neutral)
3. political_bias (numeric value matching bias_score)
4. outlet_size (1.0 for large, 0.5 for medium, 0.0 for small outlets)

Input: %s

Respond with a JSON object in this format:
{"articles": [{"bias_score": 0.2, "sentiment": "Neutral", "political_bias": 0.2, "outlet_size": 1.0}]}
The articles array must follow the input order.`, payload)

	var resp batchResponse
	if err := GenerateJSON(ctx, b.model, prompt, &resp); err != nil {
		slog.Warn("Batch enrichment failed, keeping original articles", "size", len(batch), "error", err)
		return batch
	}

	// Merge by position; a short response leaves the tail untouched.
	merged := make([]article.Article, len(batch))
	copy(merged, batch)
	for i, fields := range resp.Articles {
		if i >= len(merged) {
			break
		}
		merged[i].Enrichment = buildEnrichment(fields, merged[i].Source)
	}

	return merged
}

func buildEnrichment(fields enrichedFields, source string) *article.Enrichment {
	e := &article.Enrichment{Sentiment: article.SentimentNeutral}

	if fields.BiasScore != nil {
		e.BiasScore = *fields.BiasScore
	}
	if fields.PoliticalBias != nil {
		e.PoliticalBias = *fields.PoliticalBias
	}
	if s := article.Sentiment(fields.Sentiment); s == article.SentimentPositive ||
		s == article.SentimentNegative || s == article.SentimentNeutral {
		e.Sentiment = s
	}

	if fields.OutletSize != nil {
		e.OutletSize = *fields.OutletSize
	} else {
		// The model omitted the bucket; fall back to the local table.
		e.OutletSize = OutletSize(source)
	}

	return e
}

func splitBatches(articles []article.Article, size int) [][]article.Article {
	var batches [][]article.Article
	for start := 0; start < len(articles); start += size {
		end := start + size
		if end > len(articles) {
			end = len(articles)
		}
		batches = append(batches, articles[start:end])
	}
	return batches
}
