package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/newsjungle/newsjungle/app/article"
	"github.com/newsjungle/newsjungle/app/enrich"
	"github.com/newsjungle/newsjungle/app/fetch"
	"github.com/newsjungle/newsjungle/app/relevance"
	"github.com/newsjungle/newsjungle/app/sources"
)

type fakeSource struct {
	name     string
	articles []article.Raw
	err      error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, query string, windowDays int) ([]article.Raw, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

type fakeStore struct {
	mu    sync.Mutex
	urls  []string
	panic bool
}

func (f *fakeStore) UpsertArticle(ctx context.Context, a article.Article) error {
	if f.panic {
		panic("store unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, a.URL)
	return nil
}

type fakeModel struct {
	mu        sync.Mutex
	responses []string
	call      int
}

func (f *fakeModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.call >= len(f.responses) {
		return nil, errors.New("no response configured")
	}
	resp := f.responses[f.call]
	f.call++
	return &schema.Message{Role: schema.Assistant, Content: resp}, nil
}

func rawAt(title, link, source string, published time.Time) article.Raw {
	return article.Raw{
		Title:       title,
		Link:        link,
		Description: title + " body",
		Published:   published.Format(time.RFC3339),
		Source:      source,
	}
}

func newTestPipeline(srcs []sources.Source, agent *enrich.SearchAgent, batcher *enrich.Batcher, store ArticleStore) *Pipeline {
	orchestrator := fetch.NewOrchestrator(srcs, nil, 2, time.Second, 0)
	return NewPipeline(orchestrator, relevance.NewFilterer(), agent, batcher, store)
}

func TestPipeline_FetchNews(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	srcs := []sources.Source{
		&fakeSource{name: "rss", articles: []article.Raw{
			rawAt("Volleyball finals recap", "https://a.com/1", "a.com", now.Add(-2*time.Hour)),
			rawAt("Volleyball season preview", "https://a.com/2", "a.com", now.Add(-1*time.Hour)),
		}},
		&fakeSource{name: "gdelt", articles: []article.Raw{
			rawAt("Volleyball finals recap", "https://a.com/1", "a.com", now.Add(-2*time.Hour)),
			rawAt("Stock markets rally", "https://b.com/1", "b.com", now),
		}},
	}

	store := &fakeStore{}
	p := newTestPipeline(srcs, nil, nil, store)

	result := p.FetchNews(context.Background(), "volleyball", 7, 20)

	if len(result) != 2 {
		t.Fatalf("Expected 2 volleyball articles after dedup and filtering, got %d", len(result))
	}
	if result[0].Title != "Volleyball season preview" {
		t.Errorf("Expected newest first, got %q", result[0].Title)
	}
	if len(store.urls) != 2 {
		t.Errorf("Expected 2 persisted articles, got %d", len(store.urls))
	}
}

func TestPipeline_WildcardPassesEverything(t *testing.T) {
	now := time.Now().UTC()
	srcs := []sources.Source{
		&fakeSource{name: "rss", articles: []article.Raw{
			rawAt("Anything goes", "https://a.com/1", "a.com", now),
			rawAt("Another story", "https://a.com/2", "a.com", now),
		}},
	}

	p := newTestPipeline(srcs, nil, nil, nil)

	result := p.FetchNews(context.Background(), "All", 7, 20)

	if len(result) != 2 {
		t.Errorf("Wildcard query should keep all articles, got %d", len(result))
	}
}

func TestPipeline_FailingSourceContained(t *testing.T) {
	now := time.Now().UTC()
	srcs := []sources.Source{
		&fakeSource{name: "rss", err: errors.New("connection refused")},
		&fakeSource{name: "gdelt", articles: []article.Raw{
			rawAt("Volleyball upset", "https://b.com/1", "b.com", now),
		}},
	}

	p := newTestPipeline(srcs, nil, nil, nil)

	result := p.FetchNews(context.Background(), "volleyball", 7, 20)

	if len(result) != 1 {
		t.Fatalf("Healthy source results must survive a failing source, got %d", len(result))
	}
}

func TestPipeline_AllSourcesFailing(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "rss", err: errors.New("boom")},
		&fakeSource{name: "gdelt", err: errors.New("boom")},
	}

	p := newTestPipeline(srcs, nil, nil, nil)

	result := p.FetchNews(context.Background(), "volleyball", 7, 20)

	if result == nil {
		t.Fatal("Result must be an empty slice, not nil")
	}
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %d", len(result))
	}
}

func TestPipeline_PanicRecovered(t *testing.T) {
	now := time.Now().UTC()
	srcs := []sources.Source{
		&fakeSource{name: "rss", articles: []article.Raw{
			rawAt("Volleyball news", "https://a.com/1", "a.com", now),
		}},
	}

	p := newTestPipeline(srcs, nil, nil, &fakeStore{panic: true})

	result := p.FetchNews(context.Background(), "volleyball", 7, 20)

	if result == nil {
		t.Fatal("Recovered pipeline must return an empty slice")
	}
	if len(result) != 0 {
		t.Errorf("Expected empty result after panic, got %d", len(result))
	}
}

func TestPipeline_AgentRankingPreserved(t *testing.T) {
	now := time.Now().UTC()
	srcs := []sources.Source{
		&fakeSource{name: "rss", articles: []article.Raw{
			rawAt("Volleyball finals", "https://a.com/1", "a.com", now.Add(-2*time.Hour)),
			rawAt("Volleyball preview", "https://a.com/2", "a.com", now.Add(-1*time.Hour)),
			rawAt("Volleyball injury report", "https://a.com/3", "a.com", now),
		}},
	}

	agent := enrich.NewSearchAgent(&fakeModel{responses: []string{
		`{"relevant_indices": [0, 1, 2]}`,
		`{"ranked_indices": [0, 2, 1]}`,
	}})

	p := newTestPipeline(srcs, agent, nil, nil)

	result := p.FetchNews(context.Background(), "volleyball", 7, 20)

	if len(result) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(result))
	}

	// Ranked order wins over recency.
	want := []string{"Volleyball finals", "Volleyball injury report", "Volleyball preview"}
	for i, title := range want {
		if result[i].Title != title {
			t.Errorf("Position %d: expected %q, got %q", i, title, result[i].Title)
		}
	}
}

func TestPipeline_MaxResultsTruncation(t *testing.T) {
	now := time.Now().UTC()
	var raws []article.Raw
	for i := 0; i < 30; i++ {
		raws = append(raws, rawAt(
			fmt.Sprintf("Volleyball story %d", i),
			fmt.Sprintf("https://a.com/%d", i),
			"a.com",
			now.Add(-time.Duration(i)*time.Minute)))
	}
	srcs := []sources.Source{&fakeSource{name: "rss", articles: raws}}

	p := newTestPipeline(srcs, nil, nil, nil)

	result := p.FetchNews(context.Background(), "volleyball", 7, 20)

	if len(result) != 20 {
		t.Fatalf("Expected 20 articles, got %d", len(result))
	}
	for _, a := range result {
		if a.Title == "" || a.URL == "" || a.Source == "" {
			t.Fatal("Assembled articles must carry title, url and source")
		}
	}
}
