package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newsjungle/newsjungle/app/config"
)

func testGDELTConfig() config.GDELTConfig {
	return config.GDELTConfig{
		AllowedSuffixes: []string{".com", ".org", ".edu"},
		SourceLocation:  "USA",
		MaxRecords:      50,
	}
}

func TestGDELTSource_Fetch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"articles": [
			{"title": "US volleyball roundup", "url": "https://news.example.com/1", "domain": "news.example.com", "excerpt": "Weekly recap", "seendate": "20250314T093000Z"},
			{"title": "Foreign coverage", "url": "https://news.example.io/2", "domain": "news.example.io", "excerpt": "Elsewhere", "seendate": "20250314T093000Z"},
			{"title": "", "url": "https://news.example.com/3", "domain": "news.example.com", "excerpt": "No title", "seendate": "20250314T093000Z"}
		]}`)
	}))
	defer server.Close()

	source := NewGDELTSource(server.Client(), "test-agent", testGDELTConfig())
	source.baseURL = server.URL

	articles, err := source.Fetch(context.Background(), "volleyball", 3)
	if err != nil {
		t.Fatal(err)
	}

	if gotQuery != "volleyball sourceloc:USA" {
		t.Errorf("Expected sourceloc qualifier in query, got %q", gotQuery)
	}

	if len(articles) != 1 {
		t.Fatalf("Expected 1 article (allow-list and required fields applied), got %d", len(articles))
	}
	if articles[0].Source != "news.example.com" {
		t.Errorf("Unexpected source: %q", articles[0].Source)
	}
	if articles[0].Published != "20250314T093000Z" {
		t.Errorf("Seendate should pass through for the normalizer, got %q", articles[0].Published)
	}
}

func TestGDELTSource_RateLimitedReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	source := NewGDELTSource(server.Client(), "test-agent", testGDELTConfig())
	source.baseURL = server.URL

	articles, err := source.Fetch(context.Background(), "volleyball", 3)
	if err != nil {
		t.Fatalf("429 should not be an error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("429 should yield an empty result, got %d", len(articles))
	}
}

func TestGDELTSource_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewGDELTSource(server.Client(), "test-agent", testGDELTConfig())
	source.baseURL = server.URL

	if _, err := source.Fetch(context.Background(), "volleyball", 3); err == nil {
		t.Error("Expected error for HTTP 500")
	}
}

func TestGDELTSource_EmptyAllowListAllowsAll(t *testing.T) {
	source := NewGDELTSource(http.DefaultClient, "test-agent", config.GDELTConfig{MaxRecords: 10})

	if !source.allowedDomain("anything.io") {
		t.Error("Empty allow-list should permit every domain")
	}
}
