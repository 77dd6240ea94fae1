package pipeline

import (
	"testing"
	"time"

	"github.com/newsjungle/newsjungle/app/article"
)

func TestAssemble_SortsNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	articles := []article.Article{
		{Title: "Old", PublishedAt: base.Add(-48 * time.Hour)},
		{Title: "New", PublishedAt: base},
		{Title: "Mid", PublishedAt: base.Add(-24 * time.Hour)},
	}

	result := Assemble(articles, false, 10)

	want := []string{"New", "Mid", "Old"}
	for i, title := range want {
		if result[i].Title != title {
			t.Errorf("Position %d: expected %q, got %q", i, title, result[i].Title)
		}
	}
}

func TestAssemble_RankedOrderPreserved(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	articles := []article.Article{
		{Title: "Old", PublishedAt: base.Add(-48 * time.Hour)},
		{Title: "New", PublishedAt: base},
	}

	result := Assemble(articles, true, 10)

	if result[0].Title != "Old" || result[1].Title != "New" {
		t.Errorf("Ranked input must not be re-sorted: %q, %q", result[0].Title, result[1].Title)
	}
}

func TestAssemble_TruncatesToMaxResults(t *testing.T) {
	articles := make([]article.Article, 30)
	for i := range articles {
		articles[i].Title = "T"
	}

	result := Assemble(articles, true, 20)

	if len(result) != 20 {
		t.Errorf("Expected 20 articles, got %d", len(result))
	}
}

func TestAssemble_ZeroMaxMeansUnbounded(t *testing.T) {
	result := Assemble(make([]article.Article, 5), true, 0)

	if len(result) != 5 {
		t.Errorf("Expected all 5 articles, got %d", len(result))
	}
}

func TestAssemble_EmptyInputIsNotNil(t *testing.T) {
	result := Assemble(nil, false, 10)

	if result == nil {
		t.Fatal("Result must be an empty slice, not nil")
	}
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %d articles", len(result))
	}
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	articles := []article.Article{
		{Title: "Old", PublishedAt: base.Add(-time.Hour)},
		{Title: "New", PublishedAt: base},
	}

	Assemble(articles, false, 10)

	if articles[0].Title != "Old" {
		t.Error("Input slice order changed")
	}
}
