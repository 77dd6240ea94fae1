package article

import (
	"strings"
	"testing"
	"time"
)

func TestParseTimestamp_UTCSuffix(t *testing.T) {
	parsed, ok := ParseTimestamp("2025-03-14T09:30:00Z")
	if !ok {
		t.Fatal("Expected successful parse")
	}
	if !parsed.Equal(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("Unexpected instant: %v", parsed)
	}
}

func TestParseTimestamp_ExplicitOffset(t *testing.T) {
	parsed, ok := ParseTimestamp("2025-03-14T09:30:00-05:00")
	if !ok {
		t.Fatal("Expected successful parse")
	}

	expected := time.Date(2025, 3, 14, 14, 30, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("Offset not respected: got %v, want %v", parsed.UTC(), expected)
	}
}

func TestParseTimestamp_NaiveAssumesUTC(t *testing.T) {
	parsed, ok := ParseTimestamp("2025-03-14T09:30:00")
	if !ok {
		t.Fatal("Expected successful parse")
	}
	if !parsed.Equal(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("Naive timestamp should be assumed UTC, got %v", parsed)
	}
}

func TestParseTimestamp_GDELTSeendate(t *testing.T) {
	parsed, ok := ParseTimestamp("20250314T093000Z")
	if !ok {
		t.Fatal("Expected successful parse")
	}
	if !parsed.Equal(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("Unexpected instant: %v", parsed)
	}
}

func TestParseTimestamp_RSSPubDate(t *testing.T) {
	parsed, ok := ParseTimestamp("Fri, 14 Mar 2025 09:30:00 +0000")
	if !ok {
		t.Fatal("Expected successful parse")
	}
	if parsed.UTC().Hour() != 9 {
		t.Errorf("Unexpected instant: %v", parsed)
	}
}

func TestParseTimestamp_MalformedFallsBackToNow(t *testing.T) {
	before := time.Now()
	parsed, ok := ParseTimestamp("not a date")
	after := time.Now()

	if ok {
		t.Error("Expected parse failure for malformed input")
	}
	if parsed.Before(before) || parsed.After(after) {
		t.Errorf("Fallback should be the current instant, got %v", parsed)
	}
}

func TestParseTimestamp_EmptyFallsBackToNow(t *testing.T) {
	parsed, ok := ParseTimestamp("")
	if ok {
		t.Error("Expected parse failure for empty input")
	}
	if time.Since(parsed) > time.Minute {
		t.Errorf("Fallback should be the current instant, got %v", parsed)
	}
}

func TestArticleKey(t *testing.T) {
	a := Article{Title: "Tech layoffs continue", Source: "example.com", URL: "https://example.com/1"}
	b := Article{Title: "Tech layoffs continue", Source: "example.com", URL: "https://example.com/2"}

	if a.Key() != b.Key() {
		t.Error("Articles with the same title and source should share an identity key")
	}

	c := Article{Title: "Tech layoffs continue", Source: "other.org"}
	if a.Key() == c.Key() {
		t.Error("Different sources should yield different identity keys")
	}
}

func TestSummaryCacheKey_OrderInsensitive(t *testing.T) {
	forward := []Article{{Title: "Alpha"}, {Title: "Beta"}, {Title: "Gamma"}}
	reversed := []Article{{Title: "Gamma"}, {Title: "Beta"}, {Title: "Alpha"}}

	if SummaryCacheKey("economy", forward) != SummaryCacheKey("economy", reversed) {
		t.Error("Cache key should not depend on article order")
	}
}

func TestSummaryCacheKey_TopicSensitive(t *testing.T) {
	articles := []Article{{Title: "Alpha"}, {Title: "Beta"}}

	if SummaryCacheKey("economy", articles) == SummaryCacheKey("sports", articles) {
		t.Error("Different topics should yield different cache keys")
	}
}

func TestSummaryCacheKey_Versioned(t *testing.T) {
	key := SummaryCacheKey("economy", []Article{{Title: "Alpha"}})
	if !strings.HasPrefix(key, "v1:") {
		t.Errorf("Cache key should carry a version prefix, got %q", key)
	}
}

func TestSummaryCacheKey_LimitsToFiveTitles(t *testing.T) {
	base := []Article{
		{Title: "One"}, {Title: "Two"}, {Title: "Three"}, {Title: "Four"}, {Title: "Five"},
	}
	extended := append(append([]Article{}, base...), Article{Title: "Six"})

	if SummaryCacheKey("economy", base) != SummaryCacheKey("economy", extended) {
		t.Error("Only the first five titles should feed the hash")
	}
}
