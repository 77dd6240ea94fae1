package relevance

import (
	"testing"
)

func TestCleanQuery_Corrections(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"vollyball", "volleyball"},
		{"foot ball scores", "football scores"},
		{"Base Ball", "baseball"},
		{"bball highlights", "basketball highlights"},
		{"technology", "technology"},
		{"  Volleyball  ", "volleyball"},
	}

	for _, tt := range tests {
		got := CleanQuery(tt.input)
		if got != tt.expected {
			t.Errorf("CleanQuery(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCompile_Wildcard(t *testing.T) {
	for _, raw := range []string{"all", "All", "ALL", " all "} {
		q := Compile(raw)
		if !q.Wildcard {
			t.Errorf("Compile(%q) should be the wildcard query", raw)
		}
		if !q.Match("anything at all") {
			t.Errorf("Wildcard query should match everything")
		}
	}
}

func TestCompile_QuotedPhrase(t *testing.T) {
	q := Compile(`"women's volleyball"`)

	if len(q.Terms) != 1 {
		t.Fatalf("Expected 1 term, got %d", len(q.Terms))
	}
	if q.Terms[0].Phrase != "women's volleyball" {
		t.Errorf("Expected phrase term, got %+v", q.Terms[0])
	}

	if !q.Match("Recap of the Women's Volleyball championship final") {
		t.Error("Exact phrase should match case-insensitively")
	}
	if q.Match("women's basketball and men's volleyball") {
		t.Error("Phrase must match as a contiguous substring")
	}
}

func TestCompile_ORGroup(t *testing.T) {
	q := Compile("volleyball|volley")

	if len(q.Terms) != 1 || len(q.Terms[0].Alternatives) != 2 {
		t.Fatalf("Expected 1 OR-group with 2 alternatives, got %+v", q.Terms)
	}

	if !q.Match("beach volley tournament") {
		t.Error("OR-group should match on any alternative")
	}
	if !q.Match("volleyball finals") {
		t.Error("OR-group should match on any alternative")
	}
	if q.Match("basketball finals") {
		t.Error("OR-group should fail when no alternative matches")
	}
}

func TestCompile_ImplicitAND(t *testing.T) {
	q := Compile("trump health")

	if !q.Match("report on Trump and public health policy") {
		t.Error("All terms present should match")
	}
	if q.Match("report on health policy") {
		t.Error("Missing term should fail the match")
	}
}

func TestCompile_MixedGrammar(t *testing.T) {
	q := Compile(`"climate change" policy|regulation`)

	if !q.Match("new climate change regulation announced") {
		t.Error("Phrase plus satisfied OR-group should match")
	}
	if q.Match("new climate change funding announced") {
		t.Error("Unsatisfied OR-group should fail the match")
	}
	if q.Match("new environmental regulation announced") {
		t.Error("Missing phrase should fail the match")
	}
}

func TestCompile_EmptyQuery(t *testing.T) {
	q := Compile("")
	if q.Match("anything") {
		t.Error("Empty query should match nothing")
	}
}

func TestTokenize_QuotedPhraseWithSpaces(t *testing.T) {
	tokens := tokenize(`"new york" giants`)

	if len(tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %v", tokens)
	}
	if tokens[0] != `"new york"` {
		t.Errorf("Quoted phrase should stay one token, got %q", tokens[0])
	}
	if tokens[1] != "giants" {
		t.Errorf("Unexpected second token %q", tokens[1])
	}
}
