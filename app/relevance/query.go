package relevance

import (
	"strings"
)

// Common variations and misspellings, applied to the raw query before
// tokenizing. Multi-word forms must be listed before their tokenization
// would split them.
var corrections = map[string]string{
	"vollyball":   "volleyball",
	"volley ball": "volleyball",
	"basket ball": "basketball",
	"base ball":   "baseball",
	"foot ball":   "football",
	"bball":       "basketball",
	"bsball":      "baseball",
	"fball":       "football",
}

// CleanQuery lowercases, trims, and applies the misspelling corrections.
func CleanQuery(raw string) string {
	query := strings.ToLower(strings.TrimSpace(raw))
	for misspelling, correction := range corrections {
		query = strings.ReplaceAll(query, misspelling, correction)
	}
	return query
}

// Term is one condition of a compiled query. Exactly one of the fields is
// populated: Phrase for a quoted exact phrase, Alternatives for an
// OR-group, Word for a plain term.
type Term struct {
	Word         string
	Phrase       string
	Alternatives []string
}

// Query is a compiled relevance expression. All terms are ANDed; the
// wildcard query matches everything.
type Query struct {
	Wildcard bool
	Terms    []Term
}

// Compile parses a free-text query into match conditions. The literal
// token "all" (any case) is the accept-everything wildcard. Double quotes
// group an exact phrase, which may contain spaces; "|" inside a token
// builds an OR-group.
func Compile(raw string) Query {
	cleaned := CleanQuery(raw)

	if cleaned == "all" {
		return Query{Wildcard: true}
	}

	var terms []Term
	for _, token := range tokenize(cleaned) {
		switch {
		case strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) && len(token) > 1:
			phrase := strings.Trim(token, `"`)
			if phrase != "" {
				terms = append(terms, Term{Phrase: phrase})
			}
		case strings.Contains(token, "|"):
			var alternatives []string
			for _, alt := range strings.Split(token, "|") {
				if alt = strings.TrimSpace(alt); alt != "" {
					alternatives = append(alternatives, alt)
				}
			}
			if len(alternatives) > 0 {
				terms = append(terms, Term{Alternatives: alternatives})
			}
		default:
			terms = append(terms, Term{Word: token})
		}
	}

	return Query{Terms: terms}
}

// Match evaluates the query against a text, case-insensitively. Every term
// must be satisfied: plain words and phrases as substrings, OR-groups by at
// least one alternative.
func (q Query) Match(text string) bool {
	if q.Wildcard {
		return true
	}
	if len(q.Terms) == 0 {
		return false
	}

	text = strings.ToLower(text)

	for _, term := range q.Terms {
		switch {
		case term.Phrase != "":
			if !strings.Contains(text, term.Phrase) {
				return false
			}
		case len(term.Alternatives) > 0:
			matched := false
			for _, alt := range term.Alternatives {
				if strings.Contains(text, alt) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		default:
			if !strings.Contains(text, term.Word) {
				return false
			}
		}
	}

	return true
}

// tokenize splits on whitespace while keeping double-quoted phrases
// together as a single token, quotes included.
func tokenize(query string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range query {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case !inQuotes && (r == ' ' || r == '\t'):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}
