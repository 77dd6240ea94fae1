package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/newsjungle/newsjungle/app/article"
)

const agentContentLimit = 1000

// SearchAgent narrows and orders a filtered article list through two
// reasoning-service passes: topic validation keeps only articles that
// substantively cover every query sub-topic, and ranking orders the
// validated subset by relevance, depth, recency, and source credibility.
// Either pass falls back to its input on any failure.
type SearchAgent struct {
	model ChatModel
}

func NewSearchAgent(model ChatModel) *SearchAgent {
	return &SearchAgent{model: model}
}

type agentArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type agentPayload struct {
	Topics   []string       `json:"topics"`
	Articles []agentArticle `json:"articles"`
}

func buildAgentPayload(articles []article.Article, topic string) agentPayload {
	payload := agentPayload{Topics: strings.Fields(strings.ToLower(topic))}
	for _, a := range articles {
		payload.Articles = append(payload.Articles, agentArticle{
			Title:   a.Title,
			Content: truncate(a.Content, agentContentLimit),
		})
	}
	return payload
}

// Process runs validation then ranking. The boolean reports whether a
// ranking order was produced, which the assembler must preserve.
func (s *SearchAgent) Process(ctx context.Context, articles []article.Article, topic string) ([]article.Article, bool) {
	relevant := s.ValidateTopicRelevance(ctx, articles, topic)
	return s.Rank(ctx, relevant, topic)
}

// ValidateTopicRelevance keeps only the articles the reasoning service
// judges to substantively discuss all query sub-topics together. On any
// failure the original list is returned untouched.
func (s *SearchAgent) ValidateTopicRelevance(ctx context.Context, articles []article.Article, topic string) []article.Article {
	if len(articles) == 0 {
		return articles
	}

	payload, err := json.Marshal(buildAgentPayload(articles, topic))
	if err != nil {
		slog.Error("Failed to marshal validation payload", "error", err)
		return articles
	}

	prompt := fmt.Sprintf(`Analyze these news articles and determine if they substantively discuss ALL of the listed topics.

Rules for relevance:
1. An article must meaningfully discuss ALL specified topics together
2. Just mentioning a topic in passing is not enough
3. Topics should be semantically related in the content
4. The relationship between topics should be a main focus

Input: %s

Respond with a JSON object in this format:
{"relevant_indices": [0, 2, 3]}`, payload)

	var result struct {
		RelevantIndices []int `json:"relevant_indices"`
	}
	if err := GenerateJSON(ctx, s.model, prompt, &result); err != nil {
		slog.Warn("Topic validation failed, keeping all articles", "error", err)
		return articles
	}

	relevant := make([]article.Article, 0, len(result.RelevantIndices))
	for _, i := range result.RelevantIndices {
		if i >= 0 && i < len(articles) {
			relevant = append(relevant, articles[i])
		}
	}

	slog.Debug("Topic validation complete", "in", len(articles), "out", len(relevant))
	return relevant
}

// Rank orders articles by relevance and quality. The boolean reports
// whether the returned order came from the reasoning service; on failure
// the input order is returned with false.
func (s *SearchAgent) Rank(ctx context.Context, articles []article.Article, topic string) ([]article.Article, bool) {
	if len(articles) == 0 {
		return articles, false
	}

	payload, err := json.Marshal(buildAgentPayload(articles, topic))
	if err != nil {
		slog.Error("Failed to marshal ranking payload", "error", err)
		return articles, false
	}

	prompt := fmt.Sprintf(`Rank these news articles by their relevance to ALL listed topics.
Consider:
1. How central ALL topics are to the article's main focus
2. Strength of relationship between the topics
3. Depth of coverage for each topic
4. Recency and timeliness
5. Source credibility

Input: %s

Respond with a JSON object in this format:
{"ranked_indices": [2, 0, 3, 1]}`, payload)

	var result struct {
		RankedIndices []int `json:"ranked_indices"`
	}
	if err := GenerateJSON(ctx, s.model, prompt, &result); err != nil {
		slog.Warn("Ranking failed, keeping input order", "error", err)
		return articles, false
	}

	ranked := make([]article.Article, 0, len(result.RankedIndices))
	for _, i := range result.RankedIndices {
		if i >= 0 && i < len(articles) {
			ranked = append(ranked, articles[i])
		}
	}

	if len(ranked) == 0 {
		return articles, false
	}

	return ranked, true
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
