package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModel is the narrow generation contract this package needs from the
// reasoning service. *openai.ChatModel satisfies it; tests substitute fakes.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// NewChatModel builds the OpenAI-compatible client for the reasoning
// service. Callers treat a missing API key as "enrichment disabled" and
// never reach this constructor.
func NewChatModel(ctx context.Context, baseURL, apiKey, modelName string) (ChatModel, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}
	return cm, nil
}

const (
	llmMaxRetries = 3
	llmBaseDelay  = 2 * time.Second
)

// GenerateJSON sends a prompt expecting a single JSON object back and
// unmarshals it into dest. Markdown code fences around the payload are
// stripped. Rate-limit responses back off exponentially before retrying;
// malformed JSON is retried immediately a bounded number of times.
func GenerateJSON(ctx context.Context, cm ChatModel, prompt string, dest interface{}) error {
	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a JSON generator. Respond with a single JSON object and nothing else."},
		{Role: schema.User, Content: prompt},
	}

	var lastErr error
	for attempt := 0; attempt <= llmMaxRetries; attempt++ {
		resp, err := cm.Generate(ctx, messages)
		if err != nil {
			lastErr = err
			if isRateLimited(err) && attempt < llmMaxRetries {
				select {
				case <-time.After(llmBaseDelay * time.Duration(1<<attempt)):
					continue
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return err
		}

		content := strings.TrimSpace(resp.Content)
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")

		if err := json.Unmarshal([]byte(content), dest); err != nil {
			lastErr = fmt.Errorf("malformed response: %w", err)
			continue
		}

		return nil
	}

	return fmt.Errorf("failed after %d attempts: %w", llmMaxRetries+1, lastErr)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
