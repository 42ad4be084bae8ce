package models

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/moodjournal/internal/utils"
)

// LLMCompleter adapts a model.LLM to a system-prompt plus content completion.
type LLMCompleter struct {
	llm        model.LLM
	retry      RetryPolicy
	structured bool
}

// CompleterOption configures an LLMCompleter.
type CompleterOption func(*LLMCompleter)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(policy RetryPolicy) CompleterOption {
	return func(c *LLMCompleter) {
		c.retry = policy
	}
}

// WithStructuredOutput toggles sending VerdictSchema as the response schema.
func WithStructuredOutput(enabled bool) CompleterOption {
	return func(c *LLMCompleter) {
		c.structured = enabled
	}
}

// NewLLMCompleter returns a completer backed by llm.
func NewLLMCompleter(llm model.LLM, opts ...CompleterOption) *LLMCompleter {
	c := &LLMCompleter{
		llm:        llm,
		retry:      DefaultRetryPolicy(),
		structured: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends systemPrompt and content and returns the reply text.
func (c *LLMCompleter) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	if c == nil || c.llm == nil {
		return "", fmt.Errorf("completion model not configured")
	}
	return CallWithRetry(ctx, c.retry, func(ctx context.Context) (string, error) {
		return c.generate(ctx, systemPrompt, content)
	})
}

func (c *LLMCompleter) generate(ctx context.Context, systemPrompt, content string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, "system"),
	}
	if c.structured {
		config.ResponseMIMEType = "application/json"
		config.ResponseJsonSchema = VerdictSchema()
	}
	req := &model.LLMRequest{
		Contents: []*genai.Content{genai.NewContentFromText(content, "user")},
		Config:   config,
	}

	var text strings.Builder
	for resp, err := range c.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", err
		}
		if resp == nil || resp.Partial {
			continue
		}
		text.WriteString(utils.ExtractContentText(resp.Content))
	}

	reply := strings.TrimSpace(text.String())
	if reply == "" {
		return "", fmt.Errorf("empty response from %s", c.llm.Name())
	}
	return reply, nil
}
