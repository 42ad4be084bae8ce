package models

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"

	"github.com/easeaico/moodjournal/internal/config"
)

// ImageGenerator produces an image for prompt and returns its URL
// (http(s) or data: URL).
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewCompletionModel builds the completion model selected by LLM_PROVIDER.
func NewCompletionModel(ctx context.Context, cfg config.Config) (model.LLM, error) {
	switch cfg.LLMProvider {
	case "openai":
		return NewOpenAIModel(ctx, cfg.LLMModel, &genai.ClientConfig{APIKey: cfg.OpenAIAPIKey})
	case "grok":
		return NewGrokModel(ctx, cfg.LLMModel, &genai.ClientConfig{APIKey: cfg.XAIAPIKey})
	case "openrouter":
		return NewOpenRouterModel(ctx, cfg.LLMModel, &genai.ClientConfig{APIKey: cfg.OpenRouterAPIKey})
	case "gemini":
		llm, err := gemini.NewModel(ctx, cfg.LLMModel, &genai.ClientConfig{
			APIKey:  cfg.GoogleAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLMProvider)
	}
}

// NewImageGenerator builds the banner image generator selected by IMAGE_PROVIDER.
func NewImageGenerator(ctx context.Context, cfg config.Config) (ImageGenerator, error) {
	retry := NewRetryPolicy(cfg.LLMMaxRetries)
	switch cfg.ImageProvider {
	case "openai":
		generator, err := NewOpenAIImageGenerator(cfg.OpenAIAPIKey, cfg.ImageModel, cfg.ImageSize, retry)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai image generator: %w", err)
		}
		return generator, nil
	case "gemini":
		generator, err := NewGeminiImageGenerator(ctx, cfg.GoogleAPIKey, cfg.ImageModel, cfg.AspectRatio, retry)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini image generator: %w", err)
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", cfg.ImageProvider)
	}
}
