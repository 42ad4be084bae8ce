package models

import (
	"context"

	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const grokBaseURL = "https://api.x.ai/v1"

// NewGrokModel creates a new Grok model instance
//
// It uses the provided context and configuration to initialize the underlying
// OpenAI-compatible client. The modelName specifies which Grok model to target
// (e.g., "grok-4-fast", "grok-3-mini").
func NewGrokModel(ctx context.Context, modelName string, cfg *genai.ClientConfig, opts ...option.RequestOption) (model.LLM, error) {
	return newCompatibleModel(modelName, modelName, cfg, "grok-go", grokBaseURL, opts)
}
