package models

import (
	"context"

	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterModel routes completions through OpenRouter. The model name
// is reported as "openrouter/<model>" while the API receives it unchanged.
func NewOpenRouterModel(ctx context.Context, modelName string, cfg *genai.ClientConfig, opts ...option.RequestOption) (model.LLM, error) {
	return newCompatibleModel("openrouter/"+modelName, modelName, cfg, "openrouter-go", openRouterBaseURL, opts)
}
