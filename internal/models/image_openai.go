package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIImageGenerator renders banner images with the OpenAI images API and
// returns the hosted image URL.
type OpenAIImageGenerator struct {
	client *openai.Client
	model  string
	size   string
	retry  RetryPolicy
}

func NewOpenAIImageGenerator(apiKey, model, size string, retry RetryPolicy, opts ...option.RequestOption) (*OpenAIImageGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = string(openai.ImageModelDallE3)
	}
	if strings.TrimSpace(size) == "" {
		size = string(openai.ImageGenerateParamsSize1792x1024)
	}

	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	client := openai.NewClient(clientOpts...)

	return &OpenAIImageGenerator{
		client: &client,
		model:  strings.TrimSpace(model),
		size:   strings.TrimSpace(size),
		retry:  retry,
	}, nil
}

func (g *OpenAIImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("image generator not configured")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	params := openai.ImageGenerateParams{
		Prompt:  prompt,
		Model:   openai.ImageModel(g.model),
		Size:    openai.ImageGenerateParamsSize(g.size),
		Quality: openai.ImageGenerateParamsQualityStandard,
		N:       openai.Int(1),
	}
	resp, err := CallWithRetry(ctx, g.retry, func(ctx context.Context) (*openai.ImagesResponse, error) {
		return g.client.Images.Generate(ctx, params)
	})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return "", fmt.Errorf("empty image response")
	}

	image := resp.Data[0]
	if image.URL != "" {
		return image.URL, nil
	}
	if image.B64JSON != "" {
		return "data:image/png;base64," + image.B64JSON, nil
	}
	return "", fmt.Errorf("image data missing in response")
}
