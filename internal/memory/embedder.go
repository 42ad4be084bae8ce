// Package memory 实现日记条目的向量化与相似检索。
package memory

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// Embedder 负责将文本转换为向量表示。
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
}

type GenAIEmbedder struct {
	client *genai.Client
	model  string
}

// EmbeddingDimensions 与 journal_entries.embedding 列的维度一致。
const EmbeddingDimensions = 768

// NewGenAIEmbedder 创建 GenAI 的向量化实现。
func NewGenAIEmbedder(ctx context.Context, apiKey, modelName string) (*GenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google api key is required for embeddings")
	}
	if modelName == "" {
		modelName = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIEmbedder{
		client: client,
		model:  modelName,
	}, nil
}

func (e *GenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_QUERY")
}

func (e *GenAIEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_DOCUMENT")
}

func (e *GenAIEmbedder) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}

	dims := int32(EmbeddingDimensions)
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("empty embedding response")
	}
	return fitDimensions(resp.Embeddings[0].Values, e.model)
}

func fitDimensions(values []float32, model string) ([]float32, error) {
	if len(values) == EmbeddingDimensions {
		return values, nil
	}
	if len(values) > EmbeddingDimensions {
		slog.Warn("embedding dimensions exceed target, truncating", "actual", len(values), "target", EmbeddingDimensions, "model", model)
		return values[:EmbeddingDimensions], nil
	}
	return nil, fmt.Errorf("embedding dimensions mismatch: got %d want %d", len(values), EmbeddingDimensions)
}
