// Package models 提供各家模型提供方的适配器实现。
package models

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"runtime"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// openaiModel 封装 OpenAI 兼容的聊天客户端。
type openaiModel struct {
	client             *openai.Client
	name               string
	apiModel           string
	versionHeaderValue string
}

// NewOpenAIModel creates a model.LLM backed by the OpenAI chat completions API.
// Extra request options are applied to the client, e.g. a base URL for tests.
func NewOpenAIModel(ctx context.Context, modelName string, cfg *genai.ClientConfig, opts ...option.RequestOption) (model.LLM, error) {
	return newCompatibleModel(modelName, modelName, cfg, "openai-go", "", opts)
}

func newCompatibleModel(name, apiModel string, cfg *genai.ClientConfig, agent, baseURL string, opts []option.RequestOption) (model.LLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if apiModel == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	// 重试由 CallWithRetry 统一处理，SDK 内置重试关闭。
	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	clientOpts = append(clientOpts, opts...)
	client := openai.NewClient(clientOpts...)

	// 创建时一次性生成 UA 头，避免每次请求重复拼接。
	headerValue := fmt.Sprintf("%s/%s go/%s",
		agent, "1.0.0", strings.TrimPrefix(runtime.Version(), "go"))

	return &openaiModel{
		name:               name,
		apiModel:           apiModel,
		client:             &client,
		versionHeaderValue: headerValue,
	}, nil
}

func (m *openaiModel) Name() string {
	return m.name
}

// GenerateContent always issues a single non-streaming request; with
// stream set the whole reply is yielded as one final response.
func (m *openaiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	m.maybeAppendUserContent(req)

	if req.Config == nil {
		req.Config = &genai.GenerateContentConfig{}
	}
	if req.Config.HTTPOptions == nil {
		req.Config.HTTPOptions = &genai.HTTPOptions{}
	}
	if req.Config.HTTPOptions.Headers == nil {
		req.Config.HTTPOptions.Headers = make(http.Header)
	}
	m.addHeaders(req.Config.HTTPOptions.Headers)

	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		if resp != nil {
			resp.TurnComplete = true
		}
		yield(resp, err)
	}
}

func (m *openaiModel) addHeaders(headers http.Header) {
	headers.Set("user-agent", m.versionHeaderValue)
}

func (m *openaiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	params := buildOpenAIParams(req, m.apiModel)

	resp, err := m.client.Chat.Completions.New(ctx, *params, option.WithHeader("User-Agent", m.versionHeaderValue))
	if err != nil {
		slog.Error("failed to call llm API", "model", m.name, "error", err.Error())
		return nil, fmt.Errorf("failed to call llm API: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return &model.LLMResponse{}, nil
	}

	message := resp.Choices[0].Message
	if message.Refusal != "" {
		return nil, fmt.Errorf("model refused request: %s", message.Refusal)
	}

	content := &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{},
	}
	if message.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{
			Text: message.Content,
		})
	}

	return &model.LLMResponse{
		Content: content,
	}, nil
}

func (m *openaiModel) maybeAppendUserContent(req *model.LLMRequest) {
	if len(req.Contents) == 0 {
		req.Contents = append(req.Contents, genai.NewContentFromText("Handle the requests as specified in the System Instruction.", "user"))
	}

	if last := req.Contents[len(req.Contents)-1]; last != nil && last.Role != "user" {
		req.Contents = append(req.Contents, genai.NewContentFromText("Continue processing previous requests as instructed.", "user"))
	}
}
