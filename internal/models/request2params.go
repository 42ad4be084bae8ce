package models

import (
	"encoding/json"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/openai/openai-go/v3"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/moodjournal/internal/utils"
)

// buildOpenAIParams converts ADK request to OpenAI parameters
func buildOpenAIParams(req *model.LLMRequest, model string) *openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: req.Model,
	}
	if req.Model == "" {
		params.Model = model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.Config != nil && req.Config.SystemInstruction != nil {
		if system := utils.ExtractContentText(req.Config.SystemInstruction); system != "" {
			messages = append(messages, openai.SystemMessage(system))
		}
	}
	messages = append(messages, convertContentsToMessages(req.Contents)...)
	if len(messages) > 0 {
		params.Messages = messages
	}

	if req.Config != nil {
		if req.Config.Temperature != nil {
			params.Temperature = openai.Float(float64(*req.Config.Temperature))
		}
		if req.Config.MaxOutputTokens > 0 {
			params.MaxTokens = openai.Int(int64(req.Config.MaxOutputTokens))
		}
		if req.Config.TopP != nil {
			params.TopP = openai.Float(float64(*req.Config.TopP))
		}

		// 结构化输出：优先使用 JSON Schema，其次退化为 json_object。
		if schema, ok := req.Config.ResponseJsonSchema.(*jsonschema.Schema); ok && schema != nil {
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
					JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
						Name:   schemaName(schema),
						Schema: convertSchemaToJSONSchema(schema),
					},
				},
			}
		} else if req.Config.ResponseMIMEType == "application/json" {
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
			}
		}
	}

	return &params
}

func schemaName(schema *jsonschema.Schema) string {
	name := strings.TrimSpace(schema.Title)
	if name == "" {
		return "response"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// convertSchemaToJSONSchema converts jsonschema.Schema to JSON Schema format
func convertSchemaToJSONSchema(schema *jsonschema.Schema) map[string]any {
	result := make(map[string]any)

	// Set type
	if schema.Type != "" {
		result["type"] = string(schema.Type)
	} else {
		result["type"] = "object"
	}

	if schema.Description != "" {
		result["description"] = schema.Description
	}

	// Convert properties
	if len(schema.Properties) > 0 {
		properties := make(map[string]any)
		for name, propSchema := range schema.Properties {
			if propSchema != nil {
				properties[name] = convertSchemaProperty(propSchema)
			}
		}
		if len(properties) > 0 {
			result["properties"] = properties
		}
		result["additionalProperties"] = false
	}

	// Set required fields
	if len(schema.Required) > 0 {
		result["required"] = schema.Required
	} else {
		result["required"] = []string{}
	}

	return result
}

// convertSchemaProperty converts a single jsonschema.Schema property to JSON Schema format
func convertSchemaProperty(schema *jsonschema.Schema) map[string]any {
	if schema == nil {
		return nil
	}

	prop := make(map[string]any)

	// Handle type - support both single and multiple types
	if len(schema.Types) > 0 {
		prop["type"] = schema.Types[0]
	} else if schema.Type != "" {
		prop["type"] = schema.Type
	}

	if schema.Description != "" {
		prop["description"] = schema.Description
	}

	if schema.Format != "" {
		prop["format"] = schema.Format
	}

	// Handle enum
	if len(schema.Enum) > 0 {
		prop["enum"] = schema.Enum
	}

	// Handle default value - parse json.RawMessage
	if len(schema.Default) > 0 {
		var defaultVal any
		if err := json.Unmarshal(schema.Default, &defaultVal); err == nil {
			prop["default"] = defaultVal
		}
	}

	// Handle string constraints
	if schema.MinLength != nil {
		prop["minLength"] = *schema.MinLength
	}
	if schema.MaxLength != nil {
		prop["maxLength"] = *schema.MaxLength
	}
	if schema.Pattern != "" {
		prop["pattern"] = schema.Pattern
	}

	// Handle items for array types
	if schema.Items != nil {
		prop["items"] = convertSchemaProperty(schema.Items)
	}

	return prop
}

// convertContentsToMessages converts genai.Content to OpenAI messages
func convertContentsToMessages(contents []*genai.Content) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion

	for _, content := range contents {
		if content == nil {
			continue
		}
		textContent := utils.ExtractContentText(content)

		switch content.Role {
		case "model":
			messages = append(messages, openai.AssistantMessage(textContent))
		case "system":
			messages = append(messages, openai.SystemMessage(textContent))
		default:
			messages = append(messages, openai.UserMessage(textContent))
		}
	}

	return messages
}
