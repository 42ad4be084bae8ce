package models

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/moodjournal/internal/utils"
)

type fakeLLM struct {
	replies []string
	errs    []error
	calls   int
	lastReq *model.LLMRequest
}

func (f *fakeLLM) Name() string {
	return "fake"
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	idx := f.calls
	f.calls++
	f.lastReq = req
	return func(yield func(*model.LLMResponse, error) bool) {
		if idx < len(f.errs) && f.errs[idx] != nil {
			yield(nil, f.errs[idx])
			return
		}
		reply := ""
		if idx < len(f.replies) {
			reply = f.replies[idx]
		}
		yield(&model.LLMResponse{Content: genai.NewContentFromText(reply, "model"), TurnComplete: true}, nil)
	}
}

func TestLLMCompleterComplete(t *testing.T) {
	llm := &fakeLLM{replies: []string{" {\"mood_label\":\"calm\"} "}}
	completer := NewLLMCompleter(llm)

	got, err := completer.Complete(context.Background(), "system rules", "entry text")
	require.NoError(t, err)
	assert.Equal(t, `{"mood_label":"calm"}`, got)

	require.NotNil(t, llm.lastReq)
	require.Len(t, llm.lastReq.Contents, 1)
	assert.Equal(t, "entry text", utils.ExtractContentText(llm.lastReq.Contents[0]))
	assert.Equal(t, "system rules", utils.ExtractContentText(llm.lastReq.Config.SystemInstruction))
	assert.Equal(t, "application/json", llm.lastReq.Config.ResponseMIMEType)
	_, ok := llm.lastReq.Config.ResponseJsonSchema.(*jsonschema.Schema)
	assert.True(t, ok)
}

func TestLLMCompleterUnstructured(t *testing.T) {
	llm := &fakeLLM{replies: []string{"hi"}}
	completer := NewLLMCompleter(llm, WithStructuredOutput(false))

	_, err := completer.Complete(context.Background(), "s", "c")
	require.NoError(t, err)
	assert.Nil(t, llm.lastReq.Config.ResponseJsonSchema)
	assert.Empty(t, llm.lastReq.Config.ResponseMIMEType)
}

func TestLLMCompleterRetriesServerErrors(t *testing.T) {
	llm := &fakeLLM{
		errs:    []error{errors.New("503 service unavailable"), nil},
		replies: []string{"", "ok"},
	}
	completer := NewLLMCompleter(llm, WithRetryPolicy(fastPolicy(3)))

	got, err := completer.Complete(context.Background(), "s", "c")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, llm.calls)
}

func TestLLMCompleterEmptyReply(t *testing.T) {
	completer := NewLLMCompleter(&fakeLLM{replies: []string{"   "}})

	_, err := completer.Complete(context.Background(), "s", "c")
	assert.Error(t, err)
}

func TestLLMCompleterNotConfigured(t *testing.T) {
	var completer *LLMCompleter
	_, err := completer.Complete(context.Background(), "s", "c")
	assert.Error(t, err)
}

func TestVerdictSchema(t *testing.T) {
	schema := VerdictSchema()
	require.Contains(t, schema.Properties, "mood_label")
	assert.Len(t, schema.Properties["mood_label"].Enum, 30)
	assert.Contains(t, schema.Required, "summary")
}
