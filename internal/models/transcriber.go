package models

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Transcriber turns recorded audio into text with the OpenAI transcription API.
type Transcriber struct {
	client *openai.Client
	model  string
	retry  RetryPolicy
}

func NewTranscriber(apiKey, model string, retry RetryPolicy, opts ...option.RequestOption) (*Transcriber, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = string(openai.AudioModelWhisper1)
	}

	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	client := openai.NewClient(clientOpts...)

	return &Transcriber{
		client: &client,
		model:  strings.TrimSpace(model),
		retry:  retry,
	}, nil
}

// Transcribe returns the transcript of audio. mimeHint picks the upload file name.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeHint string) (string, error) {
	if t == nil || t.client == nil {
		return "", fmt.Errorf("transcriber not configured")
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("audio cannot be empty")
	}

	name := audioFileName(mimeHint)
	resp, err := CallWithRetry(ctx, t.retry, func(ctx context.Context) (*openai.AudioTranscriptionNewResponseUnion, error) {
		return t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
			File:  openai.File(bytes.NewReader(audio), name, mimeHint),
			Model: openai.AudioModel(t.model),
		})
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("empty transcription response")
	}
	return strings.TrimSpace(resp.Text), nil
}

func audioFileName(mimeHint string) string {
	mimeHint = strings.ToLower(mimeHint)
	switch {
	case strings.Contains(mimeHint, "webm"):
		return "audio.webm"
	case strings.Contains(mimeHint, "ogg"):
		return "audio.ogg"
	case strings.Contains(mimeHint, "wav"):
		return "audio.wav"
	case strings.Contains(mimeHint, "mpeg"), strings.Contains(mimeHint, "mp3"):
		return "audio.mp3"
	default:
		return "audio.mp4"
	}
}
