package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// StripCodeFence removes surrounding whitespace and a markdown code fence,
// including an optional language tag after the opening fence.
func StripCodeFence(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		if nl := strings.IndexByte(clean, '\n'); nl >= 0 {
			tag := strings.TrimSpace(clean[:nl])
			if !strings.ContainsAny(tag, "{[\"") {
				clean = clean[nl+1:]
			}
		} else {
			clean = strings.TrimLeft(clean, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
	}
	clean = strings.TrimSpace(clean)
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// DecodeModelJSON unmarshals model output into v. Code fences are stripped;
// if the text is not valid JSON the first {...} block is tried.
func DecodeModelJSON(raw string, v any) error {
	clean := StripCodeFence(raw)
	if clean == "" {
		return io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal([]byte(clean), v); err == nil {
		return nil
	}

	start := strings.IndexByte(clean, '{')
	end := strings.LastIndexByte(clean, '}')
	if start == -1 || end <= start {
		return fmt.Errorf("no JSON object found in model output (len=%d)", len(clean))
	}
	sub := clean[start : end+1]
	if err := json.Unmarshal([]byte(sub), v); err != nil {
		return fmt.Errorf("failed to unmarshal extracted JSON (len=%d): %w", len(sub), err)
	}
	return nil
}
