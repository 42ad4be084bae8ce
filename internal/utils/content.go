package utils

import (
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"
)

const ellipsis = "..."

func ExtractContentText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// TruncateRunes cuts text to at most limit runes, ending with "..." when cut.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}
	return strings.TrimRight(string(runes[:limit-len(ellipsis)]), " ") + ellipsis
}

// Snippet collapses whitespace and returns at most limit runes of text.
func Snippet(text string, limit int) string {
	return TruncateRunes(strings.Join(strings.Fields(text), " "), limit)
}
