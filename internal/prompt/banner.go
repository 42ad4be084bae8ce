package prompt

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/utils"
)

// BannerSnippetLimit bounds the entry excerpt embedded in a banner prompt.
const BannerSnippetLimit = 150

// BuildBannerPrompt returns the image generation prompt for an entry banner.
func BuildBannerPrompt(mood emotion.EmotionLabel, snippet string) string {
	data := struct {
		Mood    string
		Snippet string
	}{
		Mood:    string(mood),
		Snippet: utils.Snippet(snippet, BannerSnippetLimit),
	}

	var buf bytes.Buffer
	if err := bannerTemplate.Execute(&buf, data); err != nil {
		slog.Warn("failed to render banner prompt", "error", err.Error())
		return fmt.Sprintf("Abstract banner evoking the emotion '%s'. ABSOLUTELY NO TEXT. No people.", mood)
	}
	return buf.String()
}
