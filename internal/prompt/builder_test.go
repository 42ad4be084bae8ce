package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/types"
)

func TestBuildAnalysisPromptListsVocabulary(t *testing.T) {
	got, err := BuildAnalysisPrompt(types.MediaText)
	require.NoError(t, err)

	for _, label := range emotion.Labels() {
		assert.Contains(t, got, string(label))
	}
	assert.Contains(t, got, "joyful, grateful, excited")
	assert.Contains(t, got, `"mood_label"`)
	assert.NotContains(t, got, "voice recording")
}

func TestBuildAnalysisPromptAudio(t *testing.T) {
	got, err := BuildAnalysisPrompt(types.MediaAudio)
	require.NoError(t, err)
	assert.Contains(t, got, "transcript of a voice recording")
}

func TestBuildAnalysisPromptVisualUsesOwnTemplate(t *testing.T) {
	text, err := BuildAnalysisPrompt(types.MediaText)
	require.NoError(t, err)
	image, err := BuildAnalysisPrompt(types.MediaImage)
	require.NoError(t, err)
	video, err := BuildAnalysisPrompt(types.MediaVideo)
	require.NoError(t, err)

	assert.NotEqual(t, text, image)
	assert.Contains(t, image, "Entry type: image.")
	assert.Contains(t, video, "Entry type: video.")
	assert.Contains(t, video, "restless")
}

func TestBuildBannerPrompt(t *testing.T) {
	long := strings.Repeat("A very very long entry text exceeding one hundred fifty characters. ", 5)
	got := BuildBannerPrompt("peaceful", long)

	assert.Contains(t, got, "peaceful")
	assert.Contains(t, got, "NO TEXT")
	assert.Contains(t, got, "No people")

	start := strings.Index(got, "journal entry: '") + len("journal entry: '")
	end := strings.Index(got[start:], "'.")
	require.Greater(t, end, 0)
	snippet := got[start : start+end]
	assert.LessOrEqual(t, len([]rune(snippet)), BannerSnippetLimit)
	assert.True(t, strings.HasSuffix(snippet, "..."))
}

func TestBuildBannerPromptShortSnippet(t *testing.T) {
	got := BuildBannerPrompt("joyful", "  sunny\nday ")
	assert.Contains(t, got, "journal entry: 'sunny day'")
	assert.Contains(t, got, "Evoke the feeling of joyful")
}
