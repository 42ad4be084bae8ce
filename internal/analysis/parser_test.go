package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/moodjournal/internal/types"
)

func TestParseCodeFence(t *testing.T) {
	raw := "```json\n{\"title\":\"X\",\"mood\":\"joyful\",\"summary\":\"S\",\"nutshell\":\"N\",\"color_theme\":\"#123456\",\"background_style\":\"sunny\"}\n```"
	got := Parse(raw, types.MediaText)

	require.Equal(t, OutcomeJSON, got.Outcome)
	assert.Equal(t, types.DraftVerdict{
		Title:           "X",
		Mood:            "joyful",
		Nutshell:        "N",
		Summary:         "S",
		ColorTheme:      "#123456",
		BackgroundStyle: "sunny",
	}, got.Draft)
	assert.Equal(t, raw, got.Raw)
}

func TestParseMoodLabelKeyWins(t *testing.T) {
	got := Parse(`{"mood":"sad","mood_label":"calm","summary":"ok"}`, types.MediaText)
	require.True(t, got.OK())
	assert.Equal(t, "calm", got.Draft.Mood)
}

func TestParseNotJSON(t *testing.T) {
	got := Parse("not json at all", types.MediaText)

	assert.Equal(t, OutcomeMalformed, got.Outcome)
	assert.False(t, got.OK())
	assert.Equal(t, "Written Thoughts", got.Draft.Title)
	assert.Equal(t, DefaultNutshell, got.Draft.Nutshell)
	assert.Equal(t, DefaultSummary, got.Draft.Summary)
	assert.Empty(t, got.Draft.Mood)
}

func TestParseExtractsFields(t *testing.T) {
	got := Parse("mood_label: anxious, great summary text", types.MediaText)

	require.Equal(t, OutcomeExtracted, got.Outcome)
	assert.Equal(t, "anxious", got.Draft.Mood)
	assert.Equal(t, DefaultSummary, got.Draft.Summary)
}

func TestParseExtractsFromBrokenJSON(t *testing.T) {
	raw := `{"title": "Rainy Walk", "mood": "Peaceful", "nutshell": "A quiet walk in the rain.", "color_theme": "#17A2B8",`
	got := Parse(raw, types.MediaAudio)

	require.Equal(t, OutcomeExtracted, got.Outcome)
	assert.Equal(t, "Rainy Walk", got.Draft.Title)
	assert.Equal(t, "Peaceful", got.Draft.Mood)
	assert.Equal(t, "A quiet walk in the rain.", got.Draft.Nutshell)
	assert.Equal(t, "#17A2B8", got.Draft.ColorTheme)
	assert.Equal(t, DefaultSummary, got.Draft.Summary)
}

func TestParseEmptyObjectFallsThrough(t *testing.T) {
	got := Parse("{}", types.MediaVideo)
	assert.Equal(t, OutcomeMalformed, got.Outcome)
	assert.Equal(t, "Video Memory", got.Draft.Title)
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "Written Thoughts", DefaultTitle(types.MediaText))
	assert.Equal(t, "Voice Reflection", DefaultTitle(types.MediaAudio))
	assert.Equal(t, "Visual Moment", DefaultTitle(types.MediaImage))
	assert.Equal(t, "Video Memory", DefaultTitle(types.MediaVideo))
	assert.Equal(t, "Written Thoughts", DefaultTitle(""))
}
