package emotion

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func TestLabelsOrderedAndUnique(t *testing.T) {
	labels := Labels()
	require.Len(t, labels, 30)
	assert.Equal(t, EmotionLabel("joyful"), labels[0])
	assert.Equal(t, EmotionLabel("restless"), labels[len(labels)-1])

	seen := make(map[EmotionLabel]bool)
	for _, label := range labels {
		assert.False(t, seen[label], "duplicate label %s", label)
		seen[label] = true
		assert.Equal(t, strings.ToLower(string(label)), string(label))
	}

	labels[0] = "mutated"
	assert.Equal(t, EmotionLabel("joyful"), Labels()[0])
}

func TestByCategoryCoversVocabulary(t *testing.T) {
	groups := ByCategory()
	require.Len(t, groups, 3)
	assert.Len(t, groups[CategoryPositive], 12)
	assert.Len(t, groups[CategoryReflective], 6)
	assert.Len(t, groups[CategoryChallenging], 12)

	for category, labels := range groups {
		for _, label := range labels {
			assert.Equal(t, category, CategoryOf(label))
		}
	}
}

func TestColorsAreHex(t *testing.T) {
	for _, label := range Labels() {
		assert.Regexp(t, hexColor, ColorFor(label), "label %s", label)
		assert.True(t, strings.HasPrefix(BackgroundFor(label), "linear-gradient("), "label %s", label)
	}
	assert.Regexp(t, hexColor, DefaultColor)
	assert.Regexp(t, hexColor, ColorFor(DefaultLabel))
}

func TestUnknownLabelUsesDefaults(t *testing.T) {
	assert.False(t, IsValid("melancholy"))
	assert.Equal(t, DefaultColor, ColorFor("melancholy"))
	assert.Equal(t, DefaultBackground, BackgroundFor("melancholy"))
	assert.Equal(t, CategoryReflective, CategoryOf("melancholy"))
}

func TestColorTable(t *testing.T) {
	assert.Equal(t, "#28a745", ColorFor("joyful"))
	assert.Equal(t, "#20c997", ColorFor("grateful"))
	assert.Equal(t, "#17a2b8", ColorFor("calm"))
	assert.Equal(t, "#fd7e14", ColorFor("anxious"))
	assert.Equal(t, "#6610f2", ColorFor("lonely"))
	assert.Equal(t, "#868e96", ColorFor("tired"))
	assert.Equal(t, "linear-gradient(135deg, #e6f3ff 0%, #f0f8ff 100%)", BackgroundFor("peaceful"))
}

func TestCalendarTone(t *testing.T) {
	tests := map[string]Tone{
		"joyful":        ToneGood,
		"calm":          ToneGood,
		"contemplative": ToneOkay,
		"tired":         ToneOkay,
		"anxious":       ToneBad,
		"restless":      ToneBad,
		"":              ToneNeutral,
		"melancholy":    ToneNeutral,
	}
	for mood, want := range tests {
		assert.Equal(t, want, CalendarTone(mood), "mood %q", mood)
	}
}
