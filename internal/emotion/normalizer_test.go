package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExactMatchIsIdentity(t *testing.T) {
	for _, label := range Labels() {
		assert.Equal(t, label, Normalize(string(label)))
	}
}

func TestNormalizeCaseAndWhitespace(t *testing.T) {
	assert.Equal(t, EmotionLabel("anxious"), Normalize("  Anxious\n"))
	assert.Equal(t, EmotionLabel("peaceful"), Normalize("PEACEFUL"))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, DefaultLabel, Normalize(""))
	assert.Equal(t, DefaultLabel, Normalize("   "))
}

func TestNormalizeKeywordRules(t *testing.T) {
	tests := map[string]EmotionLabel{
		"happy":              "joyful",
		"Very Happy":         "joyful",
		"thankful":           "grateful",
		"thrilled":           "excited",
		"relaxed":            "peaceful",
		"reflective":         "contemplative",
		"nervous":            "anxious",
		"irritated":          "frustrated",
		"too much going on":  "overwhelmed",
		"feeling down":       "sad",
		"furious":            "angry",
		"tension":            "stressed",
		"isolated":           "lonely",
		"failed again":       "disappointed",
		"let down":           "sad",
		"puzzled":            "confused",
		"exhausted":          "tired",
		"unsettled":          "restless",
		"melancholy":         DefaultLabel,
		"¯\\_(ツ)_/¯":         DefaultLabel,
		"happy but nervous":  "joyful",
		"nervous but happy!": "joyful",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizeIsClosed(t *testing.T) {
	inputs := []string{"", "x", "angsty", "{\"mood\":\"joy\"}", "12345", "mood_label: anxious", "ПРИВЕТ"}
	for _, in := range inputs {
		assert.True(t, IsValid(Normalize(in)), "input %q", in)
	}
}
