package models

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/easeaico/moodjournal/internal/emotion"
)

// VerdictSchema describes the JSON object expected from mood analysis.
func VerdictSchema() *jsonschema.Schema {
	labels := emotion.Labels()
	moods := make([]any, 0, len(labels))
	for _, label := range labels {
		moods = append(moods, string(label))
	}
	maxTitle, maxNutshell, maxSummary := 50, 150, 500

	return &jsonschema.Schema{
		Title: "mood_verdict",
		Type:  "object",
		Properties: map[string]*jsonschema.Schema{
			"title":            {Type: "string", Description: "Short title for the entry", MaxLength: &maxTitle},
			"mood_label":       {Type: "string", Description: "Single emotion from the allowed list", Enum: moods},
			"nutshell":         {Type: "string", Description: "1-2 sentence overview", MaxLength: &maxNutshell},
			"summary":          {Type: "string", Description: "3-4 sentence encouraging analysis", MaxLength: &maxSummary},
			"color_theme":      {Type: "string", Description: "Hex color #RRGGBB", Pattern: "^#[0-9A-Fa-f]{6}$"},
			"background_style": {Type: "string", Description: "CSS background value"},
		},
		Required: []string{"title", "mood_label", "nutshell", "summary", "color_theme", "background_style"},
	}
}
