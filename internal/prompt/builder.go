package prompt

import (
	"bytes"
	"fmt"

	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/types"
)

// BuildAnalysisPrompt renders the system prompt for a mood analysis call.
// Written and spoken entries share one template; image and video entries use another.
func BuildAnalysisPrompt(kind types.MediaKind) (string, error) {
	labels := emotion.Labels()
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, string(label))
	}

	data := struct {
		Kind   string
		Labels []string
	}{
		Kind:   string(kind),
		Labels: names,
	}

	tmpl := writtenTemplate
	if kind.IsVisual() {
		tmpl = visualTemplate
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	return buf.String(), nil
}
