package types

import (
	"fmt"
	"strings"
)

// MediaKind is the input type of a journal entry.
type MediaKind string

const (
	MediaText  MediaKind = "text"
	MediaAudio MediaKind = "audio"
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// ParseMediaKind maps an input type string to a MediaKind.
// "speech" is accepted as an alias of audio for older clients.
func ParseMediaKind(value string) (MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text":
		return MediaText, nil
	case "audio", "speech":
		return MediaAudio, nil
	case "image":
		return MediaImage, nil
	case "video":
		return MediaVideo, nil
	default:
		return "", fmt.Errorf("invalid input type: %s", value)
	}
}

// IsVisual reports whether the kind carries visual media.
func (k MediaKind) IsVisual() bool {
	return k == MediaImage || k == MediaVideo
}

// AnalysisRequest is the input of one mood analysis call.
type AnalysisRequest struct {
	Content string
	Kind    MediaKind
}

// AnalysisVerdict is the finalized output of the mood analysis pipeline.
// Every field is populated.
type AnalysisVerdict struct {
	Title           string `json:"title"`
	Mood            string `json:"mood_label"`
	Nutshell        string `json:"nutshell"`
	Summary         string `json:"summary"`
	ColorTheme      string `json:"color_theme"`
	BackgroundStyle string `json:"background_style"`
}

// DraftVerdict is the unvalidated verdict parsed from raw model output.
type DraftVerdict struct {
	Title           string
	Mood            string
	Nutshell        string
	Summary         string
	ColorTheme      string
	BackgroundStyle string
}
