// Package analysis turns journal entries into validated mood verdicts.
package analysis

import (
	"regexp"
	"strings"

	"github.com/easeaico/moodjournal/internal/types"
	"github.com/easeaico/moodjournal/internal/utils"
)

const (
	DefaultNutshell = "Brief summary unavailable."
	DefaultSummary  = "Detailed summary unavailable."
)

// Outcome tells which strategy produced a ParseResult.
type Outcome int

const (
	// OutcomeMalformed means no field could be recovered from the raw text.
	OutcomeMalformed Outcome = iota
	OutcomeJSON
	OutcomeExtracted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeJSON:
		return "json"
	case OutcomeExtracted:
		return "extracted"
	default:
		return "malformed"
	}
}

// ParseResult is the tagged result of parsing raw model output.
// Draft is always populated with defaults, even when malformed.
type ParseResult struct {
	Outcome Outcome
	Draft   types.DraftVerdict
	Raw     string
}

// OK reports whether any field was recovered.
func (r ParseResult) OK() bool {
	return r.Outcome != OutcomeMalformed
}

type rawVerdict struct {
	Title           string `json:"title"`
	Mood            string `json:"mood"`
	MoodLabel       string `json:"mood_label"`
	Nutshell        string `json:"nutshell"`
	Summary         string `json:"summary"`
	ColorTheme      string `json:"color_theme"`
	BackgroundStyle string `json:"background_style"`
}

var (
	titleRE      = regexp.MustCompile(`(?i)\btitle"?\s*[:=]\s*"?([^"\n,{}]{3,50})`)
	moodRE       = regexp.MustCompile(`(?i)\bmood(?:_label)?"?\s*[:=]\s*"?([a-z]{3,30})`)
	nutshellRE   = regexp.MustCompile(`(?i)\bnutshell"?\s*[:=]\s*"?([^"\n{}]{3,150})`)
	summaryRE    = regexp.MustCompile(`(?i)\bsummary"?\s*[:=]\s*"?([^"\n{}]{3,300})`)
	colorRE      = regexp.MustCompile(`(?i)\bcolor(?:_theme)?"?\s*[:=]\s*"?(#[0-9a-f]{6})\b`)
	backgroundRE = regexp.MustCompile(`(?i)\bbackground(?:_style)?"?\s*[:=]\s*"?([^"\n{}]{3,120})`)
)

// Parse extracts a draft verdict from raw model output. It tries a JSON
// decode first and falls back to field extraction by pattern.
func Parse(raw string, kind types.MediaKind) ParseResult {
	result := ParseResult{Raw: raw}

	var decoded rawVerdict
	if err := utils.DecodeModelJSON(raw, &decoded); err == nil {
		mood := decoded.MoodLabel
		if strings.TrimSpace(mood) == "" {
			mood = decoded.Mood
		}
		draft := types.DraftVerdict{
			Title:           strings.TrimSpace(decoded.Title),
			Mood:            strings.TrimSpace(mood),
			Nutshell:        strings.TrimSpace(decoded.Nutshell),
			Summary:         strings.TrimSpace(decoded.Summary),
			ColorTheme:      strings.TrimSpace(decoded.ColorTheme),
			BackgroundStyle: strings.TrimSpace(decoded.BackgroundStyle),
		}
		if hasAnyField(draft) {
			result.Outcome = OutcomeJSON
			result.Draft = withDefaults(draft, kind)
			return result
		}
	}

	draft := extractFields(raw)
	if hasAnyField(draft) {
		result.Outcome = OutcomeExtracted
	}
	result.Draft = withDefaults(draft, kind)
	return result
}

// DefaultTitle is the title used when none could be derived for kind.
func DefaultTitle(kind types.MediaKind) string {
	switch kind {
	case types.MediaAudio:
		return "Voice Reflection"
	case types.MediaImage:
		return "Visual Moment"
	case types.MediaVideo:
		return "Video Memory"
	default:
		return "Written Thoughts"
	}
}

func extractFields(raw string) types.DraftVerdict {
	return types.DraftVerdict{
		Title:           findField(titleRE, raw),
		Mood:            findField(moodRE, raw),
		Nutshell:        findField(nutshellRE, raw),
		Summary:         findField(summaryRE, raw),
		ColorTheme:      findField(colorRE, raw),
		BackgroundStyle: findField(backgroundRE, raw),
	}
}

func findField(re *regexp.Regexp, raw string) string {
	match := re.FindStringSubmatch(raw)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func hasAnyField(d types.DraftVerdict) bool {
	return d.Title != "" || d.Mood != "" || d.Nutshell != "" ||
		d.Summary != "" || d.ColorTheme != "" || d.BackgroundStyle != ""
}

func withDefaults(d types.DraftVerdict, kind types.MediaKind) types.DraftVerdict {
	if d.Title == "" {
		d.Title = DefaultTitle(kind)
	}
	if d.Nutshell == "" {
		d.Nutshell = DefaultNutshell
	}
	if d.Summary == "" {
		d.Summary = DefaultSummary
	}
	return d
}
