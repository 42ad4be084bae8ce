package prompt

import (
	"strings"
	"text/template"
)

const analysisHeaderText = `You are a supportive and insightful mood analyst. Analyze this journal entry with warmth and understanding, focusing on growth, resilience, and positive aspects wherever possible.

Look for the overall emotional journey: what the person experienced, learned, or felt. When analyzing challenging emotions, frame them as part of the human experience and growth process.`

const writtenEntryText = `{{template "header"}}
{{- if eq .Kind "audio"}}

The entry below is a transcript of a voice recording. Spoken language may ramble; focus on what was meant.
{{- end}}

You MUST select the mood_label from this exact list only:
{{join .Labels ", "}}

Choose the single emotion that best captures the overall emotional tone of the entry.
{{template "format"}}`

const visualEntryText = `{{template "header"}}

Entry type: {{.Kind}}. The entry is a photo or video the writer captured. The text below is the description the writer attached, or a placeholder when they wrote nothing. Infer the mood from the description and the fact that they chose to capture this moment; do not invent details that are not described.

You MUST select the mood_label from this exact list only:
{{join .Labels ", "}}

Choose the single emotion that best captures the overall emotional tone of the entry.
{{template "format"}}`

const formatText = `
Also provide:
- A short "title" (at most 6 words) for the entry
- A brief "nutshell" summary (1-2 sentences) that captures the key mood and main points quickly
- A detailed "summary" (3-4 sentences) that provides a thoughtful, encouraging analysis of the person's experience, highlighting positive elements, lessons learned, or inner strength shown
- A "color_theme" hex color (#RRGGBB) and a "background_style" CSS background that suit the mood
- The response must be valid JSON only

Respond ONLY in this exact JSON format:
{
  "title": "short title",
  "mood_label": "one_emotion_from_the_list_above",
  "nutshell": "brief 1-2 sentence overview of mood and main points",
  "summary": "detailed 3-4 sentence encouraging analysis",
  "color_theme": "#RRGGBB",
  "background_style": "linear-gradient(...)"
}

Important: The mood_label must be exactly one of the predefined emotions listed above, with no variations or alternatives.`

const bannerText = `Create a realistic banner image representing the emotion '{{.Mood}}' inspired by this journal entry: '{{.Snippet}}'.
Style: soft gradients, gentle shapes, calming colors that reflect both the mood and themes from the entry.
ABSOLUTELY NO TEXT, NO WORDS, NO LETTERS, NO SYMBOLS - pure visual representation only.
No people, no specific objects.
Evoke the feeling of {{.Mood}} and the essence of the entry's themes through color, form, and atmosphere only.
Mobile-friendly banner format.`

var funcs = template.FuncMap{
	"join": func(values []string, sep string) string {
		return strings.Join(values, sep)
	},
}

var (
	writtenTemplate = newAnalysisTemplate("written", writtenEntryText)
	visualTemplate  = newAnalysisTemplate("visual", visualEntryText)
	bannerTemplate  = template.Must(template.New("banner").Parse(bannerText))
)

func newAnalysisTemplate(name, text string) *template.Template {
	t := template.Must(template.New(name).Funcs(funcs).Parse(text))
	template.Must(t.New("header").Parse(analysisHeaderText))
	template.Must(t.New("format").Parse(formatText))
	return t
}
