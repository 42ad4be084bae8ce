package emotion

import "strings"

type keywordRule struct {
	keywords []string
	label    EmotionLabel
}

// rules are checked in order and the first match wins.
var rules = []keywordRule{
	{[]string{"happy", "joy", "cheerful", "delighted"}, "joyful"},
	{[]string{"thank", "appreciate"}, "grateful"},
	{[]string{"enthus", "thrill", "pumped"}, "excited"},
	{[]string{"relax", "serene", "tranquil"}, "peaceful"},
	{[]string{"satisfy", "pleased"}, "content"},
	{[]string{"positive", "upbeat"}, "optimistic"},
	{[]string{"creative", "motivated"}, "inspired"},
	{[]string{"accomplish", "achieve"}, "proud"},
	{[]string{"sure", "certain"}, "confident"},
	{[]string{"expect", "anticipat"}, "hopeful"},
	{[]string{"active", "vigor"}, "energetic"},
	{[]string{"affection", "care"}, "loved"},
	{[]string{"think", "reflect", "ponder"}, "contemplative"},
	{[]string{"memory", "remember", "past"}, "nostalgic"},
	{[]string{"wonder", "interest"}, "curious"},
	{[]string{"quiet", "still"}, "calm"},
	{[]string{"concentrate", "attentive"}, "focused"},
	{[]string{"resolve", "commit"}, "determined"},
	{[]string{"nervous", "worry", "fear"}, "anxious"},
	{[]string{"annoy", "irritat", "upset"}, "frustrated"},
	{[]string{"too much", "busy", "burden"}, "overwhelmed"},
	{[]string{"sorrow", "grief", "down"}, "sad"},
	{[]string{"mad", "rage", "furious"}, "angry"},
	{[]string{"pressure", "tension"}, "stressed"},
	{[]string{"concern", "trouble"}, "worried"},
	{[]string{"alone", "isolat"}, "lonely"},
	{[]string{"let down", "failed"}, "disappointed"},
	{[]string{"puzzl", "unclear"}, "confused"},
	{[]string{"exhaust", "weary"}, "tired"},
	{[]string{"agitat", "unsettl"}, "restless"},
}

// Normalize resolves an arbitrary model-provided mood to a vocabulary label.
// It never returns a label outside the vocabulary.
func Normalize(candidate string) EmotionLabel {
	clean := strings.ToLower(strings.TrimSpace(candidate))
	if clean == "" {
		return DefaultLabel
	}
	if label := EmotionLabel(clean); IsValid(label) {
		return label
	}
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(clean, keyword) {
				return rule.label
			}
		}
	}
	return DefaultLabel
}
