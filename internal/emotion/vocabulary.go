// Package emotion holds the closed mood vocabulary and its presentation mappings.
package emotion

// EmotionLabel is one mood from the fixed vocabulary.
type EmotionLabel string

// Category groups labels for filtering.
type Category string

const (
	CategoryPositive    Category = "Positive"
	CategoryReflective  Category = "Reflective"
	CategoryChallenging Category = "Challenging"
)

// Tone is the coarse calendar classification of a label.
type Tone string

const (
	ToneGood    Tone = "good"
	ToneOkay    Tone = "okay"
	ToneBad     Tone = "bad"
	ToneNeutral Tone = "neutral"
)

const (
	// DefaultLabel is used whenever a mood cannot be resolved.
	DefaultLabel EmotionLabel = "contemplative"
	// DefaultColor is the base color for unknown labels.
	DefaultColor = "#6c757d"
	// DefaultBackground is the base background for unknown labels.
	DefaultBackground = "linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%)"
)

type palette struct {
	color      string
	background string
}

var (
	paletteBright     = palette{"#28a745", "linear-gradient(135deg, #fff9c4 0%, #f5f5dc 100%)"}
	paletteTeal       = palette{"#20c997", "linear-gradient(135deg, #e8f5e8 0%, #f0fff0 100%)"}
	paletteCalm       = palette{"#17a2b8", "linear-gradient(135deg, #e6f3ff 0%, #f0f8ff 100%)"}
	paletteWarm       = palette{"#ffc107", "linear-gradient(135deg, #fff8dc 0%, #fffacd 100%)"}
	palettePurple     = palette{"#6f42c1", "linear-gradient(135deg, #f3e5f5 0%, #faf0e6 100%)"}
	paletteNeutral    = palette{"#6c757d", "linear-gradient(135deg, #f8f9fa 0%, #e9ecef 100%)"}
	paletteDark       = palette{"#495057", "linear-gradient(135deg, #f1f3f4 0%, #e8eaed 100%)"}
	paletteOrange     = palette{"#fd7e14", "linear-gradient(135deg, #fff3cd 0%, #fef9e7 100%)"}
	paletteRed        = palette{"#dc3545", "linear-gradient(135deg, #f8d7da 0%, #fdf2f2 100%)"}
	palettePink       = palette{"#e83e8c", "linear-gradient(135deg, #fce4ec 0%, #f3e5f5 100%)"}
	paletteBlueViolet = palette{"#6610f2", "linear-gradient(135deg, #e1e5f2 0%, #f0f4f8 100%)"}
	paletteMuted      = palette{"#868e96", "linear-gradient(135deg, #f5f5f5 0%, #eeeeee 100%)"}
)

type emotionSpec struct {
	label    EmotionLabel
	category Category
	tone     Tone
	palette  palette
}

// vocabulary is ordered: the order is the prompt order and the Labels() order.
var vocabulary = []emotionSpec{
	{"joyful", CategoryPositive, ToneGood, paletteBright},
	{"grateful", CategoryPositive, ToneGood, paletteTeal},
	{"excited", CategoryPositive, ToneGood, paletteBright},
	{"peaceful", CategoryPositive, ToneGood, paletteCalm},
	{"content", CategoryPositive, ToneGood, paletteTeal},
	{"optimistic", CategoryPositive, ToneGood, paletteWarm},
	{"inspired", CategoryPositive, ToneGood, palettePurple},
	{"proud", CategoryPositive, ToneGood, palettePurple},
	{"confident", CategoryPositive, ToneGood, paletteWarm},
	{"hopeful", CategoryPositive, ToneGood, paletteWarm},
	{"energetic", CategoryPositive, ToneGood, paletteBright},
	{"loved", CategoryPositive, ToneGood, paletteTeal},

	{"contemplative", CategoryReflective, ToneOkay, paletteNeutral},
	{"nostalgic", CategoryReflective, ToneOkay, paletteDark},
	{"curious", CategoryReflective, ToneOkay, paletteNeutral},
	{"calm", CategoryReflective, ToneGood, paletteCalm},
	{"focused", CategoryReflective, ToneOkay, paletteNeutral},
	{"determined", CategoryReflective, ToneOkay, paletteDark},

	{"anxious", CategoryChallenging, ToneBad, paletteOrange},
	{"frustrated", CategoryChallenging, ToneBad, paletteRed},
	{"overwhelmed", CategoryChallenging, ToneBad, palettePink},
	{"sad", CategoryChallenging, ToneBad, paletteBlueViolet},
	{"angry", CategoryChallenging, ToneBad, paletteRed},
	{"stressed", CategoryChallenging, ToneBad, paletteOrange},
	{"worried", CategoryChallenging, ToneBad, paletteOrange},
	{"lonely", CategoryChallenging, ToneBad, paletteBlueViolet},
	{"disappointed", CategoryChallenging, ToneBad, paletteBlueViolet},
	{"confused", CategoryChallenging, ToneBad, palettePink},
	// tired sits with the reflective moods on the calendar.
	{"tired", CategoryChallenging, ToneOkay, paletteMuted},
	{"restless", CategoryChallenging, ToneBad, palettePink},
}

var byLabel = func() map[EmotionLabel]emotionSpec {
	m := make(map[EmotionLabel]emotionSpec, len(vocabulary))
	for _, spec := range vocabulary {
		m[spec.label] = spec
	}
	return m
}()

// Labels returns the vocabulary in canonical order.
func Labels() []EmotionLabel {
	labels := make([]EmotionLabel, 0, len(vocabulary))
	for _, spec := range vocabulary {
		labels = append(labels, spec.label)
	}
	return labels
}

// Categories returns the categories in display order.
func Categories() []Category {
	return []Category{CategoryPositive, CategoryReflective, CategoryChallenging}
}

// ByCategory returns the labels grouped by category, each group in canonical order.
func ByCategory() map[Category][]EmotionLabel {
	groups := make(map[Category][]EmotionLabel, 3)
	for _, spec := range vocabulary {
		groups[spec.category] = append(groups[spec.category], spec.label)
	}
	return groups
}

// IsValid reports whether label belongs to the vocabulary.
func IsValid(label EmotionLabel) bool {
	_, ok := byLabel[label]
	return ok
}

// CategoryOf returns the category of label. Unknown labels map to the
// category of DefaultLabel.
func CategoryOf(label EmotionLabel) Category {
	return lookup(label).category
}

// ColorFor returns the #RRGGBB color of label.
func ColorFor(label EmotionLabel) string {
	if spec, ok := byLabel[label]; ok {
		return spec.palette.color
	}
	return DefaultColor
}

// BackgroundFor returns the CSS background of label.
func BackgroundFor(label EmotionLabel) string {
	if spec, ok := byLabel[label]; ok {
		return spec.palette.background
	}
	return DefaultBackground
}

// CalendarTone classifies a stored mood string for the calendar view.
// Empty or unknown moods are neutral.
func CalendarTone(mood string) Tone {
	spec, ok := byLabel[EmotionLabel(mood)]
	if !ok {
		return ToneNeutral
	}
	return spec.tone
}

func lookup(label EmotionLabel) emotionSpec {
	if spec, ok := byLabel[label]; ok {
		return spec
	}
	return byLabel[DefaultLabel]
}
