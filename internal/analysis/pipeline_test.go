package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/types"
)

type fakeCompleter struct {
	reply   string
	err     error
	calls   int
	system  string
	content string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.content = content
	return f.reply, f.err
}

const parkReply = `{"title":"Park Day","mood":"happy","summary":"A warm afternoon with friends.","nutshell":"Sunny fun.","color_theme":"#000000","background_style":"sunny"}`

func TestAnalyzeParkScenario(t *testing.T) {
	completer := &fakeCompleter{reply: parkReply}
	p := NewPipeline(completer)

	got := p.Analyze(context.Background(), types.AnalysisRequest{
		Content: "I had a wonderful day at the park with friends",
		Kind:    types.MediaText,
	})

	assert.Equal(t, "joyful", got.Mood)
	assert.Equal(t, emotion.ColorFor("joyful"), got.ColorTheme)
	assert.Equal(t, emotion.BackgroundFor("joyful"), got.BackgroundStyle)
	assert.Equal(t, "Park Day", got.Title)
	assert.Equal(t, "Sunny fun.", got.Nutshell)
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, "I had a wonderful day at the park with friends", completer.content)
	assert.Contains(t, completer.system, "contemplative")
}

func TestAnalyzePreferModelColors(t *testing.T) {
	p := NewPipeline(&fakeCompleter{reply: parkReply}, WithColorPolicy(ColorPolicyPreferModel))

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "park", Kind: types.MediaText})

	assert.Equal(t, "joyful", got.Mood)
	assert.Equal(t, "#000000", got.ColorTheme)
	assert.Equal(t, "sunny", got.BackgroundStyle)
}

func TestAnalyzePreferModelRejectsInvalidColor(t *testing.T) {
	reply := `{"mood":"sad","color_theme":"blue","background_style":"url(javascript:alert(1)); x"}`
	p := NewPipeline(&fakeCompleter{reply: reply}, WithColorPolicy(ColorPolicyPreferModel))

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "rain", Kind: types.MediaText})

	assert.Equal(t, emotion.ColorFor("sad"), got.ColorTheme)
	assert.Equal(t, emotion.BackgroundFor("sad"), got.BackgroundStyle)
}

func TestAnalyzeMalformedButExtractable(t *testing.T) {
	p := NewPipeline(&fakeCompleter{reply: "mood_label: anxious, great summary text"})

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "deadline tomorrow", Kind: types.MediaText})

	assert.Equal(t, "anxious", got.Mood)
	assert.Equal(t, emotion.ColorFor("anxious"), got.ColorTheme)
	assert.Equal(t, "Written Thoughts", got.Title)
	assert.NotEmpty(t, got.Summary)
}

func TestAnalyzeNetworkError(t *testing.T) {
	p := NewPipeline(&fakeCompleter{err: errors.New("dial tcp: connection refused")})

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "hello", Kind: types.MediaAudio})

	assert.Equal(t, FallbackVerdict(types.MediaAudio), got)
	assert.Equal(t, string(emotion.DefaultLabel), got.Mood)
	assert.Equal(t, "Voice Reflection", got.Title)
	assert.Equal(t, FallbackSummary, got.Summary)
	assert.Equal(t, FallbackNutshell, got.Nutshell)
}

func TestAnalyzeGarbage(t *testing.T) {
	p := NewPipeline(&fakeCompleter{reply: "¯\\_(ツ)_/¯"})

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "hello", Kind: types.MediaImage})
	assert.Equal(t, FallbackVerdict(types.MediaImage), got)
}

func TestAnalyzeEmptyContentSkipsModel(t *testing.T) {
	completer := &fakeCompleter{reply: parkReply}
	p := NewPipeline(completer)

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "   ", Kind: types.MediaText})

	assert.Equal(t, FallbackVerdict(types.MediaText), got)
	assert.Zero(t, completer.calls)
}

func TestAnalyzeRecoversPanic(t *testing.T) {
	p := NewPipeline(CompleterFunc(func(ctx context.Context, systemPrompt, content string) (string, error) {
		panic("boom")
	}))

	var got types.AnalysisVerdict
	require.NotPanics(t, func() {
		got = p.Analyze(context.Background(), types.AnalysisRequest{Content: "x", Kind: types.MediaVideo})
	})
	assert.Equal(t, FallbackVerdict(types.MediaVideo), got)
}

func TestAnalyzeNilPipeline(t *testing.T) {
	var p *Pipeline
	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "x"})
	assert.Equal(t, FallbackVerdict(types.MediaText), got)
}

func TestAnalyzeSanitizesAndTruncates(t *testing.T) {
	reply := `{"title":"<script>alert(1)</script> A very long title that goes on and on and on forever","mood":"Calm","summary":"` +
		strings.Repeat("word ", 200) + `","nutshell":"Fine & dandy {ok}"}`
	p := NewPipeline(&fakeCompleter{reply: reply})

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "x"})

	assert.Equal(t, "calm", got.Mood)
	assert.NotContains(t, got.Title, "<")
	assert.LessOrEqual(t, len([]rune(got.Title)), MaxTitleLen)
	assert.LessOrEqual(t, len([]rune(got.Summary)), MaxSummaryLen)
	assert.True(t, strings.HasSuffix(got.Summary, "..."))
	assert.Equal(t, "Fine dandy ok", got.Nutshell)
}

func TestAnalyzeSanitizedEmptyTitleUsesDefault(t *testing.T) {
	p := NewPipeline(&fakeCompleter{reply: `{"title":"<<<>>>","mood":"proud"}`})

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "x", Kind: types.MediaImage})
	assert.Equal(t, "Visual Moment", got.Title)
	assert.Equal(t, "proud", got.Mood)
}

func TestAnalyzeTimeout(t *testing.T) {
	p := NewPipeline(CompleterFunc(func(ctx context.Context, systemPrompt, content string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), WithTimeout(10*time.Millisecond))

	got := p.Analyze(context.Background(), types.AnalysisRequest{Content: "x"})
	assert.Equal(t, FallbackVerdict(types.MediaText), got)
}

func TestParseColorPolicy(t *testing.T) {
	policy, err := ParseColorPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ColorPolicyVocabulary, policy)

	policy, err = ParseColorPolicy("PREFER_MODEL")
	require.NoError(t, err)
	assert.Equal(t, ColorPolicyPreferModel, policy)

	_, err = ParseColorPolicy("rainbow")
	assert.Error(t, err)
}

func TestAnalyzeConcurrentEntries(t *testing.T) {
	replies := map[string]string{
		"a": `{"title":"Grey","mood":"sad","summary":"A heavy day.","nutshell":"Heavy."}`,
		"b": `{"title":"Bright","mood":"joyful","summary":"A light day.","nutshell":"Light."}`,
	}
	p := NewPipeline(CompleterFunc(func(ctx context.Context, systemPrompt, content string) (string, error) {
		return replies[content], nil
	}))

	const n = 200
	contents := make([]string, n)
	verdicts := make([]types.AnalysisVerdict, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		contents[i] = "a"
		if i%2 == 1 {
			contents[i] = "b"
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			verdicts[i] = p.Analyze(context.Background(), types.AnalysisRequest{Content: contents[i], Kind: types.MediaText})
		}(i)
	}
	wg.Wait()

	for i, got := range verdicts {
		want, title := "sad", "Grey"
		if contents[i] == "b" {
			want, title = "joyful", "Bright"
		}
		require.Equal(t, want, got.Mood, "entry %d", i)
		require.Equal(t, title, got.Title, "entry %d", i)
		require.Equal(t, emotion.ColorFor(emotion.EmotionLabel(want)), got.ColorTheme, "entry %d", i)
	}
}
