package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/prompt"
	"github.com/easeaico/moodjournal/internal/types"
	"github.com/easeaico/moodjournal/internal/utils"
)

const (
	FallbackNutshell = "Entry saved successfully."
	FallbackSummary  = "Your journal entry has been saved and is ready for you to review."
)

// Completer sends a system prompt and user content to a completion model
// and returns the raw text reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, content string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, systemPrompt, content string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	return f(ctx, systemPrompt, content)
}

// ColorPolicy decides whether model-suggested colors survive.
type ColorPolicy string

const (
	// ColorPolicyVocabulary always uses the vocabulary color and background.
	ColorPolicyVocabulary ColorPolicy = "vocabulary"
	// ColorPolicyPreferModel keeps valid model colors and falls back to the vocabulary.
	ColorPolicyPreferModel ColorPolicy = "prefer_model"
)

// ParseColorPolicy maps a config value to a ColorPolicy.
func ParseColorPolicy(value string) (ColorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ColorPolicyVocabulary):
		return ColorPolicyVocabulary, nil
	case string(ColorPolicyPreferModel):
		return ColorPolicyPreferModel, nil
	default:
		return "", fmt.Errorf("invalid color policy: %s", value)
	}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithColorPolicy(policy ColorPolicy) Option {
	return func(p *Pipeline) {
		p.policy = policy
	}
}

// WithTimeout bounds a single completion call. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = timeout
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Pipeline produces mood verdicts for journal entries. It is stateless
// and safe for concurrent use.
type Pipeline struct {
	completer Completer
	policy    ColorPolicy
	timeout   time.Duration
	logger    *slog.Logger
}

// NewPipeline returns a Pipeline backed by completer.
func NewPipeline(completer Completer, opts ...Option) *Pipeline {
	p := &Pipeline{
		completer: completer,
		policy:    ColorPolicyVocabulary,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze returns the verdict for req. It never fails: any error is logged
// and replaced by FallbackVerdict.
func (p *Pipeline) Analyze(ctx context.Context, req types.AnalysisRequest) (verdict types.AnalysisVerdict) {
	kind := req.Kind
	if kind == "" {
		kind = types.MediaText
	}
	logger := p.log()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("mood analysis panicked", "panic", fmt.Sprint(r))
			verdict = FallbackVerdict(kind)
		}
	}()

	content := strings.TrimSpace(req.Content)
	if content == "" {
		logger.Warn("mood analysis skipped: empty content", "kind", kind)
		return FallbackVerdict(kind)
	}
	if p == nil || p.completer == nil {
		logger.Error("mood analysis not configured")
		return FallbackVerdict(kind)
	}

	system, err := prompt.BuildAnalysisPrompt(kind)
	if err != nil {
		logger.Error("failed to build analysis prompt", "error", err.Error())
		return FallbackVerdict(kind)
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	raw, err := p.completer.Complete(callCtx, system, content)
	if err != nil {
		logger.Error("mood analysis failed", "kind", kind, "error", err.Error())
		return FallbackVerdict(kind)
	}

	parsed := Parse(raw, kind)
	if !parsed.OK() {
		logger.Warn("mood analysis returned malformed response", "kind", kind, "raw", utils.TruncateRunes(raw, 200))
		return FallbackVerdict(kind)
	}
	logger.Debug("mood analysis parsed", "kind", kind, "outcome", parsed.Outcome.String())

	return p.finalize(parsed.Draft, kind)
}

func (p *Pipeline) finalize(draft types.DraftVerdict, kind types.MediaKind) types.AnalysisVerdict {
	mood := emotion.Normalize(draft.Mood)

	color := emotion.ColorFor(mood)
	background := emotion.BackgroundFor(mood)
	if p.policy == ColorPolicyPreferModel {
		if IsHexColor(draft.ColorTheme) {
			color = draft.ColorTheme
		}
		if isSafeBackground(draft.BackgroundStyle) {
			background = draft.BackgroundStyle
		}
	}

	return types.AnalysisVerdict{
		Title:           orDefault(sanitizeText(draft.Title, MaxTitleLen), DefaultTitle(kind)),
		Mood:            string(mood),
		Nutshell:        orDefault(sanitizeText(draft.Nutshell, MaxNutshellLen), DefaultNutshell),
		Summary:         orDefault(sanitizeText(draft.Summary, MaxSummaryLen), DefaultSummary),
		ColorTheme:      color,
		BackgroundStyle: background,
	}
}

func (p *Pipeline) log() *slog.Logger {
	if p == nil || p.logger == nil {
		return slog.Default()
	}
	return p.logger
}

// FallbackVerdict is returned whenever analysis cannot complete.
func FallbackVerdict(kind types.MediaKind) types.AnalysisVerdict {
	return types.AnalysisVerdict{
		Title:           DefaultTitle(kind),
		Mood:            string(emotion.DefaultLabel),
		Nutshell:        FallbackNutshell,
		Summary:         FallbackSummary,
		ColorTheme:      emotion.ColorFor(emotion.DefaultLabel),
		BackgroundStyle: emotion.BackgroundFor(emotion.DefaultLabel),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
