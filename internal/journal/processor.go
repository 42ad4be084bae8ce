// Package journal runs AI enrichment of journal entries: transcription,
// mood analysis, embeddings and banner images.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/prompt"
	"github.com/easeaico/moodjournal/internal/types"
)

const (
	// BannerFolder is the blob folder for generated banners.
	BannerFolder = "journal_banners"
)

// ErrBannerUnavailable is returned when a banner cannot be generated for an entry.
var ErrBannerUnavailable = errors.New("banner generation unavailable")

// EntryStore is the persistence used by the processor.
type EntryStore interface {
	GetByID(ctx context.Context, id int) (*types.JournalEntry, error)
	UpdateContent(ctx context.Context, id int, content string) error
	UpdateTitle(ctx context.Context, id int, title string) error
	UpdateAnalysis(ctx context.Context, id int, verdict types.AnalysisVerdict) error
	UpdateBanner(ctx context.Context, id int, url string) error
}

// Analyzer produces a mood verdict. It never fails.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalysisRequest) types.AnalysisVerdict
}

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeHint string) (string, error)
}

// ImageGenerator returns the URL (or data URL) of an image generated from prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Uploader copies an image into durable storage and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, sourceURL, folder, id string) (string, error)
}

// MediaReader loads uploaded media by key.
type MediaReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Indexer stores an embedding for an analyzed entry.
type Indexer interface {
	Index(ctx context.Context, entry *types.JournalEntry) error
}

// Option configures a Processor.
type Option func(*Processor)

// WithTranscriber enables audio entries.
func WithTranscriber(media MediaReader, transcriber Transcriber) Option {
	return func(p *Processor) {
		p.media = media
		p.transcriber = transcriber
	}
}

// WithBanner enables banner generation.
func WithBanner(images ImageGenerator, uploader Uploader) Option {
	return func(p *Processor) {
		p.images = images
		p.uploader = uploader
	}
}

// WithIndexer enables embeddings of analyzed entries.
func WithIndexer(indexer Indexer) Option {
	return func(p *Processor) {
		p.indexer = indexer
	}
}

// WithLogger sets the processor logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Processor enriches a stored entry with AI output.
type Processor struct {
	entries     EntryStore
	analyzer    Analyzer
	media       MediaReader
	transcriber Transcriber
	images      ImageGenerator
	uploader    Uploader
	indexer     Indexer
	logger      *slog.Logger
}

// NewProcessor returns a Processor.
func NewProcessor(entries EntryStore, analyzer Analyzer, opts ...Option) *Processor {
	p := &Processor{
		entries:  entries,
		analyzer: analyzer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process analyzes entry id, stores the verdict, then indexes it and
// generates its banner. Only loading and persisting the entry can fail;
// AI failures are logged and degrade to fallback values.
func (p *Processor) Process(ctx context.Context, id int) error {
	entry, err := p.entries.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load entry %d: %w", id, err)
	}

	var analyzed bool
	switch entry.InputType {
	case types.MediaAudio:
		analyzed, err = p.processAudio(ctx, entry)
	case types.MediaImage, types.MediaVideo:
		analyzed, err = p.processVisual(ctx, entry)
	default:
		analyzed, err = p.processText(ctx, entry)
	}
	if err != nil {
		return err
	}
	if !analyzed {
		return nil
	}

	if p.indexer != nil {
		if err := p.indexer.Index(ctx, entry); err != nil {
			p.logger.Warn("failed to index entry", "entry_id", entry.ID, "error", err.Error())
		}
	}

	if p.bannerEnabled() {
		if _, err := p.RegenerateBanner(ctx, entry); err != nil {
			p.logger.Warn("failed to generate banner", "entry_id", entry.ID, "error", err.Error())
		}
	}
	return nil
}

func (p *Processor) processAudio(ctx context.Context, entry *types.JournalEntry) (bool, error) {
	if !entry.HasMedia() {
		p.logger.Info("audio entry has no media, skipping", "entry_id", entry.ID)
		return false, nil
	}
	if p.transcriber == nil || p.media == nil {
		p.logger.Warn("transcription not configured", "entry_id", entry.ID)
		return false, p.fallbackVoiceTitle(ctx, entry)
	}

	audio, err := p.media.Get(ctx, entry.MediaKey)
	if err != nil {
		p.logger.Error("failed to read audio", "entry_id", entry.ID, "error", err.Error())
		return false, p.fallbackVoiceTitle(ctx, entry)
	}

	transcript, err := p.transcriber.Transcribe(ctx, audio, entry.MediaMIME)
	if err != nil {
		p.logger.Error("audio transcription failed", "entry_id", entry.ID, "error", err.Error())
		return false, p.fallbackVoiceTitle(ctx, entry)
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		p.logger.Warn("empty transcription", "entry_id", entry.ID)
		return false, p.fallbackVoiceTitle(ctx, entry)
	}

	if err := p.entries.UpdateContent(ctx, entry.ID, transcript); err != nil {
		return false, fmt.Errorf("failed to store transcript: %w", err)
	}
	entry.Content = transcript
	return true, p.analyze(ctx, entry, transcript)
}

func (p *Processor) processVisual(ctx context.Context, entry *types.JournalEntry) (bool, error) {
	content := strings.TrimSpace(entry.Content)
	if content == "" {
		if !entry.HasMedia() {
			p.logger.Info("visual entry has no media, skipping", "entry_id", entry.ID)
			return false, nil
		}
		content = VisualPlaceholder(entry)
	}
	return true, p.analyze(ctx, entry, content)
}

func (p *Processor) processText(ctx context.Context, entry *types.JournalEntry) (bool, error) {
	content := strings.TrimSpace(entry.Content)
	if content == "" {
		return false, nil
	}
	return true, p.analyze(ctx, entry, content)
}

func (p *Processor) analyze(ctx context.Context, entry *types.JournalEntry, content string) error {
	verdict := p.analyzer.Analyze(ctx, types.AnalysisRequest{
		Content: content,
		Kind:    entry.InputType,
	})
	if err := p.entries.UpdateAnalysis(ctx, entry.ID, verdict); err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}
	applyVerdict(entry, verdict)
	p.logger.Info("entry analyzed", "entry_id", entry.ID, "mood", verdict.Mood)
	return nil
}

func (p *Processor) fallbackVoiceTitle(ctx context.Context, entry *types.JournalEntry) error {
	title := VoiceRecordingTitle(entry)
	if err := p.entries.UpdateTitle(ctx, entry.ID, title); err != nil {
		return fmt.Errorf("failed to store fallback title: %w", err)
	}
	entry.Title = title
	return nil
}

func (p *Processor) bannerEnabled() bool {
	return p.images != nil && p.uploader != nil
}

// RegenerateBanner builds a banner for an analyzed entry, stores it and
// returns its URL.
func (p *Processor) RegenerateBanner(ctx context.Context, entry *types.JournalEntry) (string, error) {
	if !p.bannerEnabled() {
		return "", ErrBannerUnavailable
	}
	if entry == nil || strings.TrimSpace(entry.MoodLabel) == "" {
		return "", fmt.Errorf("%w: entry has no mood label", ErrBannerUnavailable)
	}

	snippet := entry.Content
	if strings.TrimSpace(snippet) == "" {
		snippet = entry.Summary
	}
	bannerPrompt := prompt.BuildBannerPrompt(emotion.EmotionLabel(entry.MoodLabel), snippet)
	imageURL, err := p.images.Generate(ctx, bannerPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate banner image: %w", err)
	}
	if imageURL == "" {
		return "", fmt.Errorf("image generator returned no image")
	}

	url, err := p.uploader.Upload(ctx, imageURL, BannerFolder, BannerID(entry.ID))
	if err != nil {
		return "", fmt.Errorf("failed to upload banner: %w", err)
	}
	if err := p.entries.UpdateBanner(ctx, entry.ID, url); err != nil {
		return "", fmt.Errorf("failed to store banner: %w", err)
	}
	entry.BannerURL = url
	p.logger.Info("banner stored", "entry_id", entry.ID, "url", url)
	return url, nil
}

// BannerID is the blob id of an entry banner.
func BannerID(entryID int) string {
	return fmt.Sprintf("entry_%d_banner", entryID)
}

// VoiceRecordingTitle is the title of an audio entry that could not be transcribed.
func VoiceRecordingTitle(entry *types.JournalEntry) string {
	return "Voice Recording - " + entry.FormattedDate()
}

// VisualPlaceholder describes a photo or video entry that has no text.
func VisualPlaceholder(entry *types.JournalEntry) string {
	if entry.InputType == types.MediaVideo {
		return fmt.Sprintf("Video entry uploaded on %s. Video content captured.", entry.FormattedDate())
	}
	return fmt.Sprintf("Image entry uploaded on %s. Visual content captured.", entry.FormattedDate())
}

func applyVerdict(entry *types.JournalEntry, verdict types.AnalysisVerdict) {
	entry.Title = verdict.Title
	entry.MoodLabel = verdict.Mood
	entry.Nutshell = verdict.Nutshell
	entry.Summary = verdict.Summary
	entry.ColorTheme = verdict.ColorTheme
	entry.Background = verdict.BackgroundStyle
}

// PendingTitle is the title an entry carries until analysis replaces it.
func PendingTitle(entry *types.JournalEntry) string {
	switch entry.InputType {
	case types.MediaAudio:
		return VoiceRecordingTitle(entry)
	case types.MediaImage:
		return "Image Entry - " + entry.FormattedDate()
	case types.MediaVideo:
		return "Video Entry - " + entry.FormattedDate()
	default:
		return "Journal Entry - " + entry.FormattedDate()
	}
}
