package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/easeaico/moodjournal/internal/types"
)

// ErrEntryNotFound is returned when no entry matches the id and owner.
var ErrEntryNotFound = errors.New("journal entry not found")

const (
	// TitleSearchMinLen is the shortest query answered by SearchTitles.
	TitleSearchMinLen = 2
	// TitleSearchLimit caps the number of title matches.
	TitleSearchLimit = 10
	// ListLimitDefault and ListLimitMax bound a ListForUser page.
	ListLimitDefault = 50
	ListLimitMax     = 200
)

// journalEntryModel maps to the journal_entries table.
type journalEntryModel struct {
	ID         int       `gorm:"primaryKey"`
	UserID     string    `gorm:"index:idx_entries_user_date,priority:1;not null"`
	Title      string    `gorm:"size:255"`
	Content    string    `gorm:"type:text"`
	InputType  string    `gorm:"size:16;not null;default:text"`
	EntryDate  time.Time `gorm:"type:date;index:idx_entries_user_date,priority:2;not null"`
	MediaKey   string
	MediaURL   string
	MediaMIME  string           `gorm:"column:media_mime"`
	MoodLabel  string           `gorm:"column:ai_mood_label"`
	ColorTheme string           `gorm:"column:ai_color_theme"`
	Background string           `gorm:"column:ai_background_style"`
	Summary    string           `gorm:"column:ai_summary;type:text"`
	Nutshell   string           `gorm:"column:ai_nutshell"`
	BannerURL  string           `gorm:"column:ai_banner_image_url"`
	Embedding  *pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (journalEntryModel) TableName() string {
	return "journal_entries"
}

// EntryRepo accesses journal entries.
type EntryRepo struct {
	db *gorm.DB
}

// NewEntryRepo returns an EntryRepo.
func NewEntryRepo(db *gorm.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Create inserts entry and fills its id and timestamps.
func (r *EntryRepo) Create(ctx context.Context, entry *types.JournalEntry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	record := entryToModel(entry)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	entry.ID = record.ID
	entry.CreatedAt = record.CreatedAt
	entry.UpdatedAt = record.UpdatedAt
	return nil
}

// GetByID loads an entry regardless of owner. Used by background processing.
func (r *EntryRepo) GetByID(ctx context.Context, id int) (*types.JournalEntry, error) {
	var record journalEntryModel
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, wrapNotFound(err, "failed to get journal entry")
	}
	return entryFromModel(record), nil
}

// GetForUser loads an entry owned by userID.
func (r *EntryRepo) GetForUser(ctx context.Context, userID string, id int) (*types.JournalEntry, error) {
	var record journalEntryModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error; err != nil {
		return nil, wrapNotFound(err, "failed to get journal entry")
	}
	return entryFromModel(record), nil
}

// FindByDate returns the entries of userID on date, oldest first.
func (r *EntryRepo) FindByDate(ctx context.Context, userID string, date time.Time) ([]types.JournalEntry, error) {
	var records []journalEntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date.Format(types.EntryDateLayout)).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query entries by date: %w", err)
	}
	return entriesFromModels(records), nil
}

// ListForUser returns a page of the entries of userID, newest entry date first.
func (r *EntryRepo) ListForUser(ctx context.Context, userID string, limit, offset int) ([]types.JournalEntry, error) {
	if limit <= 0 || limit > ListLimitMax {
		limit = ListLimitDefault
	}
	if offset < 0 {
		offset = 0
	}

	var records []journalEntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entriesFromModels(records), nil
}

// ListByMonth returns the entries of userID in the given month ordered by date.
func (r *EntryRepo) ListByMonth(ctx context.Context, userID string, year int, month time.Month) ([]types.JournalEntry, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var records []journalEntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID,
			start.Format(types.EntryDateLayout), end.Format(types.EntryDateLayout)).
		Order("entry_date ASC, created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query entries by month: %w", err)
	}
	return entriesFromModels(records), nil
}

// AvailableYears returns the distinct years with entries, newest first.
func (r *EntryRepo) AvailableYears(ctx context.Context, userID string) ([]int, error) {
	var years []int
	if err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT CAST(EXTRACT(YEAR FROM entry_date) AS INTEGER) AS year
			FROM journal_entries
			WHERE user_id = ?
			ORDER BY year DESC`, userID).
		Scan(&years).Error; err != nil {
		return nil, fmt.Errorf("failed to query entry years: %w", err)
	}
	return years, nil
}

// SearchTitles returns up to TitleSearchLimit entries whose title contains query.
// Queries shorter than TitleSearchMinLen return nothing.
func (r *EntryRepo) SearchTitles(ctx context.Context, userID, query string) ([]types.TitleMatch, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < TitleSearchMinLen {
		return nil, nil
	}

	var matches []types.TitleMatch
	if err := r.db.WithContext(ctx).
		Model(&journalEntryModel{}).
		Select("id", "title", "created_at").
		Where("user_id = ? AND title ILIKE ?", userID, "%"+escapeLike(query)+"%").
		Order("created_at DESC").
		Limit(TitleSearchLimit).
		Scan(&matches).Error; err != nil {
		return nil, fmt.Errorf("failed to search titles: %w", err)
	}
	return matches, nil
}

// Update writes the user-editable fields of entry. AI fields are left untouched.
func (r *EntryRepo) Update(ctx context.Context, entry *types.JournalEntry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	result := r.db.WithContext(ctx).
		Model(&journalEntryModel{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(editableColumns(entry))
	if result.Error != nil {
		return fmt.Errorf("failed to update journal entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// UpdateContent replaces the entry body, e.g. with an audio transcript.
func (r *EntryRepo) UpdateContent(ctx context.Context, id int, content string) error {
	return r.update(ctx, id, map[string]any{"content": content}, "failed to update entry content")
}

// UpdateTitle replaces the entry title.
func (r *EntryRepo) UpdateTitle(ctx context.Context, id int, title string) error {
	return r.update(ctx, id, map[string]any{"title": title}, "failed to update entry title")
}

// UpdateAnalysis stores a verdict on the entry.
func (r *EntryRepo) UpdateAnalysis(ctx context.Context, id int, verdict types.AnalysisVerdict) error {
	return r.update(ctx, id, map[string]any{
		"title":               verdict.Title,
		"ai_mood_label":       verdict.Mood,
		"ai_nutshell":         verdict.Nutshell,
		"ai_summary":          verdict.Summary,
		"ai_color_theme":      verdict.ColorTheme,
		"ai_background_style": verdict.BackgroundStyle,
	}, "failed to update entry analysis")
}

// UpdateBanner stores the banner image URL.
func (r *EntryRepo) UpdateBanner(ctx context.Context, id int, url string) error {
	return r.update(ctx, id, map[string]any{"ai_banner_image_url": url}, "failed to update entry banner")
}

// UpdateEmbedding stores the entry embedding.
func (r *EntryRepo) UpdateEmbedding(ctx context.Context, id int, embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("embedding cannot be empty")
	}
	vector := pgvector.NewVector(embedding)
	return r.update(ctx, id, map[string]any{"embedding": vector}, "failed to update entry embedding")
}

// SearchSimilar returns the entries of userID closest to embedding, excluding excludeID.
func (r *EntryRepo) SearchSimilar(ctx context.Context, userID string, excludeID int, embedding []float32, topK int, threshold float64) ([]types.SimilarEntry, error) {
	if len(embedding) == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = 5
	}

	query := `
		SELECT id, title, ai_mood_label AS mood_label, ai_nutshell AS nutshell, entry_date,
		       1 - (embedding <=> $1) AS similarity
		FROM journal_entries
		WHERE user_id = $2
		  AND id <> $3
		  AND embedding IS NOT NULL
		  AND 1 - (embedding <=> $1) > $4
		ORDER BY similarity DESC
		LIMIT $5`

	vector := pgvector.NewVector(embedding)
	var results []types.SimilarEntry
	if err := r.db.WithContext(ctx).
		Raw(query, vector, userID, excludeID, threshold, topK).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to search similar entries: %w", err)
	}
	return results, nil
}

// Delete removes an entry owned by userID.
func (r *EntryRepo) Delete(ctx context.Context, userID string, id int) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&journalEntryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete journal entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *EntryRepo) update(ctx context.Context, id int, values map[string]any, msg string) error {
	result := r.db.WithContext(ctx).
		Model(&journalEntryModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("%s: %w", msg, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func editableColumns(entry *types.JournalEntry) map[string]any {
	inputType := string(entry.InputType)
	if inputType == "" {
		inputType = string(types.MediaText)
	}
	return map[string]any{
		"title":      entry.Title,
		"content":    entry.Content,
		"input_type": inputType,
		"entry_date": entry.EntryDate.Format(types.EntryDateLayout),
	}
}

func wrapNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEntryNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func entryToModel(entry *types.JournalEntry) journalEntryModel {
	record := journalEntryModel{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Title:      entry.Title,
		Content:    entry.Content,
		InputType:  string(entry.InputType),
		EntryDate:  entry.EntryDate,
		MediaKey:   entry.MediaKey,
		MediaURL:   entry.MediaURL,
		MediaMIME:  entry.MediaMIME,
		MoodLabel:  entry.MoodLabel,
		ColorTheme: entry.ColorTheme,
		Background: entry.Background,
		Summary:    entry.Summary,
		Nutshell:   entry.Nutshell,
		BannerURL:  entry.BannerURL,
	}
	if record.InputType == "" {
		record.InputType = string(types.MediaText)
	}
	if len(entry.Embedding) > 0 {
		v := pgvector.NewVector(entry.Embedding)
		record.Embedding = &v
	}
	return record
}

func entryFromModel(record journalEntryModel) *types.JournalEntry {
	entry := &types.JournalEntry{
		ID:         record.ID,
		UserID:     record.UserID,
		Title:      record.Title,
		Content:    record.Content,
		InputType:  types.MediaKind(record.InputType),
		EntryDate:  record.EntryDate,
		MediaKey:   record.MediaKey,
		MediaURL:   record.MediaURL,
		MediaMIME:  record.MediaMIME,
		MoodLabel:  record.MoodLabel,
		ColorTheme: record.ColorTheme,
		Background: record.Background,
		Summary:    record.Summary,
		Nutshell:   record.Nutshell,
		BannerURL:  record.BannerURL,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
	if record.Embedding != nil {
		entry.Embedding = record.Embedding.Slice()
	}
	return entry
}

func entriesFromModels(records []journalEntryModel) []types.JournalEntry {
	entries := make([]types.JournalEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, *entryFromModel(record))
	}
	return entries
}
