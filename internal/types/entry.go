package types

import "time"

// EntryDateLayout is the wire format of entry dates.
const EntryDateLayout = "2006-01-02"

// DisplayDateLayout renders dates in titles and placeholders.
const DisplayDateLayout = "January 2, 2006"

// JournalEntry is the persisted journal entry.
type JournalEntry struct {
	ID         int       `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	InputType  MediaKind `json:"input_type"`
	EntryDate  time.Time `json:"entry_date"`
	MediaKey   string    `json:"-"`
	MediaURL   string    `json:"media_url,omitempty"`
	MediaMIME  string    `json:"media_mime,omitempty"`
	MoodLabel  string    `json:"ai_mood_label,omitempty"`
	ColorTheme string    `json:"ai_color_theme,omitempty"`
	Background string    `json:"ai_background_style,omitempty"`
	Summary    string    `json:"ai_summary,omitempty"`
	Nutshell   string    `json:"ai_nutshell,omitempty"`
	BannerURL  string    `json:"ai_banner_image_url,omitempty"`
	Embedding  []float32 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasMedia reports whether a media file is attached.
func (e *JournalEntry) HasMedia() bool {
	return e.MediaKey != ""
}

// FormattedDate renders the entry date for display.
func (e *JournalEntry) FormattedDate() string {
	return e.EntryDate.Format(DisplayDateLayout)
}

// Analyzed reports whether the AI enrichment fields are present.
func (e *JournalEntry) Analyzed() bool {
	return e.Summary != "" && e.Nutshell != ""
}

// SimilarEntry is an entry retrieved by embedding similarity.
type SimilarEntry struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	MoodLabel  string    `json:"ai_mood_label"`
	Nutshell   string    `json:"ai_nutshell"`
	EntryDate  time.Time `json:"entry_date"`
	Similarity float64   `json:"similarity"`
}

// TitleMatch is a title autocomplete hit.
type TitleMatch struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
