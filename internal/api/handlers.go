package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/easeaico/moodjournal/internal/blob"
	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/journal"
	"github.com/easeaico/moodjournal/internal/storage"
	"github.com/easeaico/moodjournal/internal/types"
)

type createEntryRequest struct {
	Title     string `json:"title" form:"title"`
	Content   string `json:"content" form:"content"`
	InputType string `json:"input_type" form:"input_type"`
	EntryDate string `json:"entry_date" form:"entry_date"`
}

// updateEntryRequest carries the fields a PATCH may change; nil means unchanged.
type updateEntryRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	InputType *string `json:"input_type"`
	EntryDate *string `json:"entry_date"`
}

type entryResponse struct {
	*types.JournalEntry
	EntryDate     string `json:"entry_date"`
	DisplayDate   string `json:"formatted_date"`
	AnalysisReady bool   `json:"analyzed"`
}

func newEntryResponse(entry *types.JournalEntry) entryResponse {
	return entryResponse{
		JournalEntry:  entry,
		EntryDate:     entry.EntryDate.Format(types.EntryDateLayout),
		DisplayDate:   entry.FormattedDate(),
		AnalysisReady: entry.Analyzed(),
	}
}

func newEntryResponses(entries []types.JournalEntry) []entryResponse {
	items := make([]entryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, newEntryResponse(&entries[i]))
	}
	return items
}

type emotionView struct {
	Label      string       `json:"label"`
	Color      string       `json:"color"`
	Background string       `json:"background"`
	Tone       emotion.Tone `json:"tone"`
}

func (s *Server) handleEmotions(c *fiber.Ctx) error {
	byCategory := emotion.ByCategory()
	categories := make([]fiber.Map, 0, len(byCategory))
	for _, category := range emotion.Categories() {
		labels := byCategory[category]
		views := make([]emotionView, 0, len(labels))
		for _, label := range labels {
			views = append(views, emotionView{
				Label:      string(label),
				Color:      emotion.ColorFor(label),
				Background: emotion.BackgroundFor(label),
				Tone:       emotion.CalendarTone(string(label)),
			})
		}
		categories = append(categories, fiber.Map{"category": category, "emotions": views})
	}
	return c.JSON(fiber.Map{
		"data": categories,
		"meta": fiber.Map{"count": len(emotion.Labels()), "default": emotion.DefaultLabel},
	})
}

func (s *Server) handleListEntries(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", storage.ListLimitDefault)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > storage.ListLimitMax || offset < 0 {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("limit must be 1-%d and offset non-negative", storage.ListLimitMax))
	}

	entries, err := s.deps.Entries.ListForUser(c.UserContext(), userID(c), limit, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("list entries: %v", err))
	}
	items := newEntryResponses(entries)
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"count": len(items), "limit": limit, "offset": offset},
	})
}

func (s *Server) handleCreateEntry(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var payload createEntryRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	kind, err := types.ParseMediaKind(payload.InputType)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	entryDate, err := s.parseEntryDate(payload.EntryDate)
	if err != nil {
		return err
	}

	entry := &types.JournalEntry{
		UserID:    userID(c),
		Title:     strings.TrimSpace(payload.Title),
		Content:   strings.TrimSpace(payload.Content),
		InputType: kind,
		EntryDate: entryDate,
	}

	if kind == types.MediaText {
		if entry.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "content is required")
		}
	} else {
		if err := s.attachMedia(c, entry); err != nil {
			return err
		}
	}
	if entry.Title == "" {
		entry.Title = journal.PendingTitle(entry)
	}

	if err := s.deps.Entries.Create(ctx, entry); err != nil {
		s.discardMedia(c, entry)
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("create entry: %v", err))
	}

	queued := false
	if s.deps.Queue != nil {
		queued = s.deps.Queue.Enqueue(entry.ID)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": newEntryResponse(entry),
		"meta": fiber.Map{"queued": queued},
	})
}

func (s *Server) attachMedia(c *fiber.Ctx, entry *types.JournalEntry) error {
	if s.deps.Media == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "media uploads are not configured")
	}
	header, err := c.FormFile("media")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "media file is required for "+string(entry.InputType)+" entries")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = blob.MimeType(header.Filename)
	}
	if !acceptsMedia(entry.InputType, contentType) {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, fmt.Sprintf("unsupported media type %q for %s entry", contentType, entry.InputType))
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable media file")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable media file")
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	if ext == "" {
		ext = blob.Extension(contentType)
	}
	key := fmt.Sprintf("%s/%s%s", entry.InputType, uuid.NewString(), ext)
	if err := s.deps.Media.Put(c.UserContext(), key, data, contentType); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("store media: %v", err))
	}

	entry.MediaKey = key
	entry.MediaURL = s.deps.Media.URL(key)
	entry.MediaMIME = contentType
	return nil
}

func acceptsMedia(kind types.MediaKind, contentType string) bool {
	contentType = strings.ToLower(contentType)
	switch kind {
	case types.MediaAudio:
		// browsers record voice notes as video/webm or video/mp4 too
		return strings.HasPrefix(contentType, "audio/") || strings.HasPrefix(contentType, "video/")
	case types.MediaImage:
		return strings.HasPrefix(contentType, "image/")
	case types.MediaVideo:
		return strings.HasPrefix(contentType, "video/")
	default:
		return false
	}
}

func (s *Server) discardMedia(c *fiber.Ctx, entry *types.JournalEntry) {
	if !entry.HasMedia() || s.deps.Media == nil {
		return
	}
	if err := s.deps.Media.Delete(c.UserContext(), entry.MediaKey); err != nil && !errors.Is(err, blob.ErrObjectNotExist) {
		slog.Warn("failed to delete media", "key", entry.MediaKey, "error", err.Error())
	}
}

func (s *Server) handleGetEntry(c *fiber.Ctx) error {
	entry, err := s.loadEntry(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newEntryResponse(entry)})
}

func (s *Server) handleUpdateEntry(c *fiber.Ctx) error {
	entry, err := s.loadEntry(c)
	if err != nil {
		return err
	}
	var payload updateEntryRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	if payload.Title != nil {
		entry.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Content != nil {
		entry.Content = strings.TrimSpace(*payload.Content)
	}
	if payload.InputType != nil {
		kind, err := types.ParseMediaKind(*payload.InputType)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		entry.InputType = kind
	}
	if payload.EntryDate != nil {
		date, err := time.Parse(types.EntryDateLayout, strings.TrimSpace(*payload.EntryDate))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "entry_date must be YYYY-MM-DD")
		}
		entry.EntryDate = date
	}

	if entry.InputType == types.MediaText && entry.Content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "content is required")
	}
	if entry.InputType != types.MediaText && !entry.HasMedia() {
		return fiber.NewError(fiber.StatusBadRequest, "media file is required for "+string(entry.InputType)+" entries")
	}
	if entry.Title == "" {
		entry.Title = journal.PendingTitle(entry)
	}

	if err := s.deps.Entries.Update(c.UserContext(), entry); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "entry not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("update entry: %v", err))
	}
	return c.JSON(fiber.Map{"data": newEntryResponse(entry)})
}

func (s *Server) handleEntryStatus(c *fiber.Ctx) error {
	entry, err := s.loadEntry(c)
	if err != nil {
		return err
	}
	if !entry.Analyzed() {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": newEntryResponse(entry)})
}

func (s *Server) handleRegenerateBanner(c *fiber.Ctx) error {
	if s.deps.Banners == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "banner generation is disabled")
	}
	entry, err := s.loadEntry(c)
	if err != nil {
		return err
	}

	url, err := s.deps.Banners.RegenerateBanner(c.UserContext(), entry)
	if errors.Is(err, journal.ErrBannerUnavailable) {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("regenerate banner: %v", err))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": entry.ID, "ai_banner_image_url": url}})
}

func (s *Server) handleSimilarEntries(c *fiber.Ctx) error {
	entry, err := s.loadEntry(c)
	if err != nil {
		return err
	}
	items := []types.SimilarEntry{}
	if s.deps.Similar != nil {
		found, err := s.deps.Similar.Similar(c.UserContext(), entry)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("similar entries: %v", err))
		}
		if found != nil {
			items = found
		}
	}
	return c.JSON(fiber.Map{"data": items, "meta": fiber.Map{"count": len(items)}})
}

func (s *Server) handleDeleteEntry(c *fiber.Ctx) error {
	entry, err := s.loadEntry(c)
	if err != nil {
		return err
	}
	if err := s.deps.Entries.Delete(c.UserContext(), entry.UserID, entry.ID); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "entry not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("delete entry: %v", err))
	}
	s.discardMedia(c, entry)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleEntriesByDate(c *fiber.Ctx) error {
	date, err := time.Parse(types.EntryDateLayout, c.Params("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	entries, err := s.deps.Entries.FindByDate(c.UserContext(), userID(c), date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("list entries: %v", err))
	}
	items := newEntryResponses(entries)
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"count": len(items), "date": date.Format(types.EntryDateLayout)},
	})
}

func (s *Server) handleCalendar(c *fiber.Ctx) error {
	ctx := c.UserContext()
	now := s.now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid year or month")
	}

	entries, err := s.deps.Entries.ListByMonth(ctx, userID(c), year, time.Month(month))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("list entries: %v", err))
	}
	years, err := s.deps.Entries.AvailableYears(ctx, userID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("list years: %v", err))
	}
	if len(years) == 0 {
		years = []int{now.Year()}
	}

	return c.JSON(fiber.Map{
		"data": journal.BuildMonth(year, time.Month(month), entries),
		"meta": fiber.Map{"available_years": years},
	})
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	matches, err := s.deps.Entries.SearchTitles(c.UserContext(), userID(c), c.Query("q"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("search titles: %v", err))
	}
	if matches == nil {
		matches = []types.TitleMatch{}
	}
	return c.JSON(fiber.Map{"data": matches, "meta": fiber.Map{"count": len(matches)}})
}

func (s *Server) loadEntry(c *fiber.Ctx) (*types.JournalEntry, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid entry id")
	}
	entry, err := s.deps.Entries.GetForUser(c.UserContext(), userID(c), id)
	if errors.Is(err, storage.ErrEntryNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "entry not found")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("get entry: %v", err))
	}
	return entry, nil
}

func (s *Server) parseEntryDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(types.EntryDateLayout, value)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "entry_date must be YYYY-MM-DD")
	}
	return date, nil
}
