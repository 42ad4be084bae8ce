package journal

import (
	"sort"
	"time"

	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/types"
)

// TopMoodCount is the number of moods reported in a month summary.
const TopMoodCount = 3

// CalendarDay is one day cell of a month view.
type CalendarDay struct {
	Date    string       `json:"date"`
	Day     int          `json:"day"`
	EntryID int          `json:"entry_id,omitempty"`
	Title   string       `json:"title,omitempty"`
	Mood    string       `json:"mood,omitempty"`
	Tone    emotion.Tone `json:"tone"`
	Color   string       `json:"color,omitempty"`
	Entries int          `json:"entries"`
}

// MoodCount counts entries with a mood label.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// CalendarMonth is a month of days plus a mood summary.
type CalendarMonth struct {
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	Name       string        `json:"name"`
	FirstDay   int           `json:"first_weekday"`
	Days       []CalendarDay `json:"days"`
	EntryCount int           `json:"entry_count"`
	TopMoods   []MoodCount   `json:"top_moods"`
}

// BuildMonth lays out the given month. Each day shows its first entry;
// entries outside the month are ignored.
func BuildMonth(year int, month time.Month, entries []types.JournalEntry) CalendarMonth {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	result := CalendarMonth{
		Year:     first.Year(),
		Month:    int(first.Month()),
		Name:     first.Format("January 2006"),
		FirstDay: int(first.Weekday()),
		Days:     make([]CalendarDay, daysInMonth),
	}
	for i := range result.Days {
		date := first.AddDate(0, 0, i)
		result.Days[i] = CalendarDay{
			Date: date.Format(types.EntryDateLayout),
			Day:  i + 1,
			Tone: emotion.ToneNeutral,
		}
	}

	sorted := make([]types.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	counts := make(map[string]int)
	for _, entry := range sorted {
		if entry.EntryDate.Year() != result.Year || entry.EntryDate.Month() != first.Month() {
			continue
		}
		result.EntryCount++
		if entry.MoodLabel != "" {
			counts[entry.MoodLabel]++
		}

		day := &result.Days[entry.EntryDate.Day()-1]
		day.Entries++
		if day.EntryID != 0 {
			continue
		}
		day.EntryID = entry.ID
		day.Title = entry.Title
		day.Mood = entry.MoodLabel
		day.Tone = emotion.CalendarTone(entry.MoodLabel)
		if entry.MoodLabel != "" {
			day.Color = entry.ColorTheme
			if day.Color == "" {
				day.Color = emotion.ColorFor(emotion.EmotionLabel(entry.MoodLabel))
			}
		}
	}

	result.TopMoods = topMoods(counts, TopMoodCount)
	return result
}

func topMoods(counts map[string]int, limit int) []MoodCount {
	moods := make([]MoodCount, 0, len(counts))
	for mood, count := range counts {
		moods = append(moods, MoodCount{Mood: mood, Count: count})
	}
	sort.Slice(moods, func(i, j int) bool {
		if moods[i].Count != moods[j].Count {
			return moods[i].Count > moods[j].Count
		}
		return moods[i].Mood < moods[j].Mood
	})
	if len(moods) > limit {
		moods = moods[:limit]
	}
	return moods
}
