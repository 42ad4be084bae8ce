package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/moodjournal/internal/emotion"
	"github.com/easeaico/moodjournal/internal/types"
)

func day(d int) time.Time {
	return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthLayout(t *testing.T) {
	month := BuildMonth(2024, time.February, nil)

	assert.Equal(t, "February 2024", month.Name)
	assert.Equal(t, 2, month.Month)
	assert.Len(t, month.Days, 29)
	assert.Equal(t, int(time.Thursday), month.FirstDay)
	assert.Equal(t, "2024-02-01", month.Days[0].Date)
	assert.Equal(t, emotion.ToneNeutral, month.Days[28].Tone)
	assert.Zero(t, month.EntryCount)
	assert.Empty(t, month.TopMoods)
}

func TestBuildMonthEntries(t *testing.T) {
	created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	entries := []types.JournalEntry{
		{ID: 2, EntryDate: day(3), MoodLabel: "sad", CreatedAt: created.Add(2 * time.Hour)},
		{ID: 1, EntryDate: day(3), MoodLabel: "joyful", ColorTheme: "#000000", Title: "Party", CreatedAt: created},
		{ID: 3, EntryDate: day(10), MoodLabel: "tired", CreatedAt: created},
		{ID: 4, EntryDate: day(11), MoodLabel: "sad", CreatedAt: created},
		{ID: 5, EntryDate: day(12), CreatedAt: created},
		{ID: 6, EntryDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), MoodLabel: "sad", CreatedAt: created},
	}

	month := BuildMonth(2024, time.February, entries)
	assert.Equal(t, 5, month.EntryCount)

	third := month.Days[2]
	assert.Equal(t, 1, third.EntryID)
	assert.Equal(t, "Party", third.Title)
	assert.Equal(t, emotion.ToneGood, third.Tone)
	assert.Equal(t, "#000000", third.Color)
	assert.Equal(t, 2, third.Entries)

	assert.Equal(t, emotion.ToneOkay, month.Days[9].Tone)
	assert.Equal(t, emotion.ColorFor("tired"), month.Days[9].Color)
	assert.Equal(t, emotion.ToneNeutral, month.Days[11].Tone)
	assert.Empty(t, month.Days[11].Color)

	require.Len(t, month.TopMoods, 3)
	assert.Equal(t, MoodCount{Mood: "sad", Count: 2}, month.TopMoods[0])
	assert.Equal(t, "joyful", month.TopMoods[1].Mood)
	assert.Equal(t, "tired", month.TopMoods[2].Mood)
}
