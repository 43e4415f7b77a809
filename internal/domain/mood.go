package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day key format used for mood entries.
const DateLayout = "2006-01-02"

// Mood levels, from worst to best.
const (
	MoodVeryBad = 0
	MoodBad     = 1
	MoodOkay    = 2
	MoodGood    = 3
	MoodGreat   = 4
)

var (
	moodLabels = [...]string{"Very Bad", "Bad", "Okay", "Good", "Great"}
	moodEmojis = [...]string{"😢", "😞", "😐", "🙂", "😊"}
)

// MoodEntry records the mood logged for one calendar day.
type MoodEntry struct {
	Date string `json:"date" yaml:"date"`
	Mood int    `json:"mood" yaml:"mood"`
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewMoodEntry creates a mood entry for the calendar day containing day.
func NewMoodEntry(day time.Time, mood int, note string) (*MoodEntry, error) {
	if err := ValidateMood(mood); err != nil {
		return nil, err
	}
	return &MoodEntry{
		Date: DayKey(day),
		Mood: mood,
		Note: note,
	}, nil
}

// ValidateMood ensures the mood is one of the five levels.
func ValidateMood(mood int) error {
	if mood < MoodVeryBad || mood > MoodGreat {
		return ErrInvalidMood
	}
	return nil
}

// DayKey formats t as a calendar-day key in t's location.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a calendar-day key.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// MoodLabel returns a human-readable label for a mood level.
func MoodLabel(mood int) string {
	if ValidateMood(mood) != nil {
		return "Unknown"
	}
	return moodLabels[mood]
}

// MoodEmoji returns the emoji for a mood level.
func MoodEmoji(mood int) string {
	if ValidateMood(mood) != nil {
		return "?"
	}
	return moodEmojis[mood]
}

// Label returns the entry's mood label.
func (m *MoodEntry) Label() string { return MoodLabel(m.Mood) }

// Emoji returns the entry's mood emoji.
func (m *MoodEntry) Emoji() string { return MoodEmoji(m.Mood) }

// DayMood is one day of a mood window; Mood is nil when nothing was logged.
type DayMood struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Mood    *int   `json:"mood"`
}

// MoodSummary aggregates the mood window shown by the tracker.
type MoodSummary struct {
	Today       *MoodEntry `json:"today"`
	Days        []DayMood  `json:"days"`
	Average     *int       `json:"average"`
	Entries     int        `json:"entries"`
	ShowInsight bool       `json:"show_insight"`
}

// Insight returns the encouragement shown once enough entries exist, or "".
func (s *MoodSummary) Insight() string {
	if !s.ShowInsight {
		return ""
	}
	return fmt.Sprintf("You've been tracking your mood for %d days. Keep it up! "+
		"Regular mood tracking helps you understand your emotional patterns and identify what affects your wellbeing.", s.Entries)
}
