package domain

// CurrentState is a snapshot of the locally stored data.
type CurrentState struct {
	TodayMood    *MoodEntry    `json:"today_mood"`
	JournalCount int           `json:"journal_count"`
	LatestEntry  *JournalEntry `json:"latest_entry"`
	WeekAverage  *int          `json:"week_average"`
	MoodEntries  int           `json:"mood_entries"`
}

// HasLoggedMoodToday returns true if a mood was recorded today.
func (cs *CurrentState) HasLoggedMoodToday() bool {
	return cs.TodayMood != nil
}
