package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// MoodSettings holds the mood window thresholds.
type MoodSettings struct {
	WindowDays        int
	InsightMinEntries int
}

// DefaultMoodSettings returns a 7-day window with insight after 3 entries.
func DefaultMoodSettings() MoodSettings {
	return MoodSettings{WindowDays: 7, InsightMinEntries: 3}
}

// MoodService handles mood tracker use cases.
type MoodService struct {
	repo     ports.MoodRepository
	settings MoodSettings
	logger   *zap.Logger
	now      func() time.Time
}

// MoodOption configures a MoodService.
type MoodOption func(*MoodService)

// WithMoodClock overrides the clock used to pick "today".
func WithMoodClock(now func() time.Time) MoodOption {
	return func(s *MoodService) { s.now = now }
}

// NewMoodService creates a new mood service.
func NewMoodService(storage ports.Storage, settings MoodSettings, logger *zap.Logger, opts ...MoodOption) *MoodService {
	if settings.WindowDays <= 0 {
		settings.WindowDays = DefaultMoodSettings().WindowDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &MoodService{repo: storage.Moods(), settings: settings, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Log records the mood for today, replacing any earlier entry for the day.
func (s *MoodService) Log(ctx context.Context, mood int, note string) (*domain.MoodEntry, error) {
	entry, err := domain.NewMoodEntry(s.now(), mood, note)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save mood: %w", err)
	}
	s.logger.Info("mood logged", zap.String("date", entry.Date), zap.Int("mood", entry.Mood))
	return entry, nil
}

// Today returns today's entry, or nil when nothing was logged.
func (s *MoodService) Today(ctx context.Context) (*domain.MoodEntry, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	return find(entries, domain.DayKey(s.now())), nil
}

// Week returns one DayMood per day of the window, oldest first and ending today.
func (s *MoodService) Week(ctx context.Context) ([]domain.DayMood, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	return s.window(entries), nil
}

func (s *MoodService) window(entries []*domain.MoodEntry) []domain.DayMood {
	now := s.now()
	days := make([]domain.DayMood, 0, s.settings.WindowDays)
	for i := s.settings.WindowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		d := domain.DayMood{Date: domain.DayKey(day), Weekday: day.Format("Mon")}
		if e := find(entries, d.Date); e != nil {
			mood := e.Mood
			d.Mood = &mood
		}
		days = append(days, d)
	}
	return days
}

// Summary aggregates today's entry, the window and its rounded average.
func (s *MoodService) Summary(ctx context.Context) (*domain.MoodSummary, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	days := s.window(entries)
	return &domain.MoodSummary{
		Today:       find(entries, domain.DayKey(s.now())),
		Days:        days,
		Average:     average(days),
		Entries:     len(entries),
		ShowInsight: len(entries) >= s.settings.InsightMinEntries,
	}, nil
}

// average rounds half up over the days that have a mood.
func average(days []domain.DayMood) *int {
	sum, n := 0, 0
	for _, d := range days {
		if d.Mood != nil {
			sum += *d.Mood
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := int(math.Floor(float64(sum)/float64(n) + 0.5))
	return &avg
}

func find(entries []*domain.MoodEntry, date string) *domain.MoodEntry {
	for _, e := range entries {
		if e.Date == date {
			return e
		}
	}
	return nil
}
