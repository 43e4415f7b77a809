package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xvierd/calm-cli/internal/adapters/storage"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/emotions"
	"github.com/xvierd/calm-cli/internal/exercises"
	"github.com/xvierd/calm-cli/internal/flow"
	"github.com/xvierd/calm-cli/internal/ports"
)

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	kv, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	store := storage.NewStorage(kv, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * time.Minute)
		n++
		return t
	}
}

func TestJournalService_AddListNewestFirst(t *testing.T) {
	svc := NewJournalService(setupTestStorage(t), nil)
	svc.now = stepClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := svc.Add(ctx, "", "walked in the park")
	require.NoError(t, err)
	second, err := svc.Add(ctx, "Anger", "  traffic again  ")
	require.NoError(t, err)
	assert.Equal(t, "traffic again", second.Response)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]*domain.JournalEntry{second, first}, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	latest, err := svc.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, second.ID, latest[0].ID)
}

func TestJournalService_AddRejectsBlank(t *testing.T) {
	svc := NewJournalService(setupTestStorage(t), nil)

	_, err := svc.Add(context.Background(), "Anger", "   ")
	assert.True(t, errors.Is(err, domain.ErrEmptyEntry))

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalService_AppendFillsIDAndTimestamp(t *testing.T) {
	svc := NewJournalService(setupTestStorage(t), nil)
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	in := &domain.JournalEntry{Emotion: "Overthinking", Response: "too many tabs open"}
	require.NoError(t, svc.Append(ctx, in))
	assert.Empty(t, in.ID, "Append must not mutate the caller's entry")

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.True(t, got[0].Timestamp.Equal(fixed))
}

func TestJournalService_Delete(t *testing.T) {
	svc := NewJournalService(setupTestStorage(t), nil)
	ctx := context.Background()

	a, err := svc.Add(ctx, "", "a")
	require.NoError(t, err)
	b, err := svc.Add(ctx, "", "b")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	err = svc.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrEntryNotFound))
}

func TestJournalService_Search(t *testing.T) {
	svc := NewJournalService(setupTestStorage(t), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "Anger", "someone cut me off in traffic")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "", "good walk by the river")
	require.NoError(t, err)

	got, err := svc.Search(ctx, "traffic")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Anger", got[0].Emotion)

	all, err := svc.Search(ctx, " ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestJournalService_Export(t *testing.T) {
	svc := NewJournalService(setupTestStorage(t), nil)
	svc.now = stepClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.Add(ctx, "Anger", "What triggered my anger?\nTraffic")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "", "calm morning")
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, &buf, FormatJSON))
		var got []*domain.JournalEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "calm morning", got[0].Response)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, &buf, FormatCSV))
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"id", "timestamp", "emotion", "response"}, rows[0])
		assert.Equal(t, "What triggered my anger?\nTraffic", rows[2][3])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, &buf, FormatYAML))
		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Anger", got[1]["emotion"])
	})

	t.Run("md", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, &buf, FormatMarkdown))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "# Calm Journal Export"))
		assert.Contains(t, out, "title: Personal Entry\n")
		assert.Contains(t, out, "emotion: Anger\n")
		assert.Contains(t, out, "2024-03-01T10:00:00Z")
		assert.Contains(t, out, "---\n\nWhat triggered my anger?\nTraffic\n")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, svc.Export(ctx, &bytes.Buffer{}, "pdf"))
	})
}

func TestMoodService_LogReplacesSameDay(t *testing.T) {
	store := setupTestStorage(t)
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.Local)
	svc := NewMoodService(store, DefaultMoodSettings(), nil, WithMoodClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := svc.Log(ctx, domain.MoodBad, "")
	require.NoError(t, err)
	now = now.Add(5 * time.Hour)
	_, err = svc.Log(ctx, domain.MoodGood, "better after lunch")
	require.NoError(t, err)

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, domain.MoodGood, today.Mood)
	assert.Equal(t, "better after lunch", today.Note)

	all, err := store.Moods().Load(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMoodService_LogInvalid(t *testing.T) {
	svc := NewMoodService(setupTestStorage(t), DefaultMoodSettings(), nil)
	for _, mood := range []int{-1, 5} {
		_, err := svc.Log(context.Background(), mood, "")
		assert.True(t, errors.Is(err, domain.ErrInvalidMood), "mood %d", mood)
	}
}

func TestMoodService_WeekAndSummary(t *testing.T) {
	store := setupTestStorage(t)
	// Thursday.
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.Local)
	svc := NewMoodService(store, DefaultMoodSettings(), nil, WithMoodClock(func() time.Time { return now }))
	ctx := context.Background()

	// An entry outside the window still counts toward the insight threshold.
	require.NoError(t, store.Moods().Upsert(ctx, &domain.MoodEntry{Date: "2024-02-20", Mood: domain.MoodVeryBad}))

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Nil(t, summary.Average)
	assert.False(t, summary.ShowInsight)

	require.NoError(t, store.Moods().Upsert(ctx, &domain.MoodEntry{Date: "2024-03-05", Mood: domain.MoodGreat}))
	_, err = svc.Log(ctx, domain.MoodGood, "")
	require.NoError(t, err)

	week, err := svc.Week(ctx)
	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Equal(t, "2024-03-01", week[0].Date)
	assert.Equal(t, "Fri", week[0].Weekday)
	assert.Equal(t, "2024-03-07", week[6].Date)
	assert.Equal(t, "Thu", week[6].Weekday)
	assert.Nil(t, week[0].Mood)
	require.NotNil(t, week[4].Mood)
	assert.Equal(t, domain.MoodGreat, *week[4].Mood)

	summary, err = svc.Summary(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary.Average)
	// (4 + 3) / 2 = 3.5 rounds half up.
	assert.Equal(t, 4, *summary.Average)
	assert.Equal(t, 3, summary.Entries)
	assert.True(t, summary.ShowInsight)
	require.NotNil(t, summary.Today)
	assert.Equal(t, domain.MoodGood, summary.Today.Mood)
}

func TestAverage(t *testing.T) {
	mood := func(v int) *int { return &v }
	tests := []struct {
		name string
		days []domain.DayMood
		want *int
	}{
		{"empty", nil, nil},
		{"none logged", []domain.DayMood{{}, {}}, nil},
		{"exact", []domain.DayMood{{Mood: mood(2)}, {Mood: mood(2)}}, mood(2)},
		{"half up", []domain.DayMood{{Mood: mood(1)}, {Mood: mood(2)}}, mood(2)},
		{"below half", []domain.DayMood{{Mood: mood(0)}, {Mood: mood(1)}, {Mood: mood(1)}}, mood(1)},
		{"ignores gaps", []domain.DayMood{{Mood: mood(4)}, {}, {Mood: mood(0)}}, mood(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, average(tt.days))
		})
	}
}

type fakeNotifier struct {
	titles []string
	err    error
}

func (f *fakeNotifier) Notify(title, _ string) error {
	f.titles = append(f.titles, title)
	return f.err
}

func newCoping(t *testing.T, notifier ports.Notifier) (*CopingService, *JournalService) {
	t.Helper()
	journal := NewJournalService(setupTestStorage(t), nil)
	catalog := exercises.NewCatalog(exercises.DefaultSettings(), emotions.All())
	return NewCopingService(catalog, journal, notifier, nil), journal
}

func TestCopingService_StartFlow(t *testing.T) {
	svc, _ := newCoping(t, nil)

	sess, err := svc.StartFlow("anger")
	require.NoError(t, err)
	assert.Equal(t, 5, sess.Len())
	assert.Equal(t, "Acknowledgement", sess.Current().Title)

	_, err = svc.StartFlow("boredom")
	assert.True(t, errors.Is(err, domain.ErrEmotionNotFound))
}

func TestCopingService_Overview(t *testing.T) {
	svc, _ := newCoping(t, nil)

	ov, err := svc.Overview("shyness")
	require.NoError(t, err)
	assert.Equal(t, "shyness", ov.Emotion.ID)
	assert.Len(t, ov.Exercises, 4)

	_, err = svc.Overview("nope")
	assert.True(t, errors.Is(err, domain.ErrEmotionNotFound))
}

func TestCopingService_ExerciseWritesJournalAndNotifies(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, journal := newCoping(t, notifier)
	ctx := context.Background()

	sess, err := svc.StartExercise(exercises.JournalingID("anger"))
	require.NoError(t, err)
	require.True(t, sess.SetText("trigger", "traffic"))
	require.True(t, sess.SetText("wish", "slow down"))
	require.True(t, sess.SetText("response", "a walk"))

	tr, err := sess.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, flow.Completed, tr)
	svc.Finished(sess)

	entries, err := journal.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Anger", entries[0].Emotion)
	assert.Equal(t, []string{"🌿 Exercise Complete"}, notifier.titles)
}

func TestCopingService_FinishedIgnoresIncomplete(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _ := newCoping(t, notifier)

	sess, err := svc.StartExercise(exercises.TwoMinuteRule)
	require.NoError(t, err)
	svc.Finished(sess)
	svc.Finished(nil)
	assert.Empty(t, notifier.titles)

	_, err = svc.StartExercise("juggling")
	assert.True(t, errors.Is(err, domain.ErrExerciseNotFound))
}

func TestCopingService_NotifyFailureIsLogged(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("no display")}
	svc, _ := newCoping(t, notifier)

	assert.NotPanics(t, func() { svc.TimerDone("Response Delay") })
	assert.Len(t, notifier.titles, 1)
}

func TestStateService(t *testing.T) {
	store := setupTestStorage(t)
	journal := NewJournalService(store, nil)
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.Local)
	moods := NewMoodService(store, DefaultMoodSettings(), nil, WithMoodClock(func() time.Time { return now }))
	state := NewStateService(journal, moods)
	ctx := context.Background()

	cs, err := state.GetCurrentState(ctx)
	require.NoError(t, err)
	assert.False(t, cs.HasLoggedMoodToday())
	assert.Nil(t, cs.LatestEntry)

	_, err = state.AddJournalEntry(ctx, "", "first")
	require.NoError(t, err)
	last, err := state.AddJournalEntry(ctx, "Rejection", "second")
	require.NoError(t, err)
	_, err = state.LogMood(ctx, domain.MoodOkay, "")
	require.NoError(t, err)

	cs, err = state.GetCurrentState(ctx)
	require.NoError(t, err)
	assert.True(t, cs.HasLoggedMoodToday())
	assert.Equal(t, 2, cs.JournalCount)
	assert.Equal(t, last.ID, cs.LatestEntry.ID)
	require.NotNil(t, cs.WeekAverage)
	assert.Equal(t, domain.MoodOkay, *cs.WeekAverage)

	list, err := state.ListJournalEntries(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, state.DeleteJournalEntry(ctx, last.ID))
	list, err = state.ListJournalEntries(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	emotionsList, err := state.ListEmotions(ctx)
	require.NoError(t, err)
	assert.Len(t, emotionsList, 7)

	_, err = state.GetEmotion(ctx, "angr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmotionNotFound))
	assert.Contains(t, err.Error(), "anger")

	e, err := state.GetEmotion(ctx, " Anger ")
	require.NoError(t, err)
	assert.Equal(t, "anger", e.ID)

	assert.NotEmpty(t, state.Chat(ctx, "I feel so stressed"))
}
