package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/emotions"
	"github.com/xvierd/calm-cli/internal/exercises"
	"github.com/xvierd/calm-cli/internal/flow"
	"github.com/xvierd/calm-cli/internal/ports"
)

// Overview is the "learn more" page of an emotion.
type Overview struct {
	Emotion   *domain.Emotion
	Guide     emotions.Guide
	Exercises []*flow.Definition
}

// CopingService starts coping flows and exercises.
type CopingService struct {
	catalog  *exercises.Catalog
	journal  ports.JournalAppender
	notifier ports.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewCopingService creates a new coping service. notifier may be nil.
func NewCopingService(catalog *exercises.Catalog, journal ports.JournalAppender, notifier ports.Notifier, logger *zap.Logger) *CopingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CopingService{
		catalog:  catalog,
		journal:  journal,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Catalog returns the exercise catalog.
func (s *CopingService) Catalog() *exercises.Catalog { return s.catalog }

// Emotions returns the emotion catalog.
func (s *CopingService) Emotions() []*domain.Emotion { return emotions.All() }

// Exercises returns every exercise, sorted by id.
func (s *CopingService) Exercises() []*flow.Definition { return s.catalog.All() }

// Overview returns the emotion with its guide and the exercises its flow uses.
func (s *CopingService) Overview(id string) (*Overview, error) {
	g, err := emotions.ForEmotion(id)
	if err != nil {
		return nil, err
	}
	ov := &Overview{Emotion: g.Emotion(), Guide: g}
	for _, st := range g.Stages() {
		def, err := s.catalog.Lookup(st.Exercise)
		if err != nil {
			return nil, err
		}
		ov.Exercises = append(ov.Exercises, def)
	}
	return ov, nil
}

// StartFlow returns a session of the emotion's coping flow, wired to the journal.
func (s *CopingService) StartFlow(id string) (*flow.Session, error) {
	def, err := emotions.CopingFlow(s.catalog, id)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("coping flow started", zap.String("emotion", id))
	return flow.New(def, s.journal, flow.WithClock(s.now)), nil
}

// StartExercise returns a session of one exercise, wired to the journal.
func (s *CopingService) StartExercise(id string) (*flow.Session, error) {
	def, err := s.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("exercise started", zap.String("exercise", id))
	return flow.New(def, s.journal, flow.WithClock(s.now)), nil
}

// Suggest returns emotion ids close to query.
func (s *CopingService) Suggest(query string) []string {
	return emotions.Suggest(query)
}

// Finished reports a completed exercise session. Incomplete sessions are ignored.
func (s *CopingService) Finished(sess *flow.Session) {
	if sess == nil || !sess.Completed() {
		return
	}
	def := sess.Definition()
	s.logger.Info("exercise completed", zap.String("exercise", def.ID), zap.Bool("journaled", sess.Entry() != nil))
	s.notify("🌿 Exercise Complete", fmt.Sprintf("You finished %s. Take a moment to notice how you feel.", def.Title))
}

// TimerDone reports a finished countdown.
func (s *CopingService) TimerDone(label string) {
	s.logger.Info("timer completed", zap.String("timer", label))
	s.notify("⏱ Timer Done", fmt.Sprintf("%s is complete.", label))
}

func (s *CopingService) notify(title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(title, message); err != nil {
		s.logger.Warn("notification failed", zap.Error(err))
	}
}
