// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// Export formats supported by JournalService.Export.
const (
	FormatMarkdown = "md"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// JournalService handles journal use cases.
type JournalService struct {
	repo   ports.JournalRepository
	logger *zap.Logger
	now    func() time.Time
}

// Ensure JournalService can be used as the flow engine's sink.
var _ ports.JournalAppender = (*JournalService)(nil)

// NewJournalService creates a new journal service.
func NewJournalService(storage ports.Storage, logger *zap.Logger) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{repo: storage.Journal(), logger: logger, now: time.Now}
}

// List returns every entry, newest first.
func (s *JournalService) List(ctx context.Context) ([]*domain.JournalEntry, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	out := make([]*domain.JournalEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}

// Latest returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *JournalService) Latest(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Add stores a manual entry. Blank text is rejected with domain.ErrEmptyEntry.
func (s *JournalService) Add(ctx context.Context, emotion, text string) (*domain.JournalEntry, error) {
	entry, err := domain.NewJournalEntry(strings.TrimSpace(emotion), strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	entry.Timestamp = s.now().UTC()
	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	s.logger.Info("journal entry added", zap.String("id", entry.ID), zap.String("emotion", entry.Emotion))
	return entry, nil
}

// Append implements ports.JournalAppender, filling a missing id and timestamp.
func (s *JournalService) Append(ctx context.Context, entry *domain.JournalEntry) error {
	if strings.TrimSpace(entry.Response) == "" {
		return domain.ErrEmptyEntry
	}
	e := entry.Clone()
	if e.ID == "" {
		e.ID = domain.NewID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return err
	}
	s.logger.Info("journal entry appended", zap.String("id", e.ID), zap.String("emotion", e.Emotion))
	return nil
}

// Delete removes one entry by id or timestamp reference.
func (s *JournalService) Delete(ctx context.Context, ref string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(ref)); err != nil {
		return err
	}
	s.logger.Info("journal entry deleted", zap.String("ref", ref))
	return nil
}

type entrySource []*domain.JournalEntry

func (e entrySource) String(i int) string { return e[i].Title() + " " + e[i].Response }
func (e entrySource) Len() int            { return len(e) }

// Search fuzzy-matches query against entry titles and text, best match
// first. A blank query lists everything newest first.
func (s *JournalService) Search(ctx context.Context, query string) ([]*domain.JournalEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return entries, nil
	}
	matches := fuzzy.FindFrom(query, entrySource(entries))
	out := make([]*domain.JournalEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out, nil
}

// Export writes every entry, newest first, in the given format.
func (s *JournalService) Export(ctx context.Context, w io.Writer, format string) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case FormatMarkdown, "markdown", "":
		return exportMarkdown(w, entries, s.now())
	case FormatCSV:
		return exportCSV(w, entries)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q: must be one of md, csv, json, yaml", format)
	}
}

type frontMatter struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Emotion   string `yaml:"emotion,omitempty"`
	Timestamp string `yaml:"timestamp"`
}

func exportMarkdown(w io.Writer, entries []*domain.JournalEntry, generated time.Time) error {
	fmt.Fprintf(w, "# Calm Journal Export\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", generated.Format("2006-01-02 15:04"))

	for _, e := range entries {
		meta, err := yaml.Marshal(frontMatter{
			ID:        e.Ref(),
			Title:     e.Title(),
			Emotion:   e.Emotion,
			Timestamp: e.Timestamp.Format(time.RFC3339),
		})
		if err != nil {
			return fmt.Errorf("failed to encode front matter: %w", err)
		}
		fmt.Fprintf(w, "---\n%s---\n\n%s\n\n", meta, strings.TrimSpace(e.Response))
	}
	return nil
}

func exportCSV(w io.Writer, entries []*domain.JournalEntry) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "timestamp", "emotion", "response"})
	for _, e := range entries {
		_ = cw.Write([]string{
			e.Ref(),
			e.Timestamp.Format(time.RFC3339),
			e.Emotion,
			e.Response,
		})
	}
	cw.Flush()
	return cw.Error()
}
