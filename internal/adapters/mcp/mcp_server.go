// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

const defaultJournalLimit = 10

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		stateProvider: stateProvider,
		logger:        logger,
	}

	s.server = server.NewMCPServer(
		"calm",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_current_state",
			mcp.WithDescription("Get today's mood, the journal entry count, the latest entry and the weekly mood average"),
		),
		s.handleGetCurrentState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_emotions",
			mcp.WithDescription("List the emotions calm has guided coping exercises for"),
		),
		s.handleListEmotions,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_emotion_overview",
			mcp.WithDescription("Get the triggers, symptoms, coping strategies and breathing pattern of an emotion"),
			mcp.WithString(
				"emotion_id",
				mcp.Required(),
				mcp.Description("Emotion id, e.g. anger, overthinking, smoking, procrastination, shyness, rejection, alcohol"),
			),
		),
		s.handleGetEmotionOverview,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_journal_entries",
			mcp.WithDescription("List journal entries, newest first"),
			mcp.WithNumber(
				"limit",
				mcp.Description("Maximum number of entries to return (default: 10)"),
			),
		),
		s.handleListJournalEntries,
	)

	s.server.AddTool(
		mcp.NewTool(
			"add_journal_entry",
			mcp.WithDescription("Add a free-form journal entry"),
			mcp.WithString(
				"text",
				mcp.Required(),
				mcp.Description("The journal text"),
			),
			mcp.WithString(
				"emotion",
				mcp.Description("Optional label, e.g. Anger"),
			),
		),
		s.handleAddJournalEntry,
	)

	s.server.AddTool(
		mcp.NewTool(
			"delete_journal_entry",
			mcp.WithDescription("Delete one journal entry"),
			mcp.WithString(
				"entry_id",
				mcp.Required(),
				mcp.Description("The id of the entry to delete"),
			),
		),
		s.handleDeleteJournalEntry,
	)

	s.server.AddTool(
		mcp.NewTool(
			"log_mood",
			mcp.WithDescription("Log today's mood; a second log on the same day replaces the first"),
			mcp.WithNumber(
				"mood",
				mcp.Required(),
				mcp.Description("0 Very Bad, 1 Bad, 2 Okay, 3 Good, 4 Great"),
				mcp.Min(0),
				mcp.Max(4),
			),
			mcp.WithString(
				"note",
				mcp.Description("Optional note"),
			),
		),
		s.handleLogMood,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_mood_summary",
			mcp.WithDescription("Get the last 7 days of moods with the rounded average"),
		),
		s.handleGetMoodSummary,
	)

	s.server.AddTool(
		mcp.NewTool(
			"chat",
			mcp.WithDescription("Get a supportive keyword-based reply to a message"),
			mcp.WithString(
				"message",
				mcp.Required(),
				mcp.Description("The message to respond to"),
			),
		),
		s.handleChat,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.logger.Info("mcp server starting")

	return server.ServeStdio(s.server, server.WithErrorLogger(zap.NewStdLog(s.logger)))
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// userError reports whether err is caused by the caller's input.
func userError(err error) bool {
	for _, target := range []error{
		domain.ErrEmotionNotFound,
		domain.ErrEntryNotFound,
		domain.ErrEmptyEntry,
		domain.ErrInvalidMood,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Server) fail(tool string, err error) (*mcp.CallToolResult, error) {
	if userError(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Error("mcp tool failed", zap.String("tool", tool), zap.Error(err))
	return nil, fmt.Errorf("%s failed: %w", tool, err)
}

// handleGetCurrentState handles the get_current_state tool.
func (s *Server) handleGetCurrentState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return s.fail("get_current_state", err)
	}

	result := map[string]any{
		"journal_count": state.JournalCount,
		"mood_entries":  state.MoodEntries,
		"today_mood":    nil,
		"latest_entry":  nil,
		"week_average":  nil,
	}
	if state.TodayMood != nil {
		result["today_mood"] = moodData(state.TodayMood)
	}
	if state.LatestEntry != nil {
		result["latest_entry"] = entryData(state.LatestEntry)
	}
	if state.WeekAverage != nil {
		result["week_average"] = map[string]any{
			"mood":  *state.WeekAverage,
			"label": domain.MoodLabel(*state.WeekAverage),
			"emoji": domain.MoodEmoji(*state.WeekAverage),
		}
	}
	return jsonResult(result)
}

// handleListEmotions handles the list_emotions tool.
func (s *Server) handleListEmotions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.stateProvider.ListEmotions(ctx)
	if err != nil {
		return s.fail("list_emotions", err)
	}

	var out []map[string]any
	for _, e := range list {
		out = append(out, map[string]any{
			"id":          e.ID,
			"name":        e.Name,
			"icon":        e.Icon,
			"description": e.Description,
		})
	}
	return jsonResult(map[string]any{
		"emotions":    out,
		"total_count": len(out),
	})
}

// handleGetEmotionOverview handles the get_emotion_overview tool.
func (s *Server) handleGetEmotionOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("emotion_id")
	if err != nil {
		return mcp.NewToolResultError("emotion_id is required: " + err.Error()), nil
	}

	e, err := s.stateProvider.GetEmotion(ctx, id)
	if err != nil {
		return s.fail("get_emotion_overview", err)
	}
	return jsonResult(e)
}

// handleListJournalEntries handles the list_journal_entries tool.
func (s *Server) handleListJournalEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", defaultJournalLimit)
	if limit <= 0 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	entries, err := s.stateProvider.ListJournalEntries(ctx, limit)
	if err != nil {
		return s.fail("list_journal_entries", err)
	}

	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryData(e))
	}
	return jsonResult(map[string]any{
		"entries":     out,
		"total_count": len(out),
	})
}

// handleAddJournalEntry handles the add_journal_entry tool.
func (s *Server) handleAddJournalEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required: " + err.Error()), nil
	}
	emotion := request.GetString("emotion", "")

	entry, err := s.stateProvider.AddJournalEntry(ctx, emotion, text)
	if err != nil {
		return s.fail("add_journal_entry", err)
	}
	return jsonResult(entryData(entry))
}

// handleDeleteJournalEntry handles the delete_journal_entry tool.
func (s *Server) handleDeleteJournalEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("entry_id")
	if err != nil {
		return mcp.NewToolResultError("entry_id is required: " + err.Error()), nil
	}

	if err := s.stateProvider.DeleteJournalEntry(ctx, ref); err != nil {
		return s.fail("delete_journal_entry", err)
	}
	return jsonResult(map[string]any{
		"deleted": ref,
	})
}

// handleLogMood handles the log_mood tool.
func (s *Server) handleLogMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mood, err := request.RequireInt("mood")
	if err != nil {
		return mcp.NewToolResultError("mood is required: " + err.Error()), nil
	}
	note := request.GetString("note", "")

	entry, err := s.stateProvider.LogMood(ctx, mood, note)
	if err != nil {
		return s.fail("log_mood", err)
	}
	return jsonResult(moodData(entry))
}

// handleGetMoodSummary handles the get_mood_summary tool.
func (s *Server) handleGetMoodSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := s.stateProvider.GetMoodSummary(ctx)
	if err != nil {
		return s.fail("get_mood_summary", err)
	}

	days := make([]map[string]any, 0, len(summary.Days))
	for _, d := range summary.Days {
		day := map[string]any{
			"date":    d.Date,
			"weekday": d.Weekday,
			"mood":    nil,
		}
		if d.Mood != nil {
			day["mood"] = *d.Mood
			day["emoji"] = domain.MoodEmoji(*d.Mood)
		}
		days = append(days, day)
	}

	result := map[string]any{
		"days":         days,
		"entries":      summary.Entries,
		"show_insight": summary.ShowInsight,
		"average":      nil,
	}
	if summary.Average != nil {
		result["average"] = *summary.Average
		result["average_label"] = domain.MoodLabel(*summary.Average)
	}
	return jsonResult(result)
}

// handleChat handles the chat tool.
func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message is required: " + err.Error()), nil
	}
	return jsonResult(map[string]any{
		"reply": s.stateProvider.Chat(ctx, message),
	})
}

func entryData(e *domain.JournalEntry) map[string]any {
	data := map[string]any{
		"id":        e.Ref(),
		"title":     e.Title(),
		"response":  e.Response,
		"timestamp": e.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}
	if e.Emotion != "" {
		data["emotion"] = e.Emotion
	}
	return data
}

func moodData(m *domain.MoodEntry) map[string]any {
	data := map[string]any{
		"date":  m.Date,
		"mood":  m.Mood,
		"label": m.Label(),
		"emoji": m.Emoji(),
	}
	if m.Note != "" {
		data["note"] = m.Note
	}
	return data
}
