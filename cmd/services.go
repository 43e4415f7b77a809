package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/adapters/notification"
	"github.com/xvierd/calm-cli/internal/adapters/storage"
	"github.com/xvierd/calm-cli/internal/adapters/tui"
	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/emotions"
	"github.com/xvierd/calm-cli/internal/exercises"
	"github.com/xvierd/calm-cli/internal/logging"
	"github.com/xvierd/calm-cli/internal/ports"
	"github.com/xvierd/calm-cli/internal/services"
)

var errNotInteractive = errors.New("this command needs an interactive terminal")

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	logger   *zap.Logger
	logFile  io.Closer
	storage  ports.Storage
	notifier *notification.Notifier
	journal  *services.JournalService
	moods    *services.MoodService
	coping   *services.CopingService
	state    *services.StateService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// stdoutIsTerminal reports whether stdout is an interactive terminal.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if engineFlag != "" {
		cfg.Storage.Engine = engineFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.config = cfg

	app.logger, app.logFile, err = logging.New(cfg, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.storage, err = storage.Open(cfg.Storage.Engine, cfg.Storage.DataDir, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.notifier = notification.New(&cfg.Notifications)

	app.journal = services.NewJournalService(app.storage, app.logger)
	app.moods = services.NewMoodService(app.storage, services.MoodSettings{
		WindowDays:        cfg.Mood.WindowDays,
		InsightMinEntries: cfg.Mood.InsightMinEntries,
	}, app.logger)
	catalog := exercises.NewCatalog(cfg.ExerciseSettings(), emotions.All())
	app.coping = services.NewCopingService(catalog, app.journal, app.notifier, app.logger)
	app.state = services.NewStateService(app.journal, app.moods)

	app.logger.Debug("services initialized",
		zap.String("engine", cfg.Storage.Engine),
		zap.String("data_dir", cfg.Storage.DataDir))
	return nil
}

// cleanupServices closes all resources. It is safe to call more than once.
func cleanupServices() error {
	if app.logger != nil {
		// Sync fails on some terminals; the file core is what matters.
		_ = app.logger.Sync()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
	if app.storage == nil {
		return nil
	}
	err := app.storage.Close()
	app.storage = nil
	return err
}

func (a *appDeps) tuiDeps() tui.Deps {
	return tui.Deps{
		Coping:    a.coping,
		Journal:   a.journal,
		Moods:     a.moods,
		Breathing: a.config.Breathing,
		Theme:     &a.config.Theme,
		Logger:    a.logger,
	}
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
