// Package logging builds the application logger.
//
// Logs go to a rotated JSON file in the data directory. A console core on
// stderr is only added in verbose mode, since the TUI owns the terminal.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/xvierd/calm-cli/internal/config"
)

// Options controls logger construction.
type Options struct {
	Verbose bool
	// Console receives the verbose console output. Defaults to os.Stderr.
	Console io.Writer
}

// New returns a logger configured from cfg and the closer of its log file.
// Sync the logger before closing the file.
func New(cfg *config.Config, opts Options) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse log level %q: %w", cfg.Logging.Level, err)
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	logPath := config.GetLogPath(cfg)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAgeDays,
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		level,
	)

	core := fileCore
	if opts.Verbose {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(console),
			level,
		)
		core = zapcore.NewTee(fileCore, consoleCore)
	}

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)), rotator, nil
}
