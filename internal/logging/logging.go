// Package logging builds the zap logger used across the client.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	Level   string
	Format  string // "json" or "console"
	Output  string // "stdout", "stderr", "-" (stderr) or a file path
	Version string
}

// New creates a structured logger. File output is appended to, creating
// parent directories as needed, so the TUI can keep the terminal clean.
// The returned close function syncs the logger and releases the log file;
// it is a no-op for the standard streams beyond the sync.
func New(cfg Config) (*zap.Logger, func() error, error) {
	levelName := cfg.Level
	if levelName == "" {
		levelName = "info"
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level '%s': %w", cfg.Level, err)
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var (
		writeSyncer zapcore.WriteSyncer
		file        *os.File
	)
	switch cfg.Output {
	case "stdout":
		writeSyncer = zapcore.AddSync(os.Stdout)
	case "stderr", "-", "":
		writeSyncer = zapcore.AddSync(os.Stderr)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file '%s': %w", cfg.Output, err)
		}
		writeSyncer = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	if cfg.Version != "" {
		logger = logger.With(zap.String("version", cfg.Version))
	}

	closeLog := func() error {
		if file == nil {
			// stderr and stdout may not support fsync
			_ = logger.Sync()
			return nil
		}
		if err := file.Sync(); err != nil && !errors.Is(err, os.ErrClosed) {
			_ = file.Close()
			return fmt.Errorf("failed to flush log file: %w", err)
		}
		return file.Close()
	}

	return logger, closeLog, nil
}
