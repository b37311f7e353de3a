package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/halcyonforge/habitbot/internal/config"
	"github.com/halcyonforge/habitbot/internal/logger"
)

// Log files older than this are removed at startup.
const logRetention = 7 * 24 * time.Hour

// initLogger initializes the logger using centralized app configuration.
// Output goes to stdout and, when LOG_DIR is writable, to a timestamped
// file as well. The file handle lives for the process lifetime.
func initLogger(cfg *config.Config) {
	// Source info only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)

	w := io.Writer(os.Stdout)
	if file, err := openLogFile(cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "file logging disabled: %v\n", err)
	} else {
		w = io.MultiWriter(os.Stdout, file)
	}

	logger.InitLoggerWithWriter(loggerConfig, w)
}

// openLogFile creates a timestamped log file and prunes old ones.
func openLogFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("no log directory configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	cleanupOldLogs(dir)

	name := fmt.Sprintf("habitbot-%s.log", time.Now().Format("20060102-150405"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

func cleanupOldLogs(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-logRetention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				slog.Warn("Failed to remove old log file", "file", entry.Name(), "error", err)
			}
		}
	}
}
