package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the log file created inside the logs directory
const FileName = "taskpilot.log"

// Logger is the global slog instance for the application
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init initializes the logging system, writing logs to <dataDir>/logs/taskpilot.log.
// Uses text format for human readability.
func Init(dataDir string, level slog.Level) error {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	// Open log file in append mode
	file, err := os.OpenFile(filepath.Join(logDir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return nil
}

// Discard routes all logging nowhere. Used by commands that must keep the
// terminal clean and by tests.
func Discard() {
	mu.Lock()
	defer mu.Unlock()
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(Logger)
}

// Close flushes and closes the log file opened by Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
