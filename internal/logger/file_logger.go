package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes a per-run log file for sweep sessions, so a long sweep's
// per-instrument outcomes survive the terminal scrollback.
type Logger struct {
	runName string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
}

// LogLevel tags log entries by kind.
type LogLevel string

const (
	LogLevelInfo   LogLevel = "INFO"
	LogLevelWarn   LogLevel = "WARN"
	LogLevelError  LogLevel = "ERROR"
	LogLevelResult LogLevel = "RESULT"
)

// NewLogger creates a log file under logs/ named after the run and date.
func NewLogger(runName string) (*Logger, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", runName, time.Now().Format("2006-01-02"))
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		runName: runName,
		logFile: file,
		logger:  log.New(file, "", 0),
	}
	l.writeSessionHeader()

	return l, nil
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Printf("================================================================================")
	l.logger.Printf("BACKTEST SESSION STARTED - %s", l.runName)
	l.logger.Printf("Started: %s", time.Now().Format("2006-01-02 15:04:05"))
	l.logger.Printf("================================================================================")
}

// Log writes a formatted entry with the given level.
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("[%s] [%s] %s", timestamp, level, fmt.Sprintf(format, args...))
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Result logs a per-instrument outcome.
func (l *Logger) Result(format string, args ...interface{}) {
	l.Log(LogLevelResult, format, args...)
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logFile.Close()
}
