package main

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	debugEnabled bool
	debugMu      sync.Mutex
	debugFile    *os.File
	debugLogger  *log.Logger
)

func EnableDebugLogging(enabled bool) {
	debugMu.Lock()
	debugEnabled = enabled
	debugMu.Unlock()
}

func debugLogPath() string {
	return filepath.Join(os.TempDir(), "tetrui-debug.log")
}

// setDebugOutput replaces the log destination. The TUI owns stdout, so the
// default destination is a file in the temp dir.
func setDebugOutput(w io.Writer) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLogger = newDebugLogger(w)
}

func newDebugLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "tetrui",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
}

func activeDebugLogger() *log.Logger {
	debugMu.Lock()
	defer debugMu.Unlock()
	if !debugEnabled {
		return nil
	}
	if debugLogger == nil {
		file, err := os.OpenFile(debugLogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil
		}
		debugFile = file
		debugLogger = newDebugLogger(file)
	}
	return debugLogger
}

func DebugLogf(format string, args ...any) {
	if logger := activeDebugLogger(); logger != nil {
		logger.Debugf(format, args...)
	}
}

// DebugLogw logs msg with key/value pairs.
func DebugLogw(msg string, keyvals ...any) {
	if logger := activeDebugLogger(); logger != nil {
		logger.Debug(msg, keyvals...)
	}
}

func CloseDebugLog() {
	debugMu.Lock()
	defer debugMu.Unlock()
	if debugFile != nil {
		_ = debugFile.Close()
		debugFile = nil
		debugLogger = nil
	}
}
