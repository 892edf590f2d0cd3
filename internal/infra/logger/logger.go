package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type Logger struct {
	mu            sync.Mutex
	fileLogger    *log.Logger
	closer        io.Closer
	console       io.Writer
	level         Level
	includeStdout bool
	muted         bool
}

// New opens filePath for appending (when set) and returns a Logger that also
// echoes Info and above to stderr when includeStdout is true.
func New(filePath string, level Level, includeStdout bool) (*Logger, error) {
	l := &Logger{
		console:       os.Stderr,
		level:         level,
		includeStdout: includeStdout,
	}

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.fileLogger = log.New(f, "", 0)
		l.closer = f
	}

	return l, nil
}

// NewWriter is used by tests and callers that want everything in one writer.
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		console:       w,
		level:         level,
		includeStdout: true,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{console: io.Discard, level: LevelError + 1}
}

// SetConsole mutes or unmutes console output. The progress UI mutes it
// while it owns the terminal; the log file keeps receiving entries.
func (l *Logger) SetConsole(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.muted = !enabled
}

func (l *Logger) log(lvl Level, prefix string, format string, v ...any) {
	if lvl < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, v...)
	fullMsg := fmt.Sprintf("%s [%s] %s", timestamp, prefix, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLogger != nil {
		l.fileLogger.Println(fullMsg)
	}

	// Debug only goes to the file so it never interleaves with progress output
	if l.includeStdout && !l.muted && lvl >= LevelInfo {
		fmt.Fprintln(l.console, fullMsg)
	}
}

func ParseLevel(lvl string) Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) Debug(f string, v ...any) { l.log(LevelDebug, "DEBUG", f, v...) }
func (l *Logger) Info(f string, v ...any)  { l.log(LevelInfo, "INFO", f, v...) }
func (l *Logger) Warn(f string, v ...any)  { l.log(LevelWarn, "WARN", f, v...) }
func (l *Logger) Error(f string, v ...any) { l.log(LevelError, "ERROR", f, v...) }

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
