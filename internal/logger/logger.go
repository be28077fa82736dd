package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type LogLevel int

type Logger struct {
	logLevel LogLevel
	logDir   string
	logger   *log.Logger
}

// Levels are ordered by verbosity: a logger prints every message at or
// below its own level.
const (
	ERROR LogLevel = iota
	INFO
	DEBUG
)

var (
	registryMu sync.RWMutex
	registry   = map[string]*Logger{}
)

func Get(name string) (logger *Logger) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if ln, ok := registry[name]; ok {
		return ln
	}

	return nil
}

// New registers a file-backed logger under name. Asking for a name that is
// already registered returns the existing logger.
func New(name string, logDir string, logLevel LogLevel) (*Logger, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if logger, exists := registry[name]; exists {
		return logger, nil
	}

	logger, err := setupLogger(logLevel, logDir)
	if err != nil {
		return nil, err
	}

	registry[name] = logger
	return logger, nil
}

// NewWithWriter registers a logger that writes to w instead of a log file.
func NewWithWriter(name string, w io.Writer, logLevel LogLevel) *Logger {
	registryMu.Lock()
	defer registryMu.Unlock()

	if logger, exists := registry[name]; exists {
		return logger
	}

	logger := &Logger{
		logLevel: logLevel,
		logger:   log.New(w, name+" ", log.Ldate|log.Ltime),
	}

	registry[name] = logger
	return logger
}

func (l *Logger) init() error {
	if err := os.MkdirAll(l.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")

	logFile, err := os.OpenFile(
		filepath.Join(l.logDir, fmt.Sprintf("Kaleidoscope-%s.log", timestamp)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.logger = log.New(logFile, "", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

func setupLogger(logLevel LogLevel, logDir string) (*Logger, error) {
	logger := &Logger{
		logLevel: logLevel,
		logDir:   logDir,
		logger:   nil,
	}

	if err := logger.init(); err != nil {
		return nil, err
	}

	return logger, nil
}

// A nil *Logger is valid and discards everything, so packages can call
// Get for a name nobody registered.

func (l *Logger) Info(format string, v ...any) {
	if l != nil && l.logLevel >= INFO {
		l.logger.Printf("INFO: "+format, v...)
	}
}

func (l *Logger) Debug(format string, v ...any) {
	if l != nil && l.logLevel >= DEBUG {
		l.logger.Printf("DEBUG: "+format, v...)
	}
}

func (l *Logger) Error(format string, v ...any) {
	if l != nil && l.logLevel >= ERROR {
		l.logger.Printf("ERROR: "+format, v...)
	}
}

func (l LogLevel) String() string {
	switch l {
	case ERROR:
		return "error"
	case INFO:
		return "info"
	case DEBUG:
		return "debug"
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "":
		return ERROR, nil
	case "info":
		return INFO, nil
	case "debug":
		return DEBUG, nil
	}
	return ERROR, fmt.Errorf("unknown log level %q", s)
}

func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry = map[string]*Logger{}
}
