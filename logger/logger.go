// Package logger provides structured logging for the window chrome.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/NaveLIL/erez-chrome/config"
)

// Logger is the application logger with optional rotating file output.
type Logger struct {
	*logrus.Logger
	logFile     *lumberjack.Logger
	config      *config.LoggingConfig
	mu          sync.Mutex
	initialized bool
}

var (
	instance *Logger
	once     sync.Once
)

// Get returns the singleton logger instance.
func Get() *Logger {
	once.Do(func() {
		instance = &Logger{
			Logger: logrus.New(),
		}
	})
	return instance
}

// Init initializes the logger with the provided configuration.
func (l *Logger) Init(cfg *config.LoggingConfig, configDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.config = cfg

	// Set log level
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     true,
	})

	if cfg.ToFile {
		logPath := cfg.FilePath
		if !filepath.IsAbs(logPath) {
			logPath = filepath.Join(configDir, logPath)
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		l.logFile = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    ParseMaxSize(cfg.MaxFileSize),
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}

		// Write to both file and stdout
		l.SetOutput(io.MultiWriter(os.Stdout, l.logFile))
	} else {
		l.SetOutput(os.Stdout)
	}

	l.initialized = true
	l.Info("Logger initialized")
	return nil
}

// ParseMaxSize parses sizes like "10MB" into megabytes. Invalid input yields 10.
func ParseMaxSize(s string) int {
	maxSize := 10
	if s == "" {
		return maxSize
	}
	var n int
	if _, err := fmt.Sscanf(s, "%dMB", &n); err != nil || n <= 0 {
		return maxSize
	}
	return n
}

// Close flushes and closes the log file.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Info("Logger closed")
	if l.logFile != nil {
		l.logFile.Close()
		l.logFile = nil
	}
	l.SetOutput(os.Stdout)
}

// Component returns an entry tagged with the component name.
func (l *Logger) Component(name string) *logrus.Entry {
	return l.WithField("component", name)
}
