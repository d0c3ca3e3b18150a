package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	// Silence the default charmbracelet/log logger
	// All logging should go through our custom logger instance
	log.SetLevel(log.FatalLevel)
}

const (
	// AppName is used for the log, config and data directory names
	AppName = "dosctl"
	// LogFile is the name of the rotating log file
	LogFile = "dosctl.log"
)

var (
	// Log is the process logger
	Log *log.Logger

	// Diagnostics keeps every line written through Log for later display
	Diagnostics = NewBuffer()

	// logFile is the rotating file writer
	logFile *lumberjack.Logger
)

// Init initializes the logger with the given verbosity level
// When verbose is false, logs go to file only
// When verbose is true, logs go to both file and stderr
func Init(verbose bool) error {
	logDir := filepath.Dir(GetLogPath())

	outputs := []io.Writer{Diagnostics}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		// Fall back to stderr if we can't create the log dir
		outputs = append(outputs, os.Stderr)
	} else {
		logFile = &lumberjack.Logger{
			Filename:   GetLogPath(),
			MaxSize:    1,
			MaxBackups: 2,
		}
		outputs = append(outputs, logFile)
		if verbose {
			outputs = append(outputs, os.Stderr)
		}
	}

	Log = New(io.MultiWriter(outputs...), verbose)
	return nil
}

// New creates a logger writing to w. Components receive a logger
// built here instead of reaching for Log directly.
func New(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
	return l
}

// Discard returns a logger that drops everything, used by tests
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// Close closes the log file
func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	return filepath.Join(xdg.CacheHome, AppName, LogFile)
}

// Convenience functions that use the process logger

func Debug(msg interface{}, keyvals ...interface{}) {
	if Log != nil {
		Log.Debug(msg, keyvals...)
	}
}

func Info(msg interface{}, keyvals ...interface{}) {
	if Log != nil {
		Log.Info(msg, keyvals...)
	}
}

func Warn(msg interface{}, keyvals ...interface{}) {
	if Log != nil {
		Log.Warn(msg, keyvals...)
	}
}

func Error(msg interface{}, keyvals ...interface{}) {
	if Log != nil {
		Log.Error(msg, keyvals...)
	}
}
