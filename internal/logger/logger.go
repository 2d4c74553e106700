package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Options controls where log output goes.
type Options struct {
	Level string
	// File, when set, receives a copy of every entry in addition to stdout.
	File string
}

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided level.
// The first call initializes the logger; subsequent calls ignore the level
// and return the already initialized instance.
func Get(level string) *Logger {
	return Init(Options{Level: level})
}

// Init is like Get but also accepts an optional log file. If the file cannot be
// opened the logger falls back to stdout only and reports the problem once.
func Init(opts Options) *Logger {
	once.Do(func() {
		l, err := newZapLogger(opts)
		if err != nil {
			l, _ = newZapLogger(Options{Level: opts.Level})
			l.Warnw("log_file_unavailable", "file", opts.File, "err", err)
		}
		globalLogger = l
	})
	return globalLogger
}
