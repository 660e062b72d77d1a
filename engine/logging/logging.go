// Package logging builds the logrus loggers every engine component reports through.
package logging

import (
	"io"
	"sync"

	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
)

// Options configures New.
type Options struct {
	Level string    // error, warn, info, debug, trace; empty means info
	Out   io.Writer // nil means a colorable stdout
}

var (
	defaultLogger *log.Logger
	once          sync.Once
)

// New returns a text logger with full timestamps. An unknown level falls back
// to info and is reported on the returned logger.
func New(opts Options) *log.Logger {
	out := opts.Out
	colors := false
	if out == nil {
		out = colorable.NewColorableStdout()
		colors = true
	}

	l := log.New()
	l.SetOutput(out)
	l.SetFormatter(&log.TextFormatter{
		ForceColors:     colors,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			l.WithError(err).Warn("unknown log level, using info")
		} else {
			level = parsed
		}
	}
	l.SetLevel(level)
	return l
}

// Default returns the process-wide logger used when a component is built
// without one.
func Default() *log.Logger {
	once.Do(func() {
		defaultLogger = New(Options{})
	})
	return defaultLogger
}

// Or returns l, or Default when l is nil.
func Or(l log.FieldLogger) log.FieldLogger {
	if l == nil {
		return Default()
	}
	return l
}
