package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger writes leveled diagnostics to stderr so stdout stays free for
// story output.
type Logger struct {
	Debug bool
	l     *log.Logger
}

func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stderr, debug)
}

func NewLoggerTo(w io.Writer, debug bool) *Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          "storyd",
		ReportTimestamp: debug,
	})

	if debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}

	return &Logger{Debug: debug, l: l}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.l.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.l.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.l.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.l.Errorf(format, args...)
}
