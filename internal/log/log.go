// Package log provides the logging interface used across the emulator.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the subset of a leveled logger the emulator needs.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a logrus-backed Logger writing to stderr at the given level.
func New(level logrus.Level) Logger {
	return NewWithOutput(os.Stderr, level)
}

// NewWithOutput returns a logrus-backed Logger writing to w.
func NewWithOutput(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// ParseLevel converts a level name such as "debug" to a logrus level.
func ParseLevel(name string) (logrus.Level, error) {
	return logrus.ParseLevel(name)
}
