// Package log provides the logging interface used by the emulator
// components, backed by logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal logging surface the components depend on.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing to stderr at the given level. Unknown
// level names fall back to info.
func New(level string) Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a Logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return l
}

// WithField returns a Logger that attaches the key/value pair to every
// entry, if l is backed by logrus. Other loggers are returned as is.
func WithField(l Logger, key string, value interface{}) Logger {
	switch lg := l.(type) {
	case *logrus.Logger:
		return lg.WithField(key, value)
	case *logrus.Entry:
		return lg.WithField(key, value)
	}
	return l
}
