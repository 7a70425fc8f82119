// Package applog wires structured logging for the CLI and, optionally, the
// library packages beneath it. Library code never logs by default: each
// package accepts a *logrus.Entry that may be nil, and treats nil as "log
// nothing" rather than reaching for a global logger.
package applog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Discard is a logger that drops everything; Entry returns it when
// given nil.
var Discard = logrus.NewEntry(func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}())

// Entry returns e if non-nil, otherwise Discard, so a caller holding a
// possibly-nil entry can log without a nil check.
func Entry(e *logrus.Entry) *logrus.Entry {
	if e == nil {
		return Discard
	}
	return e
}

// New builds the CLI's root logger: logrus's text formatter with full
// timestamps, tagged with the given run ID so every line
// from one invocation can be correlated.
func New(runID string, verbose bool) *logrus.Entry {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l.WithField("run_id", runID)
}
