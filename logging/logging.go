// Package logging contains the structured logger used throughout armsim. It is a thin layer over
// zap that lets tests route log lines through testing.TB and observe them.
package logging

import (
	"io"
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewLogger returns a logger that writes Info+ lines to stdout in UTC.
func NewLogger(name string) Logger {
	return NewWriterLogger(name, os.Stdout)
}

// NewWriterLogger returns a logger that writes Info+ lines to w in UTC.
func NewWriterLogger(name string, w io.Writer) Logger {
	return newImpl(name, INFO, true, NewWriterAppender(zapcore.AddSync(w)))
}

// NewTestLogger returns a Debug+ logger that writes through the test object in local time.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also keeps every entry in an in memory
// observer for assertions.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	return newImpl("", DEBUG, false, NewTestAppender(tb), observerCore), observedLogs
}
