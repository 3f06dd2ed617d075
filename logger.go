package stitch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled is always false, so disabled
// calls never build their attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. Readers and SetLogger may race.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for stitch and all its sub-packages.
// By default, stitch produces no log output. Pass nil to restore the
// default silent behavior.
//
// Log levels used by stitch:
//   - [slog.LevelDebug]: pipeline and codec diagnostics (split counts, block headers)
//   - [slog.LevelWarn]: recoverable corruption (truncated streams, unmapped opcodes)
//
// Example:
//
//	stitch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger. The compress and formats
// packages log through it as well.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
