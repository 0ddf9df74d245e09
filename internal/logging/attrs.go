package logging

import (
	"context"
	"log/slog"
)

// Standardized structured logging keys shared across packages.
const (
	// FieldComponent names the emitting subsystem.
	FieldComponent = "component"
	// FieldRunID correlates all records from one converter run.
	FieldRunID = "run_id"
	// FieldBatch identifies the volume directory being processed.
	FieldBatch = "batch"
	// FieldCongress identifies the congress a record belongs to.
	FieldCongress = "congress"
	// FieldBillID identifies an output bill record.
	FieldBillID = "bill_id"
	// FieldAccessID identifies the GPO granule an item came from.
	FieldAccessID = "access_id"
)

type Attr = slog.Attr

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
