package logging

import "log/slog"

// Standard attribute keys shared by every command.
const (
	// FieldComponent names the subsystem emitting the record.
	FieldComponent = "component"
	// FieldFile is the input file a record refers to.
	FieldFile = "file"
	// FieldRunID correlates every record of one CLI invocation.
	FieldRunID = "run_id"
	// FieldReason carries a human-readable cause, e.g. why a file was unreadable.
	FieldReason = "reason"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key, value string) Attr { return slog.String(key, value) }

func File(path string) Attr { return slog.String(FieldFile, path) }

func RunID(id string) Attr { return slog.String(FieldRunID, id) }

func Reason(reason string) Attr { return slog.String(FieldReason, reason) }

// Error records err under the "error" key; a nil error is rendered as <nil>.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards every record.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with the component attribute. A nil logger
// yields a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}
