package parser

// Logger receives progress and diagnostics from the parser, the fetcher and
// the generator. Attributes are alternating key-value pairs in the log/slog
// style:
//
//	logger.Debug("resolved type", "schema", "Invoice", "property", "lines")
//
// The command line tool plugs in a zap-backed implementation from
// internal/logging. Library callers that pass nothing get [NopLogger].
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)

	// With returns a Logger that prepends attrs to every entry.
	With(attrs ...any) Logger
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

func (n NopLogger) With(...any) Logger { return n }

var _ Logger = NopLogger{}
