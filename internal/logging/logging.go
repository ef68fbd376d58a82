// Package logging builds the zap loggers used by the sdkgen command and
// adapts them to the parser.Logger interface the library packages accept.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/erraggy/sdkgen/parser"
)

// New returns a zap logger writing to stderr. JSON output uses the
// production encoder; otherwise a colorless console encoder is used.
// Debug entries are only emitted when verbose is set.
func New(jsonOutput, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if jsonOutput {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.TimeKey = ""
		cfg.EncoderConfig.CallerKey = ""
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// ZapAdapter wraps a *zap.SugaredLogger to implement parser.Logger.
type ZapAdapter struct {
	logger *zap.SugaredLogger
}

// NewZapAdapter creates a parser.Logger backed by l. A nil logger yields
// an adapter around zap.NewNop.
func NewZapAdapter(l *zap.Logger) *ZapAdapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapAdapter{logger: l.Sugar()}
}

// Debug implements parser.Logger.
func (a *ZapAdapter) Debug(msg string, attrs ...any) {
	a.logger.Debugw(msg, attrs...)
}

// Info implements parser.Logger.
func (a *ZapAdapter) Info(msg string, attrs ...any) {
	a.logger.Infow(msg, attrs...)
}

// Warn implements parser.Logger.
func (a *ZapAdapter) Warn(msg string, attrs ...any) {
	a.logger.Warnw(msg, attrs...)
}

// Error implements parser.Logger.
func (a *ZapAdapter) Error(msg string, attrs ...any) {
	a.logger.Errorw(msg, attrs...)
}

// With implements parser.Logger.
func (a *ZapAdapter) With(attrs ...any) parser.Logger {
	return &ZapAdapter{logger: a.logger.With(attrs...)}
}

var _ parser.Logger = (*ZapAdapter)(nil)
