package inferrer

import (
	"context"
	"log/slog"
)

// Logger is a minimal structured logging interface for inference operations.
// It is compatible with log/slog and easily adapted to zap, zerolog, etc.
//
// By default, no logging is performed. Use WithLogger to enable logging:
//
//	logger := inferrer.NewSlogAdapter(slog.Default())
//	result, err := inferrer.GenerateWithOptions(
//	    inferrer.WithFilePath("data.json"),
//	    inferrer.WithLogger(logger),
//	)
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs
	Debug(msg string, keysAndValues ...any)
	// Info logs an info-level message with optional key-value pairs
	Info(msg string, keysAndValues ...any)
	// Warn logs a warning-level message with optional key-value pairs
	Warn(msg string, keysAndValues ...any)
	// Error logs an error-level message with optional key-value pairs
	Error(msg string, keysAndValues ...any)
	// With returns a new Logger with the given key-value pairs added to context
	With(keysAndValues ...any) Logger
}

// NopLogger is a Logger that discards all log messages.
// This is the default when no logger is configured.
type NopLogger struct{}

// Debug discards the message
func (NopLogger) Debug(string, ...any) {}

// Info discards the message
func (NopLogger) Info(string, ...any) {}

// Warn discards the message
func (NopLogger) Warn(string, ...any) {}

// Error discards the message
func (NopLogger) Error(string, ...any) {}

// With returns the same NopLogger
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a Logger backed by the given *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug logs at debug level
func (s *SlogAdapter) Debug(msg string, keysAndValues ...any) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs at info level
func (s *SlogAdapter) Info(msg string, keysAndValues ...any) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs at warn level
func (s *SlogAdapter) Warn(msg string, keysAndValues ...any) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs at error level
func (s *SlogAdapter) Error(msg string, keysAndValues ...any) {
	s.logger.Error(msg, keysAndValues...)
}

// With returns a new SlogAdapter with additional context
func (s *SlogAdapter) With(keysAndValues ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(keysAndValues...)}
}

// ContextLogger wraps a Logger with a context.Context for slog handlers
// that extract values from context (trace IDs, request IDs, etc.).
type ContextLogger struct {
	logger Logger
	ctx    context.Context
}

// NewContextLogger creates a ContextLogger that carries ctx alongside logger.
// If logger is nil, NopLogger is used. If ctx is nil, context.Background() is used.
func NewContextLogger(ctx context.Context, logger Logger) *ContextLogger {
	if logger == nil {
		logger = NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &ContextLogger{logger: logger, ctx: ctx}
}

// Context returns the context carried by this logger
func (c *ContextLogger) Context() context.Context {
	return c.ctx
}

// Debug logs at debug level
func (c *ContextLogger) Debug(msg string, keysAndValues ...any) {
	c.logger.Debug(msg, keysAndValues...)
}

// Info logs at info level
func (c *ContextLogger) Info(msg string, keysAndValues ...any) {
	c.logger.Info(msg, keysAndValues...)
}

// Warn logs at warn level
func (c *ContextLogger) Warn(msg string, keysAndValues ...any) {
	c.logger.Warn(msg, keysAndValues...)
}

// Error logs at error level
func (c *ContextLogger) Error(msg string, keysAndValues ...any) {
	c.logger.Error(msg, keysAndValues...)
}

// With returns a new ContextLogger with additional context values
func (c *ContextLogger) With(keysAndValues ...any) Logger {
	return &ContextLogger{logger: c.logger.With(keysAndValues...), ctx: c.ctx}
}

// Compile-time interface checks
var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = (*ContextLogger)(nil)
)
