// Package logging is the structured logger every pokegate component takes.
// The only implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger. Args are key/value pairs:
//
//	logger.Info(ctx, "listening", "addr", addr)
//
// Token values, passwords and the signing secret are never passed in.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes args.
	With(args ...any) Logger
}
