// Package logging is the structured logger every orio component receives.
// SlogLogger is the only implementation.
package logging

import "context"

// Logger takes key/value pairs after the message, e.g.
//
//	log.Info(ctx, "report stored", "object_id", id, "kind", kind)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always adds args, typically
	// ("module", name).
	With(args ...any) Logger
}
