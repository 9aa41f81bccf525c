package calc

import (
	"context"
	"log/slog"
	"time"

	"github.com/symwasm/symwasm/symengine"
)

// Middleware wraps an entry point handler. The registry applies the chain at
// construction time, so dispatch pays no per-call assembly cost.
type Middleware func(name string, next Handler) Handler

// PanicRecoveryMiddleware converts panics into *PanicError. Register it
// first so it also covers downstream middleware.
func PanicRecoveryMiddleware() Middleware {
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, eng symengine.Engine, args []string) (out string, err error) {
			defer func() {
				if r := recover(); r != nil {
					out = ""
					err = &PanicError{Name: name, Value: r}
				}
			}()
			return next(ctx, eng, args)
		}
	}
}

// LoggingMiddleware records each dispatch with its duration and outcome.
func LoggingMiddleware(log *slog.Logger) Middleware {
	if log == nil {
		log = slog.Default()
	}
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
			start := time.Now()
			out, err := next(ctx, eng, args)
			elapsed := time.Since(start)
			if err != nil {
				log.ErrorContext(ctx, "calc: entry point failed",
					"op", name, "elapsed", elapsed, "error", err)
				return out, err
			}
			log.DebugContext(ctx, "calc: entry point ok",
				"op", name, "elapsed", elapsed)
			return out, nil
		}
	}
}
