package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/mdx/pkg/render"
)

// Logging logs every component call at Debug and failures at Error.
// A nil logger uses slog.Default().
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next render.Handler) render.Handler {
		return render.HandlerFunc(func(ctx context.Context, name string, props render.ComponentProps) (string, error) {
			start := time.Now()
			out, err := next.Handle(ctx, name, props)
			if err != nil {
				logger.ErrorContext(ctx, "component failed",
					"tag", name,
					"duration", time.Since(start),
					"error", err,
				)
				return out, err
			}
			logger.DebugContext(ctx, "component rendered",
				"tag", name,
				"duration", time.Since(start),
				"output_bytes", len(out),
			)
			return out, nil
		})
	}
}
