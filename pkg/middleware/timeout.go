package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/vango-dev/mdx/pkg/render"
)

// Timeout bounds each component call to d. The wrapped handler receives a
// context with the deadline; if it has not returned when the deadline
// passes, the call fails with an error wrapping context.DeadlineExceeded.
// A non-positive d disables the bound.
func Timeout(d time.Duration) Middleware {
	return func(next render.Handler) render.Handler {
		if d <= 0 {
			return next
		}
		return render.HandlerFunc(func(ctx context.Context, name string, props render.ComponentProps) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			type result struct {
				out string
				err error
			}
			done := make(chan result, 1)
			go func() {
				// A panic cannot cross goroutines, so it is reported here.
				defer func() {
					if r := recover(); r != nil {
						done <- result{err: &PanicError{Value: r, Stack: debug.Stack()}}
					}
				}()
				out, err := next.Handle(ctx, name, props)
				done <- result{out, err}
			}()

			select {
			case r := <-done:
				return r.out, r.err
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					return "", fmt.Errorf("timed out after %s: %w", d, ctx.Err())
				}
				return "", ctx.Err()
			}
		})
	}
}
