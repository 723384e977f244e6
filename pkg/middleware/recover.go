package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/vango-dev/mdx/pkg/render"
)

// PanicError is returned by Recover when a handler panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Recover turns a panicking handler into a *PanicError so the document
// fails with a handler error instead of crashing the process.
func Recover() Middleware {
	return func(next render.Handler) render.Handler {
		return render.HandlerFunc(func(ctx context.Context, name string, props render.ComponentProps) (out string, err error) {
			defer func() {
				if r := recover(); r != nil {
					out = ""
					err = &PanicError{Value: r, Stack: debug.Stack()}
				}
			}()
			return next.Handle(ctx, name, props)
		})
	}
}
