package middleware

import (
	"context"

	"github.com/vango-dev/mdx/pkg/render"
)

// Middleware decorates a component handler.
type Middleware func(next render.Handler) render.Handler

// Chain wraps h with mw. The first middleware is the outermost, so it
// runs first on the way in and last on the way out.
func Chain(h render.Handler, mw ...Middleware) render.Handler {
	if h == nil {
		h = render.NopHandler
	}
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			h = mw[i](h)
		}
	}
	return h
}

// Skip bypasses mw for components where condition returns true.
func Skip(condition func(name string) bool, mw Middleware) Middleware {
	return func(next render.Handler) render.Handler {
		wrapped := mw(next)
		return render.HandlerFunc(func(ctx context.Context, name string, props render.ComponentProps) (string, error) {
			if condition(name) {
				return next.Handle(ctx, name, props)
			}
			return wrapped.Handle(ctx, name, props)
		})
	}
}

// Only applies mw to components where condition returns true.
func Only(condition func(name string) bool, mw Middleware) Middleware {
	return Skip(func(name string) bool { return !condition(name) }, mw)
}
