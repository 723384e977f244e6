package components

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vango-dev/mdx/pkg/render"
)

// Func renders a single named component.
type Func func(ctx context.Context, props render.ComponentProps) (string, error)

// Registry is a Handler that dispatches on the component name.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]render.Handler
	fallback render.Handler
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithFallback sets the handler used for names that are not registered.
// The default is render.NopHandler.
func WithFallback(h render.Handler) RegistryOption {
	return func(r *Registry) {
		if h != nil {
			r.fallback = h
		}
	}
}

// Strict makes unknown component names an error.
func Strict() RegistryOption {
	return WithFallback(render.HandlerFunc(func(ctx context.Context, name string, _ render.ComponentProps) (string, error) {
		return "", fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}))
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		handlers: make(map[string]render.Handler),
		fallback: render.NopHandler,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds name to h, replacing any previous binding.
// Names must start with an ASCII uppercase letter to ever be dispatched.
func (r *Registry) Register(name string, h render.Handler) error {
	if render.Classify(name) != render.TagCustom {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if h == nil {
		return fmt.Errorf("components: nil handler for %q", name)
	}
	r.mu.Lock()
	r.handlers[name] = h
	r.mu.Unlock()
	return nil
}

// RegisterFunc binds name to fn.
func (r *Registry) RegisterFunc(name string, fn Func) error {
	if fn == nil {
		return fmt.Errorf("components: nil func for %q", name)
	}
	return r.Register(name, render.HandlerFunc(func(ctx context.Context, _ string, props render.ComponentProps) (string, error) {
		return fn(ctx, props)
	}))
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, h render.Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Unregister removes the binding for name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.handlers, name)
	r.mu.Unlock()
}

// Lookup returns the handler bound to name.
func (r *Registry) Lookup(name string) (render.Handler, bool) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()
	return h, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Handle implements render.Handler.
func (r *Registry) Handle(ctx context.Context, name string, props render.ComponentProps) (string, error) {
	h, ok := r.Lookup(name)
	if !ok {
		h = r.fallback
	}
	return h.Handle(ctx, name, props)
}
