package render

import "context"

// ComponentProps are the normalized props of a custom component.
// A fresh value is built for every component occurrence.
type ComponentProps struct {
	// ID is the value of the id attribute, nil if absent.
	ID *string

	// Classes are the entries of the class attribute in source order.
	Classes []string

	// Attributes holds every other attribute. A nil value marks a
	// boolean attribute.
	Attributes map[string]*string

	// Children is the rendered markup of all child nodes, concatenated
	// in source order.
	Children string
}

// Attr returns the string value of an attribute, or "" if it is absent
// or boolean.
func (p ComponentProps) Attr(key string) string {
	if v := p.Attributes[key]; v != nil {
		return *v
	}
	return ""
}

// HasAttr reports whether the attribute is present, with or without a value.
func (p ComponentProps) HasAttr(key string) bool {
	_, ok := p.Attributes[key]
	return ok
}

// Handler renders custom components.
//
// Handle is called once for every custom tag, after all of the tag's
// children have been rendered. Implementations must be safe for
// concurrent use when the Renderer is configured with a concurrency
// greater than one.
type Handler interface {
	Handle(ctx context.Context, name string, props ComponentProps) (string, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, name string, props ComponentProps) (string, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, name string, props ComponentProps) (string, error) {
	return f(ctx, name, props)
}

// NopHandler renders every component to the empty string.
// It never fails and has no side effects.
var NopHandler Handler = HandlerFunc(func(context.Context, string, ComponentProps) (string, error) {
	return "", nil
})
