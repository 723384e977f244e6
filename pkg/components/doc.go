// Package components provides Handler implementations for mdx documents.
//
// A Registry maps component names to handlers and falls back to a
// default for names it does not know. Template components render a Go
// text/template with the component's props, which lets component sets
// be declared in configuration rather than code.
//
//	reg := components.NewRegistry()
//	reg.RegisterFunc("Note", func(ctx context.Context, p render.ComponentProps) (string, error) {
//	    return `<aside class="note">` + p.Children + `</aside>`, nil
//	})
//	html, err := mdx.Render(ctx, source, reg)
package components
