// Package mdx renders markdown documents that embed custom component
// tags into HTML.
//
// A document is compiled from markdown (with optional YAML front-matter)
// to markup, parsed into a node tree and rendered depth-first. Standard
// HTML elements pass through; any tag starting with an ASCII uppercase
// letter is handed to a Handler together with its normalized props and
// the already-rendered markup of its children.
//
// Usage:
//
//	h := mdx.HandlerFunc(func(ctx context.Context, name string, p mdx.ComponentProps) (string, error) {
//	    switch name {
//	    case "Layout":
//	        return `<div class="layout">` + p.Children + `</div>`, nil
//	    }
//	    return "", nil
//	})
//
//	html, err := mdx.Render(ctx, "# Hello\n\n<Layout>\n\n## subtitle\n\n</Layout>\n", h)
//	// html == "<h1>Hello</h1><div class=\"layout\">\n<h2>subtitle</h2>\n</div>"
//
// Errors are discriminable by pipeline stage: *CompileError for bad
// source, *ParseError for malformed markup and *HandlerError for a
// failing component. Stage(err) names the stage without type assertions.
package mdx

import (
	"context"

	"github.com/vango-dev/mdx/pkg/markdown"
	"github.com/vango-dev/mdx/pkg/markup"
	"github.com/vango-dev/mdx/pkg/render"
)

// =============================================================================
// Re-exported types
// =============================================================================

// Handler renders custom components. See render.Handler.
type Handler = render.Handler

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc = render.HandlerFunc

// ComponentProps are the normalized props passed to a Handler.
type ComponentProps = render.ComponentProps

// Frontmatter holds a document's decoded metadata block.
type Frontmatter = markdown.Frontmatter

// CompileError reports source that could not be compiled to markup.
type CompileError = markdown.CompileError

// ParseError reports compiled markup that is not well-formed.
type ParseError = markup.ParseError

// HandlerError reports a component whose Handler failed.
type HandlerError = render.HandlerError

// NopHandler renders every component to the empty string.
var NopHandler = render.NopHandler

// =============================================================================
// Package-level rendering
// =============================================================================

var defaultEngine = New()

// Render renders source with the default engine. A nil handler renders
// every component as the empty string.
func Render(ctx context.Context, source string, h Handler) (string, error) {
	return defaultEngine.Render(ctx, source, h)
}
