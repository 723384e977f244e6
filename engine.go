package mdx

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/mdx/pkg/markdown"
	"github.com/vango-dev/mdx/pkg/markup"
	"github.com/vango-dev/mdx/pkg/render"
)

// Compiler turns document source into front-matter and markup text.
type Compiler interface {
	Compile(source string) (markdown.Frontmatter, string, error)
}

// Parser turns markup text into a node forest.
type Parser interface {
	Parse(markupText string) ([]*markup.Node, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(markupText string) ([]*markup.Node, error)

// Parse implements Parser.
func (f ParserFunc) Parse(markupText string) ([]*markup.Node, error) {
	return f(markupText)
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompiler replaces the default goldmark compiler.
func WithCompiler(c Compiler) Option {
	return func(e *Engine) {
		if c != nil {
			e.compiler = c
		}
	}
}

// WithParser replaces the default markup parser.
func WithParser(p Parser) Option {
	return func(e *Engine) {
		if p != nil {
			e.parser = p
		}
	}
}

// WithConcurrency sets the maximum number of sibling subtrees rendered
// at once. Values <= 1 render sequentially.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithLogger sets the structured logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine runs the compile, parse and render pipeline.
// An Engine keeps no state between calls and is safe for concurrent use.
type Engine struct {
	compiler    Compiler
	parser      Parser
	concurrency int
	renderer    *render.Renderer
	logger      *slog.Logger
}

// Document is the result of rendering a source document.
type Document struct {
	// Frontmatter is the decoded metadata block. It is never nil.
	Frontmatter Frontmatter

	// HTML is the rendered markup.
	HTML string
}

// New creates an Engine. Without options it uses a goldmark compiler
// with default options, markup.Parse and sequential rendering.
func New(opts ...Option) *Engine {
	e := &Engine{
		compiler: markdown.New(),
		parser:   ParserFunc(markup.Parse),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.renderer = render.NewRenderer(
		render.WithConcurrency(e.concurrency),
		render.WithLogger(e.logger),
	)
	return e
}

// Render compiles, parses and renders source. Compile and parse errors
// are returned unchanged; a failing component yields a *HandlerError.
// No output is returned on error.
func (e *Engine) Render(ctx context.Context, source string, h Handler) (string, error) {
	doc, err := e.RenderDocument(ctx, source, h)
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

// RenderDocument is like Render but also returns the decoded front-matter
// to the caller. The front-matter is not made available to the Handler.
func (e *Engine) RenderDocument(ctx context.Context, source string, h Handler) (*Document, error) {
	start := time.Now()

	fm, markupText, err := e.compiler.Compile(source)
	if err != nil {
		e.logger.DebugContext(ctx, "compile failed", "error", err)
		return nil, err
	}

	nodes, err := e.parser.Parse(markupText)
	if err != nil {
		e.logger.DebugContext(ctx, "parse failed", "error", err)
		return nil, err
	}

	html, err := e.renderer.RenderNodes(ctx, nodes, h)
	if err != nil {
		e.logger.DebugContext(ctx, "render failed", "error", err)
		return nil, err
	}

	if fm == nil {
		fm = Frontmatter{}
	}
	e.logger.DebugContext(ctx, "document rendered",
		"source_bytes", len(source),
		"html_bytes", len(html),
		"duration", time.Since(start),
	)
	return &Document{Frontmatter: fm, HTML: html}, nil
}

// Check compiles and parses source without rendering it, reporting the
// first compile or parse error.
func (e *Engine) Check(source string) error {
	_, markupText, err := e.compiler.Compile(source)
	if err != nil {
		return err
	}
	_, err = e.parser.Parse(markupText)
	return err
}
