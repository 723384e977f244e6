package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configures the goldmark conversion.
type Options struct {
	// GFM enables GitHub Flavored Markdown (tables, strikethrough,
	// task lists, autolinks). Enabled by default.
	GFM bool

	// Typographer converts quotes and dashes to typographic entities.
	Typographer bool

	// HardWraps renders soft line breaks as <br>.
	HardWraps bool

	// XHTML renders void elements in XHTML form (<br />).
	XHTML bool

	// AutoHeadingID adds generated id attributes to headings.
	AutoHeadingID bool
}

// Option configures a Compiler.
type Option func(*Options)

// WithGFM enables or disables GitHub Flavored Markdown.
func WithGFM(enabled bool) Option {
	return func(o *Options) { o.GFM = enabled }
}

// WithTypographer enables or disables the typographer extension.
func WithTypographer(enabled bool) Option {
	return func(o *Options) { o.Typographer = enabled }
}

// WithHardWraps enables or disables hard line wraps.
func WithHardWraps(enabled bool) Option {
	return func(o *Options) { o.HardWraps = enabled }
}

// WithXHTML enables or disables XHTML output.
func WithXHTML(enabled bool) Option {
	return func(o *Options) { o.XHTML = enabled }
}

// WithAutoHeadingID enables or disables generated heading ids.
func WithAutoHeadingID(enabled bool) Option {
	return func(o *Options) { o.AutoHeadingID = enabled }
}

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// DefaultOptions returns the default compiler options.
func DefaultOptions() Options {
	return Options{GFM: true}
}

// Compiler converts markdown with front-matter into markup text.
// A Compiler is safe for concurrent use.
type Compiler struct {
	md      goldmark.Markdown
	options Options
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var exts []goldmark.Extender
	if o.GFM {
		exts = append(exts, extension.GFM)
	}
	if o.Typographer {
		exts = append(exts, extension.Typographer)
	}

	var parserOpts []parser.Option
	if o.AutoHeadingID {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	// Component tags are raw HTML to goldmark, so unsafe output is required.
	rendererOpts := []renderer.Option{html.WithUnsafe()}
	if o.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if o.XHTML {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}

	return &Compiler{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parserOpts...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
		options: o,
	}
}

// Options returns the options the compiler was built with.
func (c *Compiler) Options() Options {
	return c.options
}

// Compile splits off the front-matter and converts the markdown body.
func (c *Compiler) Compile(source string) (Frontmatter, string, error) {
	fm, body, err := SplitFrontmatter(source)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(body), &buf); err != nil {
		return nil, "", &CompileError{Reason: ReasonConversion, Err: err}
	}
	return fm, buf.String(), nil
}

var defaultCompiler = New()

// Compile compiles source with the default options.
func Compile(source string) (Frontmatter, string, error) {
	return defaultCompiler.Compile(source)
}
