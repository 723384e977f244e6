package render

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/mdx/pkg/markup"
)

// RendererConfig configures the tree renderer.
type RendererConfig struct {
	// Concurrency is the maximum number of sibling subtrees rendered at
	// the same time under one element. Values <= 1 render siblings
	// sequentially.
	Concurrency int

	// Logger receives debug output for component dispatch.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*RendererConfig)

// WithConcurrency sets the sibling rendering concurrency.
func WithConcurrency(n int) Option {
	return func(c *RendererConfig) {
		c.Concurrency = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *RendererConfig) {
		c.Logger = logger
	}
}

// Renderer renders markup forests to HTML.
// A Renderer holds no per-render state and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
	logger *slog.Logger
}

// NewRenderer creates a new Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	var config RendererConfig
	for _, opt := range opts {
		opt(&config)
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{config: config, logger: logger}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

// RenderNodes renders the element roots of a forest and concatenates the
// results in source order. Top-level text, comments and doctypes are
// skipped. A nil handler renders every component as the empty string.
func (r *Renderer) RenderNodes(ctx context.Context, nodes []*markup.Node, h Handler) (string, error) {
	if h == nil {
		h = NopHandler
	}
	roots := make([]*markup.Node, 0, len(nodes))
	for _, node := range nodes {
		if node.IsElement() {
			roots = append(roots, node)
		}
	}
	parts, err := r.renderAll(ctx, roots, h)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ""), nil
}

// RenderElement renders a single element and its subtree.
func (r *Renderer) RenderElement(ctx context.Context, el *markup.Node, h Handler) (string, error) {
	if h == nil {
		h = NopHandler
	}
	return r.renderNode(ctx, el, h)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(ctx context.Context, node *markup.Node, h Handler) (string, error) {
	if node == nil {
		return "", nil
	}

	switch node.Kind {
	case markup.KindElement:
		return r.renderElement(ctx, node, h)
	case markup.KindText:
		return node.Text, nil
	default:
		return "", nil
	}
}

// renderElement renders all children, then either dispatches the element
// to the handler or re-serializes it.
func (r *Renderer) renderElement(ctx context.Context, el *markup.Node, h Handler) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	parts, err := r.renderAll(ctx, el.Children, h)
	if err != nil {
		return "", err
	}
	children := strings.Join(parts, "")

	if Classify(el.Name) == TagCustom {
		return r.renderComponent(ctx, el, children, h)
	}
	return serializeElement(el, children), nil
}

// renderComponent builds the props for el and invokes the handler.
func (r *Renderer) renderComponent(ctx context.Context, el *markup.Node, children string, h Handler) (string, error) {
	props := ComponentProps{
		Classes:    slices.Clone(el.Classes),
		Attributes: el.Attributes(),
		Children:   children,
	}
	if el.ID != nil {
		props.ID = markup.StrPtr(*el.ID)
	}

	r.logger.DebugContext(ctx, "render component", "tag", el.Name, "children_len", len(children))

	out, err := h.Handle(ctx, el.Name, props)
	if err != nil {
		var herr *HandlerError
		if errors.As(err, &herr) {
			return "", err
		}
		return "", &HandlerError{Tag: el.Name, Err: err}
	}
	return out, nil
}

// renderAll renders nodes and returns their output in source order.
func (r *Renderer) renderAll(ctx context.Context, nodes []*markup.Node, h Handler) ([]string, error) {
	if r.config.Concurrency <= 1 || countElements(nodes) < 2 {
		parts := make([]string, 0, len(nodes))
		for _, node := range nodes {
			out, err := r.renderNode(ctx, node, h)
			if err != nil {
				return nil, err
			}
			parts = append(parts, out)
		}
		return parts, nil
	}

	parts := make([]string, len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)
	for i, node := range nodes {
		if !node.IsElement() {
			if node.Kind == markup.KindText {
				parts[i] = node.Text
			}
			continue
		}
		g.Go(func() error {
			out, err := r.renderNode(gctx, node, h)
			if err != nil {
				return err
			}
			parts[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

func countElements(nodes []*markup.Node) int {
	n := 0
	for _, node := range nodes {
		if node.IsElement() {
			n++
		}
	}
	return n
}

// serializeElement writes a standard element: attributes in source order,
// then class, then id.
func serializeElement(el *markup.Node, children string) string {
	var b strings.Builder
	b.Grow(len(el.Name)*2 + len(children) + 5)

	b.WriteByte('<')
	b.WriteString(el.Name)
	for _, attr := range el.Attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		if attr.Val != nil {
			writeAttrValue(&b, *attr.Val)
		}
	}
	if len(el.Classes) > 0 {
		b.WriteString(" class")
		writeAttrValue(&b, strings.Join(el.Classes, " "))
	}
	if el.ID != nil {
		b.WriteString(" id")
		writeAttrValue(&b, *el.ID)
	}
	b.WriteByte('>')

	if markup.IsVoidElement(el.Name) {
		return b.String()
	}

	b.WriteString(children)
	b.WriteString("</")
	b.WriteString(el.Name)
	b.WriteByte('>')
	return b.String()
}

func writeAttrValue(b *strings.Builder, value string) {
	b.WriteString(`="`)
	b.WriteString(EscapeAttr(value))
	b.WriteByte('"')
}
