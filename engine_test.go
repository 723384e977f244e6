package mdx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vango-dev/mdx/pkg/markdown"
	"github.com/vango-dev/mdx/pkg/markup"
)

func exampleHandler() HandlerFunc {
	return func(ctx context.Context, name string, props ComponentProps) (string, error) {
		switch name {
		case "CustomTitle":
			return "<h1>Some custom title!</h1>", nil
		case "Layout":
			return `<div class="layout">` + props.Children + "</div>", nil
		case "Custom":
			return "<span>X</span>", nil
		}
		return "", nil
	}
}

func TestRenderTitleAndComponent(t *testing.T) {
	got, err := Render(context.Background(), "# Title\n\n<Custom/>", exampleHandler())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "<h1>Title</h1><span>X</span>"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderDocumentExample(t *testing.T) {
	source := `---
title: "Hello, world!"
---

# Hello, world!

This is a **markdown** file with some *content*, but also custom components!

<CustomTitle />

<Layout>

## subtitle

</Layout>

`
	doc, err := New().RenderDocument(context.Background(), source, exampleHandler())
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	want := "<h1>Hello, world!</h1>" +
		"<p>This is a <strong>markdown</strong> file with some <em>content</em>, but also custom components!</p>" +
		"<h1>Some custom title!</h1>" +
		"<div class=\"layout\">\n<h2>subtitle</h2>\n</div>"
	if doc.HTML != want {
		t.Errorf("HTML =\n%q\nwant\n%q", doc.HTML, want)
	}
	if got, _ := doc.Frontmatter.String("title"); got != "Hello, world!" {
		t.Errorf("title = %q, want %q", got, "Hello, world!")
	}
}

func TestRenderDocumentEmptyFrontmatter(t *testing.T) {
	doc, err := New().RenderDocument(context.Background(), "plain", nil)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if doc.Frontmatter == nil {
		t.Error("Frontmatter is nil, want empty map")
	}
	if doc.HTML != "<p>plain</p>" {
		t.Errorf("HTML = %q", doc.HTML)
	}
}

func TestFrontmatterNotPassedToHandler(t *testing.T) {
	h := HandlerFunc(func(ctx context.Context, name string, props ComponentProps) (string, error) {
		if len(props.Attributes) != 0 {
			return "", fmt.Errorf("unexpected attributes %v", props.Attributes)
		}
		return "ok", nil
	})
	got, err := Render(context.Background(), "---\ntitle: T\n---\n\n<Widget />\n", h)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "ok" {
		t.Errorf("Render = %q, want %q", got, "ok")
	}
}

func TestRenderDefaultHandlerEmptiesComponents(t *testing.T) {
	got, err := Render(context.Background(), "# A\n\n<Widget />\n\nafter\n", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "<h1>A</h1><p>after</p>"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderKeepsEmptyAttributeValues(t *testing.T) {
	got, err := Render(context.Background(), `<p><a title="" href="x">y</a></p>`, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `<p><a title="" href="x">y</a></p>`; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	h := HandlerFunc(func(ctx context.Context, name string, props ComponentProps) (string, error) {
		alt, ok := props.Attributes["alt"]
		if !ok || alt == nil {
			return "", fmt.Errorf("alt = %v, want empty string", alt)
		}
		return "<img alt=\"" + *alt + "\">", nil
	})
	got, err = Render(context.Background(), "<Chart dataKey=\"v\" alt=\"\" />\n", h)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `<img alt="">`; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderErrorsByStage(t *testing.T) {
	boom := errors.New("boom")
	failing := HandlerFunc(func(ctx context.Context, name string, props ComponentProps) (string, error) {
		if name == "Boom" {
			return "", boom
		}
		return props.Children, nil
	})

	tests := []struct {
		name   string
		source string
		stage  string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unterminated front-matter",
			source: "---\ntitle: x\n",
			stage:  StageCompile,
			check: func(t *testing.T, err error) {
				var cerr *CompileError
				if !errors.As(err, &cerr) {
					t.Fatalf("error %T is not *CompileError", err)
				}
			},
		},
		{
			name:   "unclosed element",
			source: "<div>\n\nhello\n",
			stage:  StageParse,
			check: func(t *testing.T, err error) {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("error %T is not *ParseError", err)
				}
				if perr.Line != 1 || perr.Column != 1 {
					t.Errorf("position = %d:%d, want 1:1", perr.Line, perr.Column)
				}
			},
		},
		{
			name:   "failing component",
			source: "<Outer>\n<Boom />\n</Outer>\n",
			stage:  StageHandler,
			check: func(t *testing.T, err error) {
				var herr *HandlerError
				if !errors.As(err, &herr) {
					t.Fatalf("error %T is not *HandlerError", err)
				}
				if herr.Tag != "Boom" {
					t.Errorf("Tag = %q, want Boom", herr.Tag)
				}
				if !errors.Is(err, boom) {
					t.Error("errors.Is(err, boom) = false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(context.Background(), tt.source, failing)
			if err == nil {
				t.Fatalf("Render = %q, want error", got)
			}
			if got != "" {
				t.Errorf("output = %q, want empty on error", got)
			}
			if s := Stage(err); s != tt.stage {
				t.Errorf("Stage = %q, want %q", s, tt.stage)
			}
			tt.check(t, err)
		})
	}
}

func TestStage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"other", errors.New("x"), ""},
		{"canceled", context.Canceled, ""},
		{"compile", &markdown.CompileError{Reason: "r"}, StageCompile},
		{"parse", &markup.ParseError{Reason: "r"}, StageParse},
		{"handler", &HandlerError{Tag: "A", Err: errors.New("x")}, StageHandler},
		{"wrapped handler", fmt.Errorf("page: %w", &HandlerError{Tag: "A", Err: errors.New("x")}), StageHandler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stage(tt.err); got != tt.want {
				t.Errorf("Stage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngineCustomParserAndCompiler(t *testing.T) {
	var compiled, parsed atomic.Int32
	compiler := compilerFunc(func(source string) (markdown.Frontmatter, string, error) {
		compiled.Add(1)
		return nil, source, nil
	})
	parser := ParserFunc(func(text string) ([]*markup.Node, error) {
		parsed.Add(1)
		return markup.Parse(text)
	})

	e := New(WithCompiler(compiler), WithParser(parser))
	doc, err := e.RenderDocument(context.Background(), "<b>raw</b>", nil)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if doc.HTML != "<b>raw</b>" {
		t.Errorf("HTML = %q", doc.HTML)
	}
	if doc.Frontmatter == nil {
		t.Error("Frontmatter is nil")
	}
	if compiled.Load() != 1 || parsed.Load() != 1 {
		t.Errorf("compiled=%d parsed=%d, want 1 each", compiled.Load(), parsed.Load())
	}
}

func TestEngineConcurrentMatchesSequential(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "- item <Tag n=\"%d\" /> %d\n", i, i)
	}
	source := b.String()

	h := HandlerFunc(func(ctx context.Context, name string, props ComponentProps) (string, error) {
		return "[" + props.Attr("n") + "]", nil
	})

	seq, err := New().Render(context.Background(), source, h)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	conc, err := New(WithConcurrency(8)).Render(context.Background(), source, h)
	if err != nil {
		t.Fatalf("concurrent: %v", err)
	}
	if seq != conc {
		t.Errorf("concurrent output differs:\n%s\n%s", seq, conc)
	}
	if !strings.Contains(seq, "[29]") {
		t.Errorf("output missing last item: %s", seq)
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Render(ctx, "# Title\n", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got != "" {
		t.Errorf("output = %q, want empty", got)
	}
}

func TestEngineCheck(t *testing.T) {
	e := New()
	if err := e.Check("# ok\n\n<Widget />\n"); err != nil {
		t.Errorf("Check valid: %v", err)
	}
	if err := e.Check("<div>\n\nopen\n"); Stage(err) != StageParse {
		t.Errorf("Check unclosed: Stage = %q, err = %v", Stage(err), err)
	}
}

type compilerFunc func(string) (markdown.Frontmatter, string, error)

func (f compilerFunc) Compile(s string) (markdown.Frontmatter, string, error) { return f(s) }
