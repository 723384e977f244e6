package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/mdx/pkg/markdown"
	"github.com/vango-dev/mdx/pkg/markup"
	"github.com/vango-dev/mdx/pkg/render"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"compile", "E100", "Markdown compilation failed", CategoryCompile},
		{"front-matter", "E101", "Unterminated front-matter block", CategoryCompile},
		{"parse", "E110", "Malformed markup", CategoryParse},
		{"component", "E120", "Component failed", CategoryComponent},
		{"config", "E130", "Invalid configuration", CategoryConfig},
		{"input", "E140", "Input read failed", CategoryCLI},
		{"unknown", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E120").Wrap(stderrors.New("boom"))
	if got, want := err.Error(), "E120: Component failed: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := Newf(CategoryCLI, "no such file %q", "a.md").Error(); got != `no such file "a.md"` {
		t.Errorf("Newf Error() = %q", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E140") != nil {
		t.Error("FromError(nil) != nil")
	}
	base := stderrors.New("disk")
	e := FromError(base, "E140")
	if e.Code != "E140" || !stderrors.Is(e, base) {
		t.Errorf("FromError = %+v", e)
	}
	wrapped := fmt.Errorf("outer: %w", e)
	if got := FromError(wrapped, "E100"); got != e {
		t.Errorf("FromError did not return existing *Error")
	}
}

func TestFromRenderError(t *testing.T) {
	source := "---\ntitle: x\nbody\n"
	boom := stderrors.New("boom")

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantLoc  string
	}{
		{
			name:     "unterminated front-matter",
			err:      &markdown.CompileError{Line: 1, Reason: markdown.ReasonUnterminatedFrontmatter},
			wantCode: "E101",
			wantLoc:  "doc.md:1",
		},
		{
			name:     "invalid front-matter",
			err:      &markdown.CompileError{Line: 2, Reason: markdown.ReasonInvalidFrontmatter, Err: boom},
			wantCode: "E102",
			wantLoc:  "doc.md:2",
		},
		{
			name:     "conversion",
			err:      &markdown.CompileError{Reason: markdown.ReasonConversion, Err: boom},
			wantCode: "E100",
			wantLoc:  "doc.md",
		},
		{
			name:     "parse",
			err:      &markup.ParseError{Line: 3, Column: 7, Reason: "element <div> is never closed"},
			wantCode: "E110",
			wantLoc:  "doc.md (compiled):3:7",
		},
		{
			name:     "handler",
			err:      &render.HandlerError{Tag: "Chart", Err: boom},
			wantCode: "E120",
		},
		{
			name:     "canceled",
			err:      context.Canceled,
			wantCode: "E141",
		},
		{
			name:     "component deadline",
			err:      &render.HandlerError{Tag: "Chart", Err: fmt.Errorf("timed out after 1s: %w", context.DeadlineExceeded)},
			wantCode: "E141",
		},
		{
			name:     "other",
			err:      boom,
			wantCode: "E140",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromRenderError(tt.err, "doc.md", source)
			if e.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", e.Code, tt.wantCode)
			}
			if got := e.Location.String(); got != tt.wantLoc {
				t.Errorf("Location = %q, want %q", got, tt.wantLoc)
			}
			if !stderrors.Is(e, tt.err) {
				t.Error("original error not in chain")
			}
		})
	}

	if FromRenderError(nil, "doc.md", "") != nil {
		t.Error("FromRenderError(nil) != nil")
	}
}

func TestFromRenderErrorInterruptedComponent(t *testing.T) {
	e := FromRenderError(&render.HandlerError{Tag: "Chart", Err: context.Canceled}, "doc.md", "")
	if e.Code != "E141" {
		t.Fatalf("Code = %q, want E141", e.Code)
	}
	if !strings.Contains(e.Detail, "<Chart>") {
		t.Errorf("Detail = %q, want component name", e.Detail)
	}
}

func TestFromRenderErrorContext(t *testing.T) {
	source := "---\ntitle: x\nbody\n"
	e := FromRenderError(&markdown.CompileError{Line: 1, Reason: markdown.ReasonUnterminatedFrontmatter}, "doc.md", source)
	if e.ContextStart != 1 {
		t.Errorf("ContextStart = %d, want 1", e.ContextStart)
	}
	if want := []string{"---", "title: x", "body"}; strings.Join(e.Context, "|") != strings.Join(want, "|") {
		t.Errorf("Context = %q, want %q", e.Context, want)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	e := New("E101").WithSource("doc.md", "---\ntitle: x\n", 1, 0)
	out := e.Format()
	for _, want := range []string{
		"ERROR E101: Unterminated front-matter block",
		"doc.md:1",
		"→    1 │ ---",
		"       2 │ title: x",
		"Hint: Close the block",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatColumnIndicator(t *testing.T) {
	DisableColors()
	defer EnableColors()

	e := New("E110").WithSource("x.html", "<div>\n  <p>oops</div>\n", 2, 3)
	out := e.Format()
	if !strings.Contains(out, "│   ^") {
		t.Errorf("Format() missing column marker:\n%s", out)
	}
}

func TestFormatCause(t *testing.T) {
	DisableColors()
	defer EnableColors()

	e := FromRenderError(&render.HandlerError{Tag: "Chart", Err: stderrors.New("no data")}, "doc.md", "")
	out := e.Format()
	if !strings.Contains(out, "Cause: no data") {
		t.Errorf("Format() missing cause:\n%s", out)
	}
	if !strings.Contains(out, "Component <Chart> returned an error.") {
		t.Errorf("Format() missing detail:\n%s", out)
	}
}

func TestFormatCompact(t *testing.T) {
	e := New("E110")
	e.Location = &Location{File: "a.md", Line: 2, Column: 4}
	if got, want := e.FormatCompact(), "a.md:2:4: E110: Malformed markup"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	e := New("E102").Wrap(stderrors.New("yaml: bad"))
	e.Location = &Location{File: "a.md", Line: 2}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(e.FormatJSON()), &decoded); err != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v", err)
	}
	if decoded["code"] != "E102" || decoded["category"] != "compile" || decoded["cause"] != "yaml: bad" {
		t.Errorf("decoded = %v", decoded)
	}
	loc, _ := decoded["location"].(map[string]any)
	if loc["file"] != "a.md" || loc["line"] != float64(2) {
		t.Errorf("location = %v", loc)
	}
}

func TestWithLocationReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	lines := "one\ntwo\nthree\nfour\nfive\nsix\n"
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New("E100").WithLocation(path, 4, 0)
	if e.ContextStart != 2 {
		t.Errorf("ContextStart = %d, want 2", e.ContextStart)
	}
	if got := strings.Join(e.Context, ","); got != "two,three,four,five,six" {
		t.Errorf("Context = %q", got)
	}

	e = New("E100").WithLocation(filepath.Join(t.TempDir(), "missing.md"), 1, 0)
	if e.Context != nil {
		t.Errorf("Context = %q, want nil for missing file", e.Context)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("aaa bbb ccc ddd", 7)
	if got := strings.Join(lines, "|"); got != "aaa bbb|ccc ddd" {
		t.Errorf("wrapText = %q", got)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText empty != nil")
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 || codes[0] != "E100" {
		t.Fatalf("codes = %v", codes)
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate("E110"); !ok {
		t.Error("E110 missing")
	}
}
