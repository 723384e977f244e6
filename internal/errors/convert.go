package errors

import (
	"context"
	stderrors "errors"

	"github.com/vango-dev/mdx/pkg/markdown"
	"github.com/vango-dev/mdx/pkg/markup"
	"github.com/vango-dev/mdx/pkg/render"
)

// FromRenderError maps an error returned by the mdx pipeline to a coded
// Error. file names the document and source is its content, used for
// context lines of compile errors. Cancellation maps to E141 even when
// it surfaces through a component, and any other error to E140.
func FromRenderError(err error, file, source string) *Error {
	if err == nil {
		return nil
	}

	var (
		cerr *markdown.CompileError
		perr *markup.ParseError
		herr *render.HandlerError
		e    *Error
	)
	switch {
	case stderrors.As(err, &e):
		return e

	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		out := New("E141").Wrap(err)
		if stderrors.As(err, &herr) {
			out.WithDetail("Interrupted while rendering <" + herr.Tag + ">.")
		}
		return out

	case stderrors.As(err, &herr):
		return New("E120").
			WithDetail("Component <" + herr.Tag + "> returned an error.").
			Wrap(err)

	case stderrors.As(err, &perr):
		// Parse positions refer to the compiled markup, not the source.
		out := New("E110").Wrap(err)
		out.Location = &Location{File: file + " (compiled)", Line: perr.Line, Column: perr.Column}
		return out

	case stderrors.As(err, &cerr):
		code := "E100"
		switch cerr.Reason {
		case markdown.ReasonUnterminatedFrontmatter:
			code = "E101"
		case markdown.ReasonInvalidFrontmatter:
			code = "E102"
		}
		out := New(code).Wrap(err)
		if cerr.Line > 0 {
			out.WithSource(file, source, cerr.Line, 0)
		} else {
			out.Location = &Location{File: file}
		}
		return out

	default:
		return New("E140").Wrap(err)
	}
}
