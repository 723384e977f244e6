// Package errors provides structured, actionable error messages for the
// mdx command line.
//
// Pipeline errors from the mdx packages are plain typed errors. This
// package maps them to coded errors that:
//   - Show the source location (file, line, column)
//   - Explain what went wrong in plain language
//   - Suggest how to fix the document
//
// # Error Categories
//
//   - compile: the markdown source or its front-matter is invalid
//   - parse: the compiled markup is not a well-formed tree
//   - component: a component handler failed
//   - config: mdx.json could not be read or is invalid
//   - cli: command line input problems
//
// # Usage
//
//	if _, err := engine.Render(ctx, source, h); err != nil {
//	    e := errors.FromRenderError(err, "docs/intro.md", source)
//	    fmt.Fprint(os.Stderr, e.Format())
//	}
//
//	// ERROR E101: Unterminated front-matter block
//	//
//	//   docs/intro.md:1
//	//
//	//   → 1 │ ---
//	//     2 │ title: Intro
//	//
//	//   Hint: Close the block with a line containing only ---
package errors
