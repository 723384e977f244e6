// Package markdown compiles markdown with optional YAML front-matter into
// markup text.
//
// Compilation is done by goldmark with raw HTML pass-through enabled, so
// component tags written inline in a document reach the markup parser
// untouched:
//
//	c := markdown.New(markdown.WithTypographer(true))
//	fm, html, err := c.Compile("---\ntitle: Hi\n---\n# Hello\n\n<Callout/>\n")
//	// fm["title"] == "Hi"
//	// html == "<h1>Hello</h1>\n<Callout/>\n"
//
// A front-matter block starts with a line containing exactly "---" at the
// very beginning of the source and ends at the next "---" or "..." line.
// A block that is never closed, or whose YAML does not decode to a
// mapping, fails with a *CompileError.
package markdown
