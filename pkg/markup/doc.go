// Package markup parses HTML-like markup into a forest of nodes.
//
// Unlike a browser-grade HTML parser, markup preserves the case of tag
// and attribute names so that custom component tags such as <Layout> or
// <CustomTitle> survive parsing unchanged. It is strict about structure:
// every non-void element must be closed by an end tag with the exact
// same name, otherwise Parse returns a *ParseError.
//
// # Node Model
//
// Parse returns the top-level siblings of the document:
//
//	nodes, err := markup.Parse(`<div class="a b" id="z"><Badge tone="info"/></div>`)
//	el := nodes[0]
//	el.Name      // "div"
//	el.Classes   // []string{"a", "b"}
//	*el.ID       // "z"
//	el.Children  // [<Badge>]
//
// The class and id attributes are lifted out of Attrs into Classes and ID.
// Remaining attributes keep their source order. An attribute with no value
// is a boolean attribute and has a nil Val.
//
// Text nodes keep the verbatim source span: character references are not
// decoded, so re-emitting a text node reproduces the input exactly.
package markup
