// Package render walks a parsed markup forest and renders it to an HTML
// string, delegating custom component tags to a Handler.
//
// The renderer handles:
//
//   - Depth-first rendering: every child is fully rendered before its parent
//   - Routing by tag name: a tag whose first character is an ASCII
//     uppercase letter is a component, everything else is standard markup
//   - Re-serialization of standard elements with normalized attributes
//   - Void element handling (br, img, input, etc.)
//   - Optional concurrent rendering of sibling subtrees
//
// # Basic Usage
//
//	r := render.NewRenderer()
//	html, err := r.RenderNodes(ctx, nodes, render.HandlerFunc(
//	    func(ctx context.Context, name string, props render.ComponentProps) (string, error) {
//	        switch name {
//	        case "Layout":
//	            return `<div class="layout">` + props.Children + `</div>`, nil
//	        }
//	        return "", nil
//	    },
//	))
//
// # Components
//
// For each custom tag the Handler receives the tag name and
// ComponentProps holding the id, classes, remaining attributes and the
// already-rendered markup of all children. Nested components therefore
// run inner-first: the output of an inner component is part of the
// Children string passed to the outer one.
//
// A Handler error aborts the whole render. It is wrapped once in a
// *HandlerError naming the failing tag and returned unchanged by every
// enclosing element; no partial output is returned.
//
// # Standard Elements
//
// Standard elements are re-serialized rather than copied from the source:
// attributes in source order, then class, then id. Text nodes are emitted
// verbatim and comments are dropped.
package render
