package markup

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <Layout>, etc.
	KindText                    // Verbatim text span
	KindComment                 // <!-- ... -->
	KindDoctype                 // <!DOCTYPE ...>
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindDoctype:
		return "Doctype"
	default:
		return "Unknown"
	}
}

// Node is a parsed markup node.
type Node struct {
	Kind     NodeKind
	Name     string   // Element tag name, case preserved
	ID       *string  // Lifted from the id attribute
	Classes  []string // Lifted from the class attribute, source order
	Attrs    []Attr   // Remaining attributes, source order, unique keys
	Children []*Node
	Text     string // For KindText (verbatim), KindComment and KindDoctype
}

// Attr is a single element attribute. A nil Val is a boolean attribute.
type Attr struct {
	Key string
	Val *string
}

// Attr returns the value of the attribute with the given key.
// The boolean result reports whether the attribute is present at all.
func (n *Node) Attr(key string) (*string, bool) {
	if n == nil {
		return nil, false
	}
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return nil, false
}

// Attributes returns the attributes as a map. The map and its values are
// copies, so callers may keep or modify them.
func (n *Node) Attributes() map[string]*string {
	m := make(map[string]*string, len(n.Attrs))
	for _, a := range n.Attrs {
		if a.Val == nil {
			m[a.Key] = nil
			continue
		}
		m[a.Key] = StrPtr(*a.Val)
	}
	return m
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == KindElement
}

// Element creates an element node with the given children.
func Element(name string, children ...*Node) *Node {
	return &Node{Kind: KindElement, Name: name, Children: children}
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Comment creates a comment node.
func Comment(s string) *Node {
	return &Node{Kind: KindComment, Text: s}
}

// StrPtr returns a pointer to s. Handy for building ID and Attr values.
func StrPtr(s string) *string {
	return &s
}
