package render

// TagKind classifies an element by how it is rendered.
type TagKind uint8

const (
	TagStandard TagKind = iota // Re-serialized as markup
	TagCustom                  // Delegated to the Handler
)

// String returns the string representation of the TagKind.
func (k TagKind) String() string {
	switch k {
	case TagStandard:
		return "Standard"
	case TagCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Classify returns TagCustom when the first byte of name is an ASCII
// uppercase letter. Names starting with any other character, including
// non-ASCII uppercase letters, are standard.
func Classify(name string) TagKind {
	if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		return TagCustom
	}
	return TagStandard
}
