package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Compile Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryCompile,
		Message:  "Markdown compilation failed",
		Detail:   "The markdown source could not be converted to markup.",
	},
	"E101": {
		Category:   CategoryCompile,
		Message:    "Unterminated front-matter block",
		Detail:     "The document starts with --- but the front-matter block is never closed.",
		Suggestion: "Close the block with a line containing only ---",
	},
	"E102": {
		Category:   CategoryCompile,
		Message:    "Invalid front-matter YAML",
		Detail:     "The front-matter block is not a valid YAML mapping.",
		Suggestion: "Check indentation and quote values that contain a colon",
	},

	// ============================================
	// Parse Errors (E110-E119)
	// ============================================

	"E110": {
		Category:   CategoryParse,
		Message:    "Malformed markup",
		Detail:     "The compiled document is not a well-formed tree. Every start tag needs a matching end tag with the same case.",
		Suggestion: "Surround block components with blank lines and close them with the exact tag name, e.g. <Layout> ... </Layout>",
	},

	// ============================================
	// Component Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryComponent,
		Message:  "Component failed",
		Detail:   "A component handler returned an error.",
	},

	// ============================================
	// Config Errors (E130-E139)
	// ============================================

	"E130": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Detail:     "mdx.json contains invalid values.",
		Suggestion: "Run mdx with --config pointing at a valid file, or remove mdx.json to use defaults",
	},
	"E131": {
		Category: CategoryConfig,
		Message:  "Configuration read failed",
		Detail:   "mdx.json exists but could not be read or decoded.",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Input read failed",
		Detail:   "The input document could not be read.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Rendering interrupted",
		Detail:   "The render was cancelled or ran past its deadline before it finished.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
