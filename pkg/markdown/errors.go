package markdown

import "fmt"

// Reasons reported by CompileError.
const (
	ReasonConversion              = "markdown conversion failed"
	ReasonUnterminatedFrontmatter = "unterminated front-matter block"
	ReasonInvalidFrontmatter      = "invalid front-matter YAML"
)

// CompileError reports a source document that could not be compiled to
// markup.
type CompileError struct {
	// Line is the 1-based source line the problem was detected at,
	// or 0 when unknown.
	Line int

	// Reason describes what went wrong.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := "markdown compile error"
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
