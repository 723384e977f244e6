package markup

import "fmt"

// ParseError reports markup that is not a well-formed tree.
type ParseError struct {
	// Offset is the byte offset of the offending token in the input.
	Offset int

	// Line and Column are 1-based. Column counts bytes.
	Line   int
	Column int

	// Reason describes what went wrong.
	Reason string

	// Err is the underlying tokenizer error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("markup parse error at %d:%d: %s", e.Line, e.Column, e.Reason)
}

// Unwrap returns the underlying tokenizer error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
