package render

import "fmt"

// HandlerError reports a component whose Handler failed.
type HandlerError struct {
	// Tag is the name of the failing component.
	Tag string

	// Err is the error returned by the Handler.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("component <%s> failed: %v", e.Tag, e.Err)
}

// Unwrap returns the Handler's error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
