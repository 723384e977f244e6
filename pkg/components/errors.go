package components

import "errors"

var (
	// ErrUnknownComponent is returned by a Strict registry for names
	// without a binding.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrInvalidName is returned when registering a name that would never
	// be classified as a component.
	ErrInvalidName = errors.New("invalid component name")
)
