package fontkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fontkit package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fontkit: empty font data")

	// ErrUnrecognizedBuffer is returned when font data matches no known
	// container signature (TTF, OTF, TTC, WOFF, WOFF2).
	ErrUnrecognizedBuffer = errors.New("fontkit: unrecognized font buffer")

	// ErrEmptyName is returned when a face carries no usable name records.
	ErrEmptyName = errors.New("fontkit: font has no name records")

	// ErrFontUnloaded is returned when an operation needs font data but the
	// buffer has been evicted and no backing file is known.
	ErrFontUnloaded = errors.New("fontkit: font buffer unloaded and no backing path")

	// ErrMissingFamily is returned when a query key has an empty family.
	ErrMissingFamily = errors.New("fontkit: query key has no family")

	// ErrFontNotFound is returned when no registered font satisfies a key.
	ErrFontNotFound = errors.New("fontkit: no font matches key")
)

// ParseError wraps a backend failure while parsing a font buffer.
type ParseError struct {
	Backend string
	Index   int
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fontkit: %s failed to parse face %d: %v", e.Backend, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedContainerError is returned when a WOFF or WOFF2 buffer is seen
// but no decoder has been registered for it.
type UnsupportedContainerError struct {
	Kind string
}

func (e *UnsupportedContainerError) Error() string {
	return fmt.Sprintf("fontkit: no decoder registered for %s container", e.Kind)
}

// MetricsMismatchError reports a desynchronization between the character
// string of a TextMetrics and its positioned entries. Line layout refuses
// to split such metrics.
type MetricsMismatchError struct {
	Chars     int
	Positions int
}

func (e *MetricsMismatchError) Error() string {
	return fmt.Sprintf("fontkit: metrics value has %d chars but %d positions", e.Chars, e.Positions)
}
