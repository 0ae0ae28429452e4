package diagnostics

import (
	"fmt"
	"io"
)

// LoadError represents a parser or loader error for a device description
// document. Errors abort only the entity being constructed, never the whole
// document; they are collected rather than returned so that ingestion can
// produce as complete a graph as possible.
type LoadError struct {
	span    Span
	message string
}

// NewLoadError creates a new LoadError with the given message and span.
func NewLoadError(message string, span Span) LoadError {
	return LoadError{
		message: message,
		span:    span,
	}
}

// NewMissingAttributeError creates an error for a required attribute that is
// absent from an element.
func NewMissingAttributeError(element, attribute string, span Span) LoadError {
	return NewLoadError(fmt.Sprintf("Element <%s> is missing the required attribute \"%s\".", element, attribute), span)
}

// NewValueParseError creates an error for a malformed numeric literal.
func NewValueParseError(attribute, rawValue string, span Span) LoadError {
	return NewLoadError(fmt.Sprintf("\"%s\" is not a valid value for %s.", rawValue, attribute), span)
}

// NewLookupError creates an error for a name reference that does not resolve.
func NewLookupError(kind, name string, span Span) LoadError {
	return NewLoadError(fmt.Sprintf("No %s named \"%s\" is registered.", kind, name), span)
}

// NewStructuralError creates an error for a structurally impossible
// construction, such as an instance without a register group reference.
func NewStructuralError(message string, span Span) LoadError {
	return NewLoadError(message, span)
}

// NewInconsistentEnumSizesError creates an error for an enum referenced by
// fields of differing bit widths.
func NewInconsistentEnumSizesError(enumName string, sizeA, sizeB uint64, span Span) LoadError {
	return NewLoadError(fmt.Sprintf("Enum \"%s\" is referenced by fields of inconsistent sizes %d and %d.", enumName, sizeA, sizeB), span)
}

// NewEnumMaxValueTooBigError creates an error for an enum whose maximum value
// does not fit the declared size of its referencing fields.
func NewEnumMaxValueTooBigError(enumName string, maxValue, size uint64, span Span) LoadError {
	return NewLoadError(fmt.Sprintf("Enum \"%s\" has maximum value %d which does not fit in %d bits.", enumName, maxValue, size), span)
}

// NewValidationError creates an error for a graph integrity violation.
func NewValidationError(message string, span Span) LoadError {
	return NewLoadError(message, span)
}

// NewParserError creates an error for a document that could not be parsed.
func NewParserError(message string, span Span) LoadError {
	return NewLoadError(fmt.Sprintf("Document parse failed: %s", message), span)
}

// Message returns the error message.
func (e LoadError) Message() string {
	return e.message
}

// Span returns the span of the error.
func (e LoadError) Span() Span {
	return e.span
}

// Error implements the error interface.
func (e LoadError) Error() string {
	return e.message
}

// PrettyPrint writes a pretty-printed representation of the error to the writer.
func (e LoadError) PrettyPrint(writer io.Writer, fileName, text string) error {
	return PrettyPrint(writer, fileName, text, e.span, e.message, ErrorColorer{})
}
