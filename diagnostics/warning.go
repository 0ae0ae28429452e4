package diagnostics

import (
	"fmt"
	"io"
)

// LoadWarning represents a non-fatal warning emitted while loading a device
// description document.
type LoadWarning struct {
	message string
	span    Span
}

// NewLoadWarning creates a new LoadWarning with the given message and span.
func NewLoadWarning(message string, span Span) LoadWarning {
	return LoadWarning{
		message: message,
		span:    span,
	}
}

// NewUnknownAttributeWarning creates a warning for an attribute that is not on
// an element's allowlist. The attribute is reported and ignored; it never
// blocks construction.
func NewUnknownAttributeWarning(element, elementName, attribute string, line int, span Span) LoadWarning {
	message := fmt.Sprintf("line %d: unknown attribute \"%s\" on <%s> \"%s\".", line, attribute, element, elementName)
	return NewLoadWarning(message, span)
}

// NewModeResolutionWarning creates a warning for a mode name that does not
// resolve against the enclosing scope's mode set.
func NewModeResolutionWarning(mode, owner string, span Span) LoadWarning {
	message := fmt.Sprintf("Mode \"%s\" referenced by \"%s\" is not defined in the enclosing scope.", mode, owner)
	return NewLoadWarning(message, span)
}

// NewUnresolvedEnumWarning creates a warning for a field whose values reference
// names no enum registered so far.
func NewUnresolvedEnumWarning(field, values string, span Span) LoadWarning {
	message := fmt.Sprintf("Field \"%s\" references value group \"%s\" which is not (yet) registered; the field is left without an enum.", field, values)
	return NewLoadWarning(message, span)
}

// NewSkippedElementWarning creates a warning for an element skipped because a
// nested construction step failed.
func NewSkippedElementWarning(element, name, reason string, span Span) LoadWarning {
	message := fmt.Sprintf("Skipped <%s> \"%s\": %s", element, name, reason)
	return NewLoadWarning(message, span)
}

// NewInferenceSkippedWarning creates a warning for an inference item that was
// left untouched.
func NewInferenceSkippedWarning(subject, reason string, span Span) LoadWarning {
	message := fmt.Sprintf("Inference skipped for \"%s\": %s", subject, reason)
	return NewLoadWarning(message, span)
}

// NewSchemaVersionWarning creates a warning for a document schema version
// outside the supported line.
func NewSchemaVersionWarning(got, supported string, span Span) LoadWarning {
	message := fmt.Sprintf("Document schema version %s is newer than the supported %s line; loading anyway.", got, supported)
	return NewLoadWarning(message, span)
}

// Message returns the warning message.
func (w LoadWarning) Message() string {
	return w.message
}

// Span returns the span of the warning.
func (w LoadWarning) Span() Span {
	return w.span
}

// PrettyPrint writes a pretty-printed representation of the warning to the writer.
func (w LoadWarning) PrettyPrint(writer io.Writer, fileName, text string) error {
	return PrettyPrint(writer, fileName, text, w.span, w.message, WarningColorer{})
}
