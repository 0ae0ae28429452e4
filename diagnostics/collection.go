package diagnostics

import (
	"bytes"
	"fmt"
)

// Diagnostics represents a list of loader errors and warnings. It is used to
// accumulate diagnostics during ingestion instead of erroring out early, so a
// single pass can report every defect found in a document.
type Diagnostics struct {
	errors   []LoadError
	warnings []LoadWarning
}

// NewDiagnostics creates a new empty Diagnostics collection.
func NewDiagnostics() Diagnostics {
	return Diagnostics{
		errors:   make([]LoadError, 0),
		warnings: make([]LoadWarning, 0),
	}
}

// Warnings returns all warnings in the collection.
func (d *Diagnostics) Warnings() []LoadWarning {
	return d.warnings
}

// Errors returns all errors in the collection.
func (d *Diagnostics) Errors() []LoadError {
	return d.errors
}

// PushError adds an error to the collection.
func (d *Diagnostics) PushError(err LoadError) {
	d.errors = append(d.errors, err)
}

// PushWarning adds a warning to the collection.
func (d *Diagnostics) PushWarning(warning LoadWarning) {
	d.warnings = append(d.warnings, warning)
}

// HasErrors returns true if there is at least one error in this collection.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

// ToResult returns an error if there are errors, otherwise returns nil.
func (d *Diagnostics) ToResult() error {
	if d.HasErrors() {
		return fmt.Errorf("loading failed with %d errors", len(d.errors))
	}
	return nil
}

// ToPrettyString formats all errors as a pretty-printed string with source
// excerpts.
func (d *Diagnostics) ToPrettyString(fileName, document string) string {
	var buf bytes.Buffer
	for _, err := range d.errors {
		_ = err.PrettyPrint(&buf, fileName, document)
	}
	return buf.String()
}

// WarningsToPrettyString formats all warnings as a pretty-printed string.
func (d *Diagnostics) WarningsToPrettyString(fileName, document string) string {
	var buf bytes.Buffer
	for _, warn := range d.warnings {
		_ = warn.PrettyPrint(&buf, fileName, document)
	}
	return buf.String()
}

// FromError creates a Diagnostics from a single error.
func FromError(err LoadError) Diagnostics {
	d := NewDiagnostics()
	d.PushError(err)
	return d
}

// FromWarning creates a Diagnostics from a single warning.
func FromWarning(warning LoadWarning) Diagnostics {
	d := NewDiagnostics()
	d.PushWarning(warning)
	return d
}
