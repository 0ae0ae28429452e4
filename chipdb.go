// Package chipdb provides the main API for ingesting vendor hardware
// description files into an entity graph.
//
// The pipeline is: parse the document, load module types, load devices,
// run the inference passes, validate referential integrity. Diagnostics
// accumulate across all stages; errors abort only the entity being built,
// never the whole document.
package chipdb

import (
	"io"
	"strings"

	"github.com/satishbabariya/chipdb/atdf"
	"github.com/satishbabariya/chipdb/core"
	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/diagnostics"
	"github.com/satishbabariya/chipdb/document"
	"github.com/satishbabariya/chipdb/validation"
)

// Re-export key types for convenience
type (
	SourceFile  = core.SourceFile
	Database    = database.Database
	Diagnostics = diagnostics.Diagnostics
	Document    = document.Document
)

// SupportedSchemaVersion is the newest document schema line the loader
// fully understands.
const SupportedSchemaVersion = atdf.SupportedSchemaVersion

// Load runs the full pipeline over one document read from r. The returned
// database holds everything that survived loading; the diagnostics hold
// everything that did not.
func Load(path string, r io.Reader) (*database.Database, diagnostics.Diagnostics) {
	db := database.NewDatabase()
	diags := diagnostics.NewDiagnostics()

	doc, err := document.Parse(path, r)
	if err != nil {
		diags.PushError(diagnostics.NewParserError(err.Error(), diagnostics.EmptySpan()))
		return db, diags
	}

	LoadDocument(db, &diags, doc)
	return db, diags
}

// LoadString runs the full pipeline over a document given as a string.
func LoadString(path, input string) (*database.Database, diagnostics.Diagnostics) {
	return Load(path, strings.NewReader(input))
}

// LoadSourceFile runs the full pipeline over an in-memory source file.
func LoadSourceFile(file core.SourceFile) (*database.Database, diagnostics.Diagnostics) {
	return LoadString(file.Path, file.Data)
}

// LoadDocument runs ingestion, inference and validation over an already
// parsed document, writing into db.
func LoadDocument(db *database.Database, diags *diagnostics.Diagnostics, doc *document.Document) {
	atdf.NewLoader(db, diags).LoadDocument(doc)
	atdf.InferPeripheralOffsets(db, diags)
	atdf.InferEnumSizes(db, diags)
	validation.Validate(db, diags)
}

// NewSourceFile creates a new source file.
func NewSourceFile(path, data string) core.SourceFile {
	return core.NewSourceFile(path, data)
}
