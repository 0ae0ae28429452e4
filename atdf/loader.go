// Package atdf ingests ATDF vendor device files into the entity graph.
// Loading is two-phased: every module type definition is ingested first,
// then every device, because device loading resolves peripheral types by
// name against the registry the first phase builds. Inference passes run
// separately, once the whole document has been ingested.
package atdf

import (
	"fmt"
	"strconv"

	goversion "github.com/hashicorp/go-version"

	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/diagnostics"
	"github.com/satishbabariya/chipdb/document"
	"github.com/satishbabariya/chipdb/internal/debug"
)

// SupportedSchemaVersion is the newest ATDF schema line this loader is
// written against. Newer documents still load, with a warning.
const SupportedSchemaVersion = "0.4"

// interruptTemplate is one captured entry of a module's interrupt group.
type interruptTemplate struct {
	name        string
	index       uint64
	description string
}

// Loader ingests documents into a Database, reporting every problem to
// the shared diagnostics collection instead of aborting. Failures stay
// local: a defective element is skipped, its siblings keep loading.
type Loader struct {
	db    *database.Database
	diags *diagnostics.Diagnostics

	// interruptGroups is the document-scoped scratch table of interrupt
	// templates, keyed purely by template name. It is rebuilt for every
	// document and never leaks into the graph.
	interruptGroups map[string][]interruptTemplate
}

// NewLoader creates a Loader writing into db and reporting into diags.
func NewLoader(db *database.Database, diags *diagnostics.Diagnostics) *Loader {
	return &Loader{db: db, diags: diags}
}

// LoadDocument ingests one parsed document: module types, then devices.
func (l *Loader) LoadDocument(doc *document.Document) {
	l.interruptGroups = make(map[string][]interruptTemplate)
	defer func() { l.interruptGroups = nil }()

	l.checkSchemaVersion(doc)

	debug.Debug("loading module types", "path", doc.Path)
	for _, module := range doc.Iterate("modules", "module") {
		if err := l.loadModuleType(module); err != nil {
			debug.Debug("module type skipped", "path", doc.Path, "error", err)
		}
	}

	debug.Debug("loading devices", "path", doc.Path)
	for _, device := range doc.Iterate("devices", "device") {
		if err := l.loadDevice(device); err != nil {
			debug.Debug("device skipped", "path", doc.Path, "error", err)
		}
	}
}

// checkSchemaVersion warns when the document's schema-version is missing,
// unparsable or newer than the supported line. It never blocks loading.
func (l *Loader) checkSchemaVersion(doc *document.Document) {
	root := doc.Root
	raw, ok := root.Attr("schema-version")
	if !ok {
		l.diags.PushWarning(diagnostics.NewLoadWarning(
			"document declares no schema-version.", root.Span))
		return
	}
	got, err := goversion.NewVersion(raw)
	if err != nil {
		l.diags.PushWarning(diagnostics.NewLoadWarning(
			fmt.Sprintf("cannot parse schema-version %q.", raw), attrSpan(root, "schema-version")))
		return
	}
	supported := goversion.Must(goversion.NewVersion(SupportedSchemaVersion))
	if got.GreaterThan(supported) {
		l.diags.PushWarning(diagnostics.NewSchemaVersionWarning(
			raw, SupportedSchemaVersion, attrSpan(root, "schema-version")))
	}
}

// skip records an element-level failure as a warning; the element is
// dropped from the graph, its siblings keep loading.
func (l *Loader) skip(el *document.Element, name string, cause diagnostics.LoadError) {
	l.diags.PushWarning(diagnostics.NewSkippedElementWarning(el.Tag, name, cause.Message(), cause.Span()))
}

// warnAttr records a value parse failure for an optional attribute. The
// attribute is dropped, the element is kept.
func (l *Loader) warnAttr(el *document.Element, key, raw string) {
	cause := diagnostics.NewValueParseError(key, raw, attrSpan(el, key))
	l.diags.PushWarning(diagnostics.NewLoadWarning(cause.Message(), cause.Span()))
}

// warnUnknownAttrs reports every attribute not on the element's
// allowlist, naming the line, the key and the element. Unknown
// attributes never block construction.
func (l *Loader) warnUnknownAttrs(el *document.Element, allowed map[string]bool) {
	name, _ := el.Attr("name")
	for _, attr := range el.Attrs {
		if !allowed[attr.Key] {
			l.diags.PushWarning(diagnostics.NewUnknownAttributeWarning(el.Tag, name, attr.Key, attr.Line, attr.Span))
		}
	}
}

// parseUint parses an integer attribute using the document's literal
// conventions: decimal, or an alternate base behind a 0x/0o/0b prefix.
func parseUint(v string) (uint64, error) {
	return strconv.ParseUint(v, 0, 64)
}

// attrSpan returns the span of one attribute for diagnostics, falling
// back to the element's span when the attribute is absent.
func attrSpan(el *document.Element, key string) diagnostics.Span {
	if attr := el.Attribute(key); attr != nil {
		return attr.Span
	}
	return el.Span
}

// Attribute allowlists per element kind. Listed keys are either modeled
// or deliberately ignored legacy attributes; anything else warns.
var (
	deviceAttrs               = allow("name", "architecture", "family", "series")
	moduleAttrs               = allow("name", "caption", "id", "version")
	registerGroupAttrs        = allow("name", "caption", "size")
	groupRefAttrs             = allow("name", "name-in-module", "offset", "address-space", "caption")
	registerAttrs             = allow("name", "size", "offset", "initval", "rw", "modes", "caption")
	bitfieldAttrs             = allow("name", "mask", "caption", "rw", "modes", "values")
	valueGroupAttrs           = allow("name", "caption")
	valueAttrs                = allow("name", "caption", "value")
	modeAttrs                 = allow("name", "caption", "qualifier", "value")
	instanceAttrs             = allow("name", "caption")
	interruptAttrs            = allow("name", "index", "module-instance", "caption")
	interruptGroupAttrs       = allow("module-instance", "name-in-module", "index")
	moduleInterruptGroupAttrs = allow("name")
	templateInterruptAttrs    = allow("name", "index", "caption")
)

func allow(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
