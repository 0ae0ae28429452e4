package document

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// xmlLexer defines the token types for the XML subset used by vendor device
// description files. The subset is attribute-only: elements never carry mixed
// text content, so everything between tags other than whitespace is rejected
// by the grammar.
var xmlLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments and the prolog must be matched before the bare "<" rules.
	{Name: "Comment", Pattern: `<!--(?:[^-]|-[^-]|--[^>])*-->`},
	{Name: "Prolog", Pattern: `<\?(?:[^?]|\?[^>])*\?>`},

	{Name: "OpenSlash", Pattern: `</`},
	{Name: "SelfClose", Pattern: `/>`},
	{Name: "Open", Pattern: `<`},
	{Name: "Close", Pattern: `>`},
	{Name: "Equals", Pattern: `=`},

	// Attribute values, double or single quoted.
	{Name: "String", Pattern: `"[^"]*"|'[^']*'`},

	// Tag and attribute names (name, name-in-module, schema-version, ...).
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.:-]*`},

	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
