// Package document parses vendor hardware description files into a navigable
// element tree. It implements the XML subset those files actually use:
// a prolog, nested elements, quoted attributes with entity escapes, comments
// and self-closing tags. All data lives in attributes; mixed text content is
// not part of the dialect and is rejected at parse time.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/chipdb/diagnostics"
)

// rawDocument is the raw parse tree structure that matches the grammar.
// It is converted to Document after parsing.
type rawDocument struct {
	Pos    lexer.Position
	Prolog string      `parser:"@Prolog?"`
	Root   *rawElement `parser:"@@"`
}

type rawElement struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string     `parser:"Open @Ident"`
	Attrs  []*rawAttr `parser:"@@*"`
	Inline bool       `parser:"( @SelfClose"`
	Body   *rawBody   `parser:"| Close @@ )"`
}

type rawBody struct {
	Children []*rawElement `parser:"@@*"`
	Close    *rawCloseTag  `parser:"@@"`
}

type rawCloseTag struct {
	Pos  lexer.Position
	Name string `parser:"OpenSlash @Ident Close"`
}

type rawAttr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Key    string `parser:"@Ident"`
	Value  string `parser:"Equals @String"`
}

// parser is the Participle parser instance.
var parser = participle.MustBuild[rawDocument](
	participle.Lexer(xmlLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses a device description document from an io.Reader.
func Parse(filename string, r io.Reader) (*Document, error) {
	raw, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return convertRawDocument(filename, raw)
}

// ParseString parses a device description document from a string.
func ParseString(filename, input string) (*Document, error) {
	return Parse(filename, strings.NewReader(input))
}

// MustParseString parses a device description document from a string,
// panicking on error. Intended for tests and fixtures.
func MustParseString(filename, input string) *Document {
	doc, err := ParseString(filename, input)
	if err != nil {
		panic(err)
	}
	return doc
}

// MismatchedTagError reports a closing tag that does not match the element it
// terminates.
type MismatchedTagError struct {
	Filename string
	Open     string
	Close    string
	Pos      lexer.Position
}

func (e *MismatchedTagError) Error() string {
	return fmt.Sprintf("%s:%d:%d: mismatched closing tag </%s> for element <%s>", e.Filename, e.Pos.Line, e.Pos.Column, e.Close, e.Open)
}

// convertRawDocument converts the raw parse tree to the public element tree.
func convertRawDocument(filename string, raw *rawDocument) (*Document, error) {
	root, err := convertRawElement(filename, raw.Root)
	if err != nil {
		return nil, err
	}
	return &Document{
		Path: filename,
		Root: root,
	}, nil
}

func convertRawElement(filename string, raw *rawElement) (*Element, error) {
	el := &Element{
		Tag:    raw.Name,
		Line:   raw.Pos.Line,
		Column: raw.Pos.Column,
		Span:   diagnostics.NewSpan(raw.Pos.Offset, raw.EndPos.Offset, diagnostics.FileIDZero),
	}

	for _, attr := range raw.Attrs {
		el.Attrs = append(el.Attrs, Attribute{
			Key:   attr.Key,
			Value: decodeEntities(unquote(attr.Value)),
			Line:  attr.Pos.Line,
			Span:  diagnostics.NewSpan(attr.Pos.Offset, attr.EndPos.Offset, diagnostics.FileIDZero),
		})
	}

	if raw.Body != nil {
		if raw.Body.Close.Name != raw.Name {
			return nil, &MismatchedTagError{
				Filename: filename,
				Open:     raw.Name,
				Close:    raw.Body.Close.Name,
				Pos:      raw.Body.Close.Pos,
			}
		}
		for _, child := range raw.Body.Children {
			converted, err := convertRawElement(filename, child)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, converted)
		}
	}

	return el, nil
}

// unquote strips the surrounding quotes from an attribute value token.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// decodeEntities resolves the predefined XML entities and numeric character
// references. Unknown entities pass through verbatim.
func decodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteString(s[i:])
			break
		}
		entity := s[i+1 : i+end]
		if decoded, ok := decodeEntity(entity); ok {
			b.WriteString(decoded)
		} else {
			b.WriteString(s[i : i+end+1])
		}
		i += end + 1
	}

	return b.String()
}

func decodeEntity(entity string) (string, bool) {
	switch entity {
	case "amp":
		return "&", true
	case "lt":
		return "<", true
	case "gt":
		return ">", true
	case "quot":
		return "\"", true
	case "apos":
		return "'", true
	}

	// Numeric character references: &#NN; and &#xNN;.
	if strings.HasPrefix(entity, "#") {
		digits := entity[1:]
		base := 10
		if strings.HasPrefix(digits, "x") || strings.HasPrefix(digits, "X") {
			digits = digits[1:]
			base = 16
		}
		var code rune
		for _, c := range digits {
			var d rune
			switch {
			case c >= '0' && c <= '9':
				d = c - '0'
			case base == 16 && c >= 'a' && c <= 'f':
				d = c - 'a' + 10
			case base == 16 && c >= 'A' && c <= 'F':
				d = c - 'A' + 10
			default:
				return "", false
			}
			code = code*rune(base) + d
		}
		if len(digits) == 0 {
			return "", false
		}
		return string(code), true
	}

	return "", false
}
