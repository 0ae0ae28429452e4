package codegen

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/satishbabariya/chipdb/internal/debug"
)

const fileHeader = "// Code generated by chipdb. DO NOT EDIT.\n\n"

// AST helper functions for building Go AST nodes

// newFile creates a new AST file with package declaration
func newFile(packageName string) *ast.File {
	return &ast.File{
		Name:  ast.NewIdent(packageName),
		Decls: []ast.Decl{},
	}
}

// newConstBlock creates a const declaration holding the given specs
func newConstBlock(doc string, specs []ast.Spec) *ast.GenDecl {
	decl := &ast.GenDecl{
		Tok:    token.CONST,
		Lparen: token.Pos(1),
		Specs:  specs,
	}
	if doc != "" {
		decl.Doc = &ast.CommentGroup{
			List: []*ast.Comment{
				{Text: "// " + doc},
			},
		}
	}
	return decl
}

// newValueSpec creates a single name = value spec
func newValueSpec(name string, value ast.Expr) *ast.ValueSpec {
	return &ast.ValueSpec{
		Names:  []*ast.Ident{ast.NewIdent(name)},
		Values: []ast.Expr{value},
	}
}

// newVarDecl creates a new variable declaration
func newVarDecl(name string, doc string, value ast.Expr) *ast.GenDecl {
	decl := &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{
			&ast.ValueSpec{
				Names:  []*ast.Ident{ast.NewIdent(name)},
				Values: []ast.Expr{value},
			},
		},
	}
	if doc != "" {
		decl.Doc = &ast.CommentGroup{
			List: []*ast.Comment{
				{Text: "// " + doc},
			},
		}
	}
	return decl
}

// newStructType creates a new struct type
func newStructType(fields []*ast.Field) *ast.StructType {
	return &ast.StructType{
		Fields: &ast.FieldList{
			List: fields,
		},
	}
}

// newField creates a new struct field
func newField(name string, typeName string) *ast.Field {
	return &ast.Field{
		Names: []*ast.Ident{ast.NewIdent(name)},
		Type:  ast.NewIdent(typeName),
	}
}

// newStringLit creates a string literal expression
func newStringLit(s string) *ast.BasicLit {
	return &ast.BasicLit{
		Kind:  token.STRING,
		Value: fmt.Sprintf("%q", s),
	}
}

// newHexLit creates an integer literal rendered in hexadecimal
func newHexLit(v uint64) *ast.BasicLit {
	return &ast.BasicLit{
		Kind:  token.INT,
		Value: fmt.Sprintf("%#x", v),
	}
}

// newIntLit creates an integer literal rendered in decimal
func newIntLit(v uint64) *ast.BasicLit {
	return &ast.BasicLit{
		Kind:  token.INT,
		Value: strconv.FormatUint(v, 10),
	}
}

// newCompositeLit creates a composite literal expression
func newCompositeLit(typ ast.Expr, elts []ast.Expr) *ast.CompositeLit {
	return &ast.CompositeLit{
		Type: typ,
		Elts: elts,
	}
}

// newKeyValueExpr creates a key-value expression for struct literals
func newKeyValueExpr(key string, value ast.Expr) *ast.KeyValueExpr {
	return &ast.KeyValueExpr{
		Key:   ast.NewIdent(key),
		Value: value,
	}
}

// writeASTFile formats the AST and writes it to disk, header first. Doc
// comments survive formatting only while file.Comments stays nil, so the
// header goes out as plain text ahead of the formatter.
func writeASTFile(file *ast.File, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(fileHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	debug.Debug("Formatting AST", "decl_count", len(file.Decls))
	formatStart := time.Now()
	fset := token.NewFileSet()
	if err := format.Node(f, fset, file); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	debug.Debug("AST formatted successfully", "path", filePath, "elapsed", time.Since(formatStart))

	return nil
}
