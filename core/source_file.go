// Package core provides core types shared by the document parser and loaders.
package core

// SourceFile represents a source document with its content.
type SourceFile struct {
	Path string
	Data string
}

// NewSourceFile creates a new SourceFile.
func NewSourceFile(path, data string) SourceFile {
	return SourceFile{
		Path: path,
		Data: data,
	}
}
