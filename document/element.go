package document

import (
	"github.com/satishbabariya/chipdb/diagnostics"
)

// Document represents a parsed device description file.
type Document struct {
	Path string
	Root *Element
}

// Element is a node in the document tree. All payload lives in attributes;
// children preserve document order.
type Element struct {
	Tag      string
	Attrs    []Attribute
	Children []*Element
	Line     int
	Column   int
	Span     diagnostics.Span
}

// Attribute is a key/value pair on an element, with its source location for
// diagnostics.
type Attribute struct {
	Key   string
	Value string
	Line  int
	Span  diagnostics.Span
}

// Attr returns the value of the first attribute with the given key.
func (e *Element) Attr(key string) (string, bool) {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			return e.Attrs[i].Value, true
		}
	}
	return "", false
}

// Attribute returns the first attribute with the given key, or nil.
func (e *Element) Attribute(key string) *Attribute {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			return &e.Attrs[i]
		}
	}
	return nil
}

// First returns the first direct child with the given tag, or nil.
func (e *Element) First(tag string) *Element {
	for _, child := range e.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// ChildrenByTag returns all direct children with the given tag, in document
// order.
func (e *Element) ChildrenByTag(tag string) []*Element {
	var result []*Element
	for _, child := range e.Children {
		if child.Tag == tag {
			result = append(result, child)
		}
	}
	return result
}

// Iterate returns all elements reachable from e by following the given tag
// path, in document order. Iterate("modules", "module") visits every module
// element under every modules element.
func (e *Element) Iterate(path ...string) []*Element {
	current := []*Element{e}
	for _, tag := range path {
		var next []*Element
		for _, el := range current {
			next = append(next, el.ChildrenByTag(tag)...)
		}
		current = next
	}
	if len(path) == 0 {
		return nil
	}
	return current
}

// Iterate is a convenience forwarding to the root element.
func (d *Document) Iterate(path ...string) []*Element {
	if d.Root == nil {
		return nil
	}
	return d.Root.Iterate(path...)
}

// First forwards to the root element.
func (d *Document) First(tag string) *Element {
	if d.Root == nil {
		return nil
	}
	return d.Root.First(tag)
}
