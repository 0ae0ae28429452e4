// Package database provides walkers over enum types and their fields.
package database

// WalkEnums returns a walker for every enum type in the graph, in
// ingestion order.
func (db *Database) WalkEnums() []*EnumWalker {
	ids := db.Entities(TagEnumType)
	out := make([]*EnumWalker, len(ids))
	for i, id := range ids {
		out[i] = &EnumWalker{db: db, id: id}
	}
	return out
}

// FindEnum finds an enum type by name, or nil. Resolution follows
// registration order, so an enum declared earlier shadows a later one
// with the same name.
func (db *Database) FindEnum(name string) *EnumWalker {
	id, ok := db.FindByName(TagEnumType, name)
	if !ok {
		return nil
	}
	return &EnumWalker{db: db, id: id}
}

// EnumWalker provides access to one enum type.
type EnumWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *EnumWalker) ID() EntityId { return w.id }

// Name returns the enum name, or empty string if unnamed.
func (w *EnumWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Description returns the optional enum description.
func (w *EnumWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

// Size returns the enum's bit width. Size inference sets it after
// ingestion; enums whose inference failed report false.
func (w *EnumWalker) Size() (uint64, bool) {
	return w.db.Size(w.id)
}

// Fields returns the enum's fields, in ingestion order.
func (w *EnumWalker) Fields() []*EnumFieldWalker {
	ids := w.db.Children(w.id, TagEnumFieldType)
	out := make([]*EnumFieldWalker, len(ids))
	for i, id := range ids {
		out[i] = &EnumFieldWalker{db: w.db, id: id}
	}
	return out
}

// EnumFieldWalker provides access to one enum field.
type EnumFieldWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *EnumFieldWalker) ID() EntityId { return w.id }

// Name returns the enum field name, or empty string if unnamed.
func (w *EnumFieldWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Description returns the optional enum field description.
func (w *EnumFieldWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

// Value returns the enum field's integer value.
func (w *EnumFieldWalker) Value() uint64 {
	value, _ := w.db.Value(w.id)
	return value
}
