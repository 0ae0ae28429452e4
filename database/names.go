// Package database provides name resolution within entity categories.
package database

// FindByName resolves a name within one category. Resolution is an
// exact-name scan over the category's members in registration order, so
// when two members share a name the earlier registration wins. Name
// uniqueness is a per-category convention of the input, not something the
// store enforces; the same name may independently resolve in two
// different categories.
func (db *Database) FindByName(tag Tag, name string) (EntityId, bool) {
	nameID, ok := db.interner.Lookup(name)
	if !ok {
		return EntityNone, false
	}
	set, ok := db.tags[tag]
	if !ok {
		return EntityNone, false
	}
	for _, id := range set.members {
		if sid, ok := db.names[id]; ok && sid == nameID {
			return id, true
		}
	}
	return EntityNone, false
}

// FindChildByName resolves a name among the children of parent under one
// relation kind, in insertion order.
func (db *Database) FindChildByName(parent EntityId, kind Tag, name string) (EntityId, bool) {
	nameID, ok := db.interner.Lookup(name)
	if !ok {
		return EntityNone, false
	}
	for _, child := range db.relations[relationKey{Parent: parent, Kind: kind}] {
		if sid, ok := db.names[child]; ok && sid == nameID {
			return child, true
		}
	}
	return EntityNone, false
}
