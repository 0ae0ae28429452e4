// Package database provides referential integrity checks over the graph.
package database

import (
	"errors"
	"fmt"
	"sort"
)

// CheckIntegrity sweeps the whole graph and returns one error per
// referential integrity violation. A healthy graph returns nil. The sweep
// checks structure only; it does not repair optional attributes left
// unset by failed inference.
func (db *Database) CheckIntegrity() []error {
	var violations []error

	report := func(format string, args ...interface{}) {
		violations = append(violations, fmt.Errorf(format, args...))
	}

	// Relation endpoints must be live.
	for _, key := range db.sortedRelationKeys() {
		if !db.live[key.Parent] {
			report("relation %q: parent entity %d does not exist", key.Kind, key.Parent)
		}
		for _, child := range db.relations[key] {
			if !db.live[child] {
				report("relation %q of entity %d: child entity %d does not exist", key.Kind, key.Parent, child)
			}
		}
	}

	// Instance links must connect live entities, and the target must be a
	// type the instance's category may link to.
	for id := EntityId(1); id <= db.nextID; id++ {
		typ, ok := db.links[id]
		if !ok {
			continue
		}
		if !db.live[id] {
			report("instance link: instance entity %d does not exist", id)
			continue
		}
		if !db.live[typ] {
			report("instance link of entity %d: type entity %d does not exist", id, typ)
			continue
		}
		switch {
		case db.Is(id, TagPeripheralInstance):
			if !db.Is(typ, TagPeripheralType) && !db.Is(typ, TagRegisterGroupType) {
				report("peripheral instance %d links to entity %d, which is neither a peripheral type nor a register group type", id, typ)
			}
		case db.Is(id, TagRegisterGroupInstance):
			if !db.Is(typ, TagRegisterGroupType) {
				report("register group instance %d links to entity %d, which is not a register group type", id, typ)
			}
		}
	}

	// Every attribute entry must belong to a live entity.
	for _, id := range db.orphanedAttributeOwners() {
		report("entity %d does not exist but still carries attributes", id)
	}

	for id := EntityId(1); id <= db.nextID; id++ {
		if !db.live[id] {
			continue
		}

		// At most one kind tag per entity, and kind-tagged entities
		// must be nameable.
		var kinds []Tag
		for _, tag := range kindTags {
			if db.Is(id, tag) {
				kinds = append(kinds, tag)
			}
		}
		if len(kinds) > 1 {
			report("entity %d belongs to %d categories: %v", id, len(kinds), kinds)
		}
		if len(kinds) == 1 {
			if _, ok := db.names[id]; !ok {
				report("%s entity %d has no name", kinds[0], id)
			}
		}

		// Registers, fields and modes hang off exactly one structural
		// parent.
		if db.Is(id, TagRegisterType) || db.Is(id, TagFieldType) || db.Is(id, TagModeType) {
			if n := db.parentCount(id); n != 1 {
				report("entity %d (%s) has %d structural parents, want 1", id, db.kindOf(id), n)
			}
		}

		// Enum references must point at live enum types.
		if enum, ok := db.enumRefs[id]; ok {
			if !db.live[enum] || !db.Is(enum, TagEnumType) {
				report("field entity %d references enum entity %d, which is not a live enum type", id, enum)
			}
		}

		// Mode references must point at live mode types.
		for _, mode := range db.modeSets[id] {
			if !db.live[mode] || !db.Is(mode, TagModeType) {
				report("entity %d references mode entity %d, which is not a live mode type", id, mode)
			}
		}
	}

	return violations
}

// AssertValid reports the first-found referential integrity violations as
// a single error, or nil when the graph is intact.
func (db *Database) AssertValid() error {
	return errors.Join(db.CheckIntegrity()...)
}

// parentCount counts how many relation lists, of any kind, contain id as
// a child.
func (db *Database) parentCount(id EntityId) int {
	n := 0
	for _, children := range db.relations {
		for _, child := range children {
			if child == id {
				n++
			}
		}
	}
	return n
}

// kindOf returns the first kind tag an entity belongs to, for messages.
func (db *Database) kindOf(id EntityId) Tag {
	for _, tag := range kindTags {
		if db.Is(id, tag) {
			return tag
		}
	}
	return "untagged"
}

// orphanedAttributeOwners collects dead entity ids that still own entries
// in any attribute map, in ascending id order.
func (db *Database) orphanedAttributeOwners() []EntityId {
	seen := make(map[EntityId]bool)
	collect := func(id EntityId) {
		if !db.live[id] {
			seen[id] = true
		}
	}
	for id := range db.names {
		collect(id)
	}
	for id := range db.descriptions {
		collect(id)
	}
	for id := range db.offsets {
		collect(id)
	}
	for id := range db.sizes {
		collect(id)
	}
	for id := range db.access {
		collect(id)
	}
	for id := range db.resetValues {
		collect(id)
	}
	for id := range db.values {
		collect(id)
	}
	for id := range db.enumRefs {
		collect(id)
	}
	for id := range db.modeSets {
		collect(id)
	}
	for id := range db.architectures {
		collect(id)
	}
	for id := range db.families {
		collect(id)
	}
	for id := range db.series {
		collect(id)
	}

	out := make([]EntityId, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// sortedRelationKeys returns every relation key ordered by parent id then
// kind, so integrity reports come out stable.
func (db *Database) sortedRelationKeys() []relationKey {
	keys := make([]relationKey, 0, len(db.relations))
	for key := range db.relations {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Parent != keys[j].Parent {
			return keys[i].Parent < keys[j].Parent
		}
		return keys[i].Kind < keys[j].Kind
	})
	return keys
}
