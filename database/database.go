// Package database implements the entity graph that models ingested hardware
// descriptions. Entities are opaque ids; meaning comes from category tags,
// sparse per-attribute maps, relations keyed by kind, and instance-to-type
// links. The ingestion pipeline mutates the graph continuously; inference
// passes revise attributes in place afterwards; walkers expose read-only
// navigation to the code generator.
package database

// Database is a container for one hardware description graph. Each load
// step enriches the database with entities, attributes and relations that
// downstream passes and the code generator can work with.
//
// Attribute storage is sparse: every attribute lives in its own map, so an
// entity pays only for the attributes it actually has. All mutation is
// synchronous and immediate; there is no transaction log. Callers roll back
// a half-built entity with Destroy before it becomes visible to siblings.
type Database struct {
	interner *StringInterner

	nextID EntityId
	live   map[EntityId]bool

	// Category membership, insertion-ordered per tag. Lookup scans walk
	// members in registration order, so earlier entities win ties.
	tags map[Tag]*entitySet

	names         map[EntityId]StringId
	descriptions  map[EntityId]StringId
	offsets       map[EntityId]uint64
	sizes         map[EntityId]uint64
	access        map[EntityId]Access
	resetValues   map[EntityId]uint64
	values        map[EntityId]uint64
	enumRefs      map[EntityId]EntityId
	modeSets      map[EntityId][]EntityId
	architectures map[EntityId]StringId
	families      map[EntityId]StringId
	series        map[EntityId]StringId

	relations map[relationKey][]EntityId

	links  map[EntityId]EntityId
	linked map[EntityId][]EntityId
}

// NewDatabase creates an empty entity graph.
func NewDatabase() *Database {
	return &Database{
		interner:      NewStringInterner(),
		live:          make(map[EntityId]bool),
		tags:          make(map[Tag]*entitySet),
		names:         make(map[EntityId]StringId),
		descriptions:  make(map[EntityId]StringId),
		offsets:       make(map[EntityId]uint64),
		sizes:         make(map[EntityId]uint64),
		access:        make(map[EntityId]Access),
		resetValues:   make(map[EntityId]uint64),
		values:        make(map[EntityId]uint64),
		enumRefs:      make(map[EntityId]EntityId),
		modeSets:      make(map[EntityId][]EntityId),
		architectures: make(map[EntityId]StringId),
		families:      make(map[EntityId]StringId),
		series:        make(map[EntityId]StringId),
		relations:     make(map[relationKey][]EntityId),
		links:         make(map[EntityId]EntityId),
		linked:        make(map[EntityId][]EntityId),
	}
}

// CreateEntity allocates a fresh entity id. Ids are monotonic and never
// reused, so a destroyed id stays dead forever.
func (db *Database) CreateEntity() EntityId {
	db.nextID++
	id := db.nextID
	db.live[id] = true
	return id
}

// Exists reports whether id names a live entity.
func (db *Database) Exists(id EntityId) bool {
	return db.live[id]
}

// AddTag registers id as a member of the given category. Adding the same
// tag twice is a no-op.
func (db *Database) AddTag(id EntityId, tag Tag) {
	set, ok := db.tags[tag]
	if !ok {
		set = newEntitySet()
		db.tags[tag] = set
	}
	set.add(id)
}

// Is reports whether id is a member of the given category.
func (db *Database) Is(id EntityId, tag Tag) bool {
	set, ok := db.tags[tag]
	return ok && set.has(id)
}

// Entities returns the members of a category in registration order.
func (db *Database) Entities(tag Tag) []EntityId {
	set, ok := db.tags[tag]
	if !ok {
		return nil
	}
	out := make([]EntityId, len(set.members))
	copy(out, set.members)
	return out
}

// Count returns the number of entities registered under a category.
func (db *Database) Count(tag Tag) int {
	set, ok := db.tags[tag]
	if !ok {
		return 0
	}
	return len(set.members)
}

// SetName attaches the name attribute. The string is interned for the
// lifetime of the database.
func (db *Database) SetName(id EntityId, name string) {
	db.names[id] = db.interner.Intern(name)
}

// Name returns the name attribute, or false if the entity has none.
func (db *Database) Name(id EntityId) (string, bool) {
	sid, ok := db.names[id]
	if !ok {
		return "", false
	}
	return db.interner.Get(sid), true
}

// SetDescription attaches the description attribute.
func (db *Database) SetDescription(id EntityId, description string) {
	db.descriptions[id] = db.interner.Intern(description)
}

// Description returns the description attribute, or false if absent.
func (db *Database) Description(id EntityId) (string, bool) {
	sid, ok := db.descriptions[id]
	if !ok {
		return "", false
	}
	return db.interner.Get(sid), true
}

// SetOffset attaches the offset attribute: a bit offset for fields, a byte
// offset for registers, register groups and peripheral instances, and the
// vector index for interrupts.
func (db *Database) SetOffset(id EntityId, offset uint64) {
	db.offsets[id] = offset
}

// Offset returns the offset attribute, or false if absent.
func (db *Database) Offset(id EntityId) (uint64, bool) {
	v, ok := db.offsets[id]
	return v, ok
}

// SetSize attaches the size attribute, in bits.
func (db *Database) SetSize(id EntityId, size uint64) {
	db.sizes[id] = size
}

// Size returns the size attribute, or false if absent.
func (db *Database) Size(id EntityId) (uint64, bool) {
	v, ok := db.sizes[id]
	return v, ok
}

// SetAccess attaches the access attribute. The read-write default is not
// stored, so setting it is a no-op.
func (db *Database) SetAccess(id EntityId, access Access) {
	if access == AccessReadWrite {
		return
	}
	db.access[id] = access
}

// Access returns the access attribute. Absent entries read back as the
// read-write default.
func (db *Database) Access(id EntityId) Access {
	return db.access[id]
}

// SetResetValue attaches the reset value attribute.
func (db *Database) SetResetValue(id EntityId, value uint64) {
	db.resetValues[id] = value
}

// ResetValue returns the reset value attribute, or false if absent.
func (db *Database) ResetValue(id EntityId) (uint64, bool) {
	v, ok := db.resetValues[id]
	return v, ok
}

// SetValue attaches the integer value attribute carried by enum fields.
func (db *Database) SetValue(id EntityId, value uint64) {
	db.values[id] = value
}

// Value returns the integer value attribute, or false if absent.
func (db *Database) Value(id EntityId) (uint64, bool) {
	v, ok := db.values[id]
	return v, ok
}

// SetEnum attaches an enum reference to a field entity.
func (db *Database) SetEnum(field, enum EntityId) {
	db.enumRefs[field] = enum
}

// Enum returns the enum reference of a field, or false if the field
// carries none.
func (db *Database) Enum(field EntityId) (EntityId, bool) {
	v, ok := db.enumRefs[field]
	return v, ok
}

// AddMode adds a mode reference to a register or field entity. Adding the
// same mode twice is a no-op.
func (db *Database) AddMode(id, mode EntityId) {
	for _, m := range db.modeSets[id] {
		if m == mode {
			return
		}
	}
	db.modeSets[id] = append(db.modeSets[id], mode)
}

// Modes returns the mode references of an entity, in assignment order.
func (db *Database) Modes(id EntityId) []EntityId {
	modes := db.modeSets[id]
	if len(modes) == 0 {
		return nil
	}
	out := make([]EntityId, len(modes))
	copy(out, modes)
	return out
}

// SetArchitecture attaches the architecture attribute of a device.
func (db *Database) SetArchitecture(id EntityId, architecture string) {
	db.architectures[id] = db.interner.Intern(architecture)
}

// Architecture returns the architecture attribute, or false if absent.
func (db *Database) Architecture(id EntityId) (string, bool) {
	sid, ok := db.architectures[id]
	if !ok {
		return "", false
	}
	return db.interner.Get(sid), true
}

// SetFamily attaches the family attribute of a device.
func (db *Database) SetFamily(id EntityId, family string) {
	db.families[id] = db.interner.Intern(family)
}

// Family returns the family attribute, or false if absent.
func (db *Database) Family(id EntityId) (string, bool) {
	sid, ok := db.families[id]
	if !ok {
		return "", false
	}
	return db.interner.Get(sid), true
}

// SetSeries attaches the series attribute of a device.
func (db *Database) SetSeries(id EntityId, series string) {
	db.series[id] = db.interner.Intern(series)
}

// Series returns the series attribute, or false if absent.
func (db *Database) Series(id EntityId) (string, bool) {
	sid, ok := db.series[id]
	if !ok {
		return "", false
	}
	return db.interner.Get(sid), true
}

// AddChild records child under parent for the given relation kind.
// Children keep their insertion order per (parent, kind) pair.
func (db *Database) AddChild(kind Tag, parent, child EntityId) {
	key := relationKey{Parent: parent, Kind: kind}
	db.relations[key] = append(db.relations[key], child)
}

// Children returns the children of parent under the given relation kind,
// in insertion order.
func (db *Database) Children(parent EntityId, kind Tag) []EntityId {
	children := db.relations[relationKey{Parent: parent, Kind: kind}]
	if len(children) == 0 {
		return nil
	}
	out := make([]EntityId, len(children))
	copy(out, children)
	return out
}

// LinkInstance records that instance is a placement of the given type
// entity. A peripheral instance links to a peripheral type or to one of
// its register group types; a register group instance links to a register
// group type.
func (db *Database) LinkInstance(instance, typ EntityId) {
	db.links[instance] = typ
	db.linked[typ] = append(db.linked[typ], instance)
}

// InstanceType returns the type entity an instance links to, or false if
// the instance is unlinked.
func (db *Database) InstanceType(instance EntityId) (EntityId, bool) {
	v, ok := db.links[instance]
	return v, ok
}

// InstancesOf returns every instance linked to the given type entity, in
// link order.
func (db *Database) InstancesOf(typ EntityId) []EntityId {
	instances := db.linked[typ]
	if len(instances) == 0 {
		return nil
	}
	out := make([]EntityId, len(instances))
	copy(out, instances)
	return out
}

// Destroy removes id from every map, tag set and relation it participates
// in. It exists for rollback of an entity whose required attributes could
// not be obtained, before the entity is exposed to any sibling; it is not
// a general deletion facility and ids are never reallocated.
func (db *Database) Destroy(id EntityId) {
	delete(db.live, id)

	for _, set := range db.tags {
		set.remove(id)
	}

	delete(db.names, id)
	delete(db.descriptions, id)
	delete(db.offsets, id)
	delete(db.sizes, id)
	delete(db.access, id)
	delete(db.resetValues, id)
	delete(db.values, id)
	delete(db.enumRefs, id)
	delete(db.modeSets, id)
	delete(db.architectures, id)
	delete(db.families, id)
	delete(db.series, id)

	// Drop enum and mode references held by other entities.
	for field, enum := range db.enumRefs {
		if enum == id {
			delete(db.enumRefs, field)
		}
	}
	for owner, modes := range db.modeSets {
		db.modeSets[owner] = removeEntity(modes, id)
	}

	// Drop relations where id is the parent, and prune id from every
	// child list.
	for key, children := range db.relations {
		if key.Parent == id {
			delete(db.relations, key)
			continue
		}
		db.relations[key] = removeEntity(children, id)
	}

	// Drop instance links in both directions.
	if typ, ok := db.links[id]; ok {
		delete(db.links, id)
		db.linked[typ] = removeEntity(db.linked[typ], id)
	}
	if instances, ok := db.linked[id]; ok {
		for _, instance := range instances {
			delete(db.links, instance)
		}
		delete(db.linked, id)
	}
}

// removeEntity returns the slice with every occurrence of id spliced out.
func removeEntity(ids []EntityId, id EntityId) []EntityId {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// entitySet is an insertion-ordered set of entity ids.
type entitySet struct {
	members []EntityId
	index   map[EntityId]int
}

func newEntitySet() *entitySet {
	return &entitySet{index: make(map[EntityId]int)}
}

func (s *entitySet) add(id EntityId) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = len(s.members)
	s.members = append(s.members, id)
}

func (s *entitySet) has(id EntityId) bool {
	_, ok := s.index[id]
	return ok
}

func (s *entitySet) remove(id EntityId) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.members = append(s.members[:i], s.members[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.members); j++ {
		s.index[s.members[j]] = j
	}
}
