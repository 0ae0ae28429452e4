// Package database provides walkers over type-side entities: peripheral
// schemas, register groups, registers, fields and modes.
package database

// PeripheralTypeWalker provides access to one peripheral type.
type PeripheralTypeWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *PeripheralTypeWalker) ID() EntityId { return w.id }

// Name returns the peripheral type name, or empty string if unnamed.
func (w *PeripheralTypeWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Description returns the optional peripheral description.
func (w *PeripheralTypeWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

// IsInlined reports whether the type carries its registers directly,
// without intermediate register group entities. A type is inlined iff it
// has zero register group children.
func (w *PeripheralTypeWalker) IsInlined() bool {
	return len(w.db.Children(w.id, TagRegisterGroupType)) == 0
}

// RegisterGroups returns the type's register groups, in ingestion order.
// Inlined types return none.
func (w *PeripheralTypeWalker) RegisterGroups() []*RegisterGroupWalker {
	ids := w.db.Children(w.id, TagRegisterGroupType)
	out := make([]*RegisterGroupWalker, len(ids))
	for i, id := range ids {
		out[i] = &RegisterGroupWalker{db: w.db, id: id}
	}
	return out
}

// Registers returns the registers attached directly to the peripheral
// type, in ingestion order. Only inlined types carry direct registers.
func (w *PeripheralTypeWalker) Registers() []*RegisterWalker {
	ids := w.db.Children(w.id, TagRegisterType)
	out := make([]*RegisterWalker, len(ids))
	for i, id := range ids {
		out[i] = &RegisterWalker{db: w.db, id: id}
	}
	return out
}

// FindRegister finds a direct register child by name, or nil.
func (w *PeripheralTypeWalker) FindRegister(name string) *RegisterWalker {
	id, ok := w.db.FindChildByName(w.id, TagRegisterType, name)
	if !ok {
		return nil
	}
	return &RegisterWalker{db: w.db, id: id}
}

// Modes returns the modes attached directly to the peripheral type.
func (w *PeripheralTypeWalker) Modes() []*ModeWalker {
	return modeWalkers(w.db, w.db.Children(w.id, TagModeType))
}

// Enums returns the enum types declared by this peripheral, in ingestion
// order.
func (w *PeripheralTypeWalker) Enums() []*EnumWalker {
	ids := w.db.Children(w.id, TagEnumType)
	out := make([]*EnumWalker, len(ids))
	for i, id := range ids {
		out[i] = &EnumWalker{db: w.db, id: id}
	}
	return out
}

// Instances returns every peripheral instance linked directly to this
// type. Instances of non-inlined types link to register group types
// instead and do not appear here.
func (w *PeripheralTypeWalker) Instances() []*PeripheralInstanceWalker {
	ids := w.db.InstancesOf(w.id)
	out := make([]*PeripheralInstanceWalker, len(ids))
	for i, id := range ids {
		out[i] = &PeripheralInstanceWalker{db: w.db, id: id}
	}
	return out
}

// RegisterGroupWalker provides access to one register group type.
type RegisterGroupWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *RegisterGroupWalker) ID() EntityId { return w.id }

// Name returns the register group name, or empty string if unnamed.
func (w *RegisterGroupWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Description returns the optional register group description.
func (w *RegisterGroupWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

// Size returns the optional register group size in bits.
func (w *RegisterGroupWalker) Size() (uint64, bool) {
	return w.db.Size(w.id)
}

// Registers returns the group's registers, in ingestion order.
func (w *RegisterGroupWalker) Registers() []*RegisterWalker {
	ids := w.db.Children(w.id, TagRegisterType)
	out := make([]*RegisterWalker, len(ids))
	for i, id := range ids {
		out[i] = &RegisterWalker{db: w.db, id: id}
	}
	return out
}

// FindRegister finds a register in this group by name, or nil.
func (w *RegisterGroupWalker) FindRegister(name string) *RegisterWalker {
	id, ok := w.db.FindChildByName(w.id, TagRegisterType, name)
	if !ok {
		return nil
	}
	return &RegisterWalker{db: w.db, id: id}
}

// Modes returns the modes declared by this register group.
func (w *RegisterGroupWalker) Modes() []*ModeWalker {
	return modeWalkers(w.db, w.db.Children(w.id, TagModeType))
}

// PeripheralType returns the peripheral type this group belongs to, or
// nil for a detached group.
func (w *RegisterGroupWalker) PeripheralType() *PeripheralTypeWalker {
	for _, typ := range w.db.Entities(TagPeripheralType) {
		for _, group := range w.db.Children(typ, TagRegisterGroupType) {
			if group == w.id {
				return &PeripheralTypeWalker{db: w.db, id: typ}
			}
		}
	}
	return nil
}

// Instances returns every peripheral instance linked to this register
// group type.
func (w *RegisterGroupWalker) Instances() []*PeripheralInstanceWalker {
	ids := w.db.InstancesOf(w.id)
	out := make([]*PeripheralInstanceWalker, len(ids))
	for i, id := range ids {
		out[i] = &PeripheralInstanceWalker{db: w.db, id: id}
	}
	return out
}

// RegisterWalker provides access to one register type.
type RegisterWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *RegisterWalker) ID() EntityId { return w.id }

// Name returns the register name, or empty string if unnamed.
func (w *RegisterWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Description returns the optional register description.
func (w *RegisterWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

// Offset returns the register's byte offset. Offset normalization may
// rebase it against the owning type after ingestion.
func (w *RegisterWalker) Offset() uint64 {
	offset, _ := w.db.Offset(w.id)
	return offset
}

// Size returns the register size in bits.
func (w *RegisterWalker) Size() uint64 {
	size, _ := w.db.Size(w.id)
	return size
}

// ResetValue returns the optional reset value.
func (w *RegisterWalker) ResetValue() (uint64, bool) {
	return w.db.ResetValue(w.id)
}

// Access returns the register's access restriction.
func (w *RegisterWalker) Access() Access {
	return w.db.Access(w.id)
}

// Fields returns the register's bitfields, in ingestion order.
func (w *RegisterWalker) Fields() []*FieldWalker {
	ids := w.db.Children(w.id, TagFieldType)
	out := make([]*FieldWalker, len(ids))
	for i, id := range ids {
		out[i] = &FieldWalker{db: w.db, id: id}
	}
	return out
}

// Modes returns the modes this register is restricted to. An empty slice
// means the register is present in every mode.
func (w *RegisterWalker) Modes() []*ModeWalker {
	return modeWalkers(w.db, w.db.Modes(w.id))
}

// FieldWalker provides access to one bitfield type.
type FieldWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *FieldWalker) ID() EntityId { return w.id }

// Name returns the field name, including any _bitN suffix synthesized
// for split fields.
func (w *FieldWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Description returns the optional field description.
func (w *FieldWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

// Offset returns the field's bit offset within its register.
func (w *FieldWalker) Offset() uint64 {
	offset, _ := w.db.Offset(w.id)
	return offset
}

// Size returns the field width in bits.
func (w *FieldWalker) Size() uint64 {
	size, _ := w.db.Size(w.id)
	return size
}

// Access returns the field's access restriction.
func (w *FieldWalker) Access() Access {
	return w.db.Access(w.id)
}

// Enum returns the enum type this field references, or nil when the
// field carries no enum link.
func (w *FieldWalker) Enum() *EnumWalker {
	enum, ok := w.db.Enum(w.id)
	if !ok {
		return nil
	}
	return &EnumWalker{db: w.db, id: enum}
}

// Modes returns the modes this field is restricted to.
func (w *FieldWalker) Modes() []*ModeWalker {
	return modeWalkers(w.db, w.db.Modes(w.id))
}

// ModeWalker provides access to one mode type.
type ModeWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *ModeWalker) ID() EntityId { return w.id }

// Name returns the mode name, or empty string if unnamed.
func (w *ModeWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Description returns the optional mode description.
func (w *ModeWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

func modeWalkers(db *Database, ids []EntityId) []*ModeWalker {
	out := make([]*ModeWalker, len(ids))
	for i, id := range ids {
		out[i] = &ModeWalker{db: db, id: id}
	}
	return out
}
