// Package database provides walkers for convenient read-only access to the
// entity graph. A walker holds a reference to the Database and one entity
// id; navigation methods hand out further walkers.
package database

// WalkDevices returns a walker for every device instance, in ingestion
// order.
func (db *Database) WalkDevices() []*DeviceWalker {
	ids := db.Entities(TagDeviceInstance)
	out := make([]*DeviceWalker, len(ids))
	for i, id := range ids {
		out[i] = &DeviceWalker{db: db, id: id}
	}
	return out
}

// WalkDevice creates a DeviceWalker for the given entity id.
func (db *Database) WalkDevice(id EntityId) *DeviceWalker {
	return &DeviceWalker{db: db, id: id}
}

// FindDevice finds a device instance by name, or nil.
func (db *Database) FindDevice(name string) *DeviceWalker {
	id, ok := db.FindByName(TagDeviceInstance, name)
	if !ok {
		return nil
	}
	return db.WalkDevice(id)
}

// WalkPeripheralTypes returns a walker for every peripheral type, in
// ingestion order.
func (db *Database) WalkPeripheralTypes() []*PeripheralTypeWalker {
	ids := db.Entities(TagPeripheralType)
	out := make([]*PeripheralTypeWalker, len(ids))
	for i, id := range ids {
		out[i] = &PeripheralTypeWalker{db: db, id: id}
	}
	return out
}

// FindPeripheralType finds a peripheral type by name, or nil.
func (db *Database) FindPeripheralType(name string) *PeripheralTypeWalker {
	id, ok := db.FindByName(TagPeripheralType, name)
	if !ok {
		return nil
	}
	return &PeripheralTypeWalker{db: db, id: id}
}

// DeviceWalker provides access to one device instance.
type DeviceWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *DeviceWalker) ID() EntityId { return w.id }

// Name returns the device name, or empty string if unnamed.
func (w *DeviceWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Architecture returns the device architecture, or empty string.
func (w *DeviceWalker) Architecture() string {
	architecture, _ := w.db.Architecture(w.id)
	return architecture
}

// Family returns the device family, or empty string.
func (w *DeviceWalker) Family() string {
	family, _ := w.db.Family(w.id)
	return family
}

// Series returns the optional device series.
func (w *DeviceWalker) Series() (string, bool) {
	return w.db.Series(w.id)
}

// Description returns the optional device description.
func (w *DeviceWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

// Peripherals returns the device's peripheral instances, in ingestion
// order.
func (w *DeviceWalker) Peripherals() []*PeripheralInstanceWalker {
	ids := w.db.Children(w.id, TagPeripheralInstance)
	out := make([]*PeripheralInstanceWalker, len(ids))
	for i, id := range ids {
		out[i] = &PeripheralInstanceWalker{db: w.db, id: id}
	}
	return out
}

// Interrupts returns the device's interrupt instances, in ingestion order.
func (w *DeviceWalker) Interrupts() []*InterruptWalker {
	ids := w.db.Children(w.id, TagInterruptInstance)
	out := make([]*InterruptWalker, len(ids))
	for i, id := range ids {
		out[i] = &InterruptWalker{db: w.db, id: id}
	}
	return out
}

// PeripheralInstanceWalker provides access to one peripheral placement
// within a device.
type PeripheralInstanceWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *PeripheralInstanceWalker) ID() EntityId { return w.id }

// Name returns the instance name, or empty string if unnamed.
func (w *PeripheralInstanceWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Description returns the optional instance description.
func (w *PeripheralInstanceWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}

// Offset returns the instance's byte offset within the device address
// space. Offset normalization may revise it after ingestion.
func (w *PeripheralInstanceWalker) Offset() uint64 {
	offset, _ := w.db.Offset(w.id)
	return offset
}

// Type returns the entity the instance links to: a peripheral type, or a
// register group type for non-inlined placements. Returns EntityNone when
// the link is missing.
func (w *PeripheralInstanceWalker) Type() EntityId {
	typ, ok := w.db.InstanceType(w.id)
	if !ok {
		return EntityNone
	}
	return typ
}

// PeripheralType returns the linked peripheral type, or nil when the
// instance links to a register group type instead.
func (w *PeripheralInstanceWalker) PeripheralType() *PeripheralTypeWalker {
	typ := w.Type()
	if typ == EntityNone || !w.db.Is(typ, TagPeripheralType) {
		return nil
	}
	return &PeripheralTypeWalker{db: w.db, id: typ}
}

// RegisterGroup returns the linked register group type, or nil when the
// instance links to an inlined peripheral type directly.
func (w *PeripheralInstanceWalker) RegisterGroup() *RegisterGroupWalker {
	typ := w.Type()
	if typ == EntityNone || !w.db.Is(typ, TagRegisterGroupType) {
		return nil
	}
	return &RegisterGroupWalker{db: w.db, id: typ}
}

// Registers resolves through the instance link and returns the registers
// this placement exposes, in ingestion order.
func (w *PeripheralInstanceWalker) Registers() []*RegisterWalker {
	typ := w.Type()
	if typ == EntityNone {
		return nil
	}
	ids := w.db.Children(typ, TagRegisterType)
	out := make([]*RegisterWalker, len(ids))
	for i, id := range ids {
		out[i] = &RegisterWalker{db: w.db, id: id}
	}
	return out
}

// InterruptWalker provides access to one interrupt instance.
type InterruptWalker struct {
	db *Database
	id EntityId
}

// ID returns the underlying entity id.
func (w *InterruptWalker) ID() EntityId { return w.id }

// Name returns the interrupt name, including any module instance prefix.
func (w *InterruptWalker) Name() string {
	name, _ := w.db.Name(w.id)
	return name
}

// Index returns the interrupt's vector index.
func (w *InterruptWalker) Index() uint64 {
	index, _ := w.db.Offset(w.id)
	return index
}

// Description returns the optional interrupt description.
func (w *InterruptWalker) Description() (string, bool) {
	return w.db.Description(w.id)
}
