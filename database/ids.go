// Package database provides entity identifiers and category tags for the graph.
package database

// EntityId identifies one entity in the graph. Ids are allocated
// monotonically, starting at 1, and are never reused even after Destroy.
type EntityId uint32

// EntityNone is the zero EntityId. It never names a live entity.
const EntityNone EntityId = 0

// Tag marks an entity as a member of one category. An entity carries
// exactly one kind tag in practice, though the store does not enforce
// exclusivity at mutation time; AssertValid reports violations.
type Tag string

// Type-side categories describe reusable schemas shared by instances.
const (
	TagPeripheralType    Tag = "type.peripheral"
	TagRegisterGroupType Tag = "type.register_group"
	TagRegisterType      Tag = "type.register"
	TagFieldType         Tag = "type.field"
	TagEnumType          Tag = "type.enum"
	TagEnumFieldType     Tag = "type.enum_field"
	TagModeType          Tag = "type.mode"
)

// Instance-side categories describe placements within one device.
const (
	TagDeviceInstance        Tag = "instance.device"
	TagPeripheralInstance    Tag = "instance.peripheral"
	TagRegisterGroupInstance Tag = "instance.register_group"
	TagInterruptInstance     Tag = "instance.interrupt"
)

// kindTags lists every category tag, in a stable order used by
// integrity sweeps.
var kindTags = []Tag{
	TagPeripheralType,
	TagRegisterGroupType,
	TagRegisterType,
	TagFieldType,
	TagEnumType,
	TagEnumFieldType,
	TagModeType,
	TagDeviceInstance,
	TagPeripheralInstance,
	TagRegisterGroupInstance,
	TagInterruptInstance,
}

// KindTags returns every category tag, in the stable sweep order.
func KindTags() []Tag {
	out := make([]Tag, len(kindTags))
	copy(out, kindTags)
	return out
}

// relationKey addresses one parent's children of one relation kind.
// Multiple kinds may exist between the same parent and disjoint child sets.
type relationKey struct {
	Parent EntityId
	Kind   Tag
}
