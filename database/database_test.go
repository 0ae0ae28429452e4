package database

import (
	"testing"
)

func TestCreateEntityMonotonic(t *testing.T) {
	db := NewDatabase()

	first := db.CreateEntity()
	second := db.CreateEntity()
	if first == EntityNone {
		t.Fatal("Expected ids to start above EntityNone")
	}
	if second <= first {
		t.Errorf("Expected monotonic ids, got %d then %d", first, second)
	}

	db.Destroy(second)
	third := db.CreateEntity()
	if third <= second {
		t.Errorf("Expected destroyed id %d to never be reused, got %d", second, third)
	}
	if db.Exists(second) {
		t.Error("Expected destroyed entity to not exist")
	}
	if !db.Exists(third) {
		t.Error("Expected new entity to exist")
	}
}

func TestTagMembership(t *testing.T) {
	db := NewDatabase()

	a := db.CreateEntity()
	b := db.CreateEntity()
	db.AddTag(a, TagRegisterType)
	db.AddTag(b, TagRegisterType)
	db.AddTag(b, TagRegisterType) // duplicate add is a no-op

	if !db.Is(a, TagRegisterType) || !db.Is(b, TagRegisterType) {
		t.Error("Expected both entities to be registers")
	}
	if db.Is(a, TagFieldType) {
		t.Error("Expected entity to not be a field")
	}
	if db.Count(TagRegisterType) != 2 {
		t.Errorf("Expected 2 registers, got %d", db.Count(TagRegisterType))
	}

	members := db.Entities(TagRegisterType)
	if len(members) != 2 || members[0] != a || members[1] != b {
		t.Errorf("Expected registration order [%d %d], got %v", a, b, members)
	}
}

func TestSparseAttributes(t *testing.T) {
	db := NewDatabase()
	id := db.CreateEntity()

	if _, ok := db.Name(id); ok {
		t.Error("Expected no name before SetName")
	}
	db.SetName(id, "CTRLA")
	if name, ok := db.Name(id); !ok || name != "CTRLA" {
		t.Errorf("Expected name CTRLA, got %q (ok=%v)", name, ok)
	}

	db.SetDescription(id, "Control A")
	if desc, ok := db.Description(id); !ok || desc != "Control A" {
		t.Errorf("Expected description, got %q (ok=%v)", desc, ok)
	}

	db.SetOffset(id, 0x04)
	db.SetSize(id, 8)
	db.SetResetValue(id, 0xff)
	if offset, ok := db.Offset(id); !ok || offset != 0x04 {
		t.Errorf("Expected offset 0x04, got %#x (ok=%v)", offset, ok)
	}
	if size, ok := db.Size(id); !ok || size != 8 {
		t.Errorf("Expected size 8, got %d (ok=%v)", size, ok)
	}
	if reset, ok := db.ResetValue(id); !ok || reset != 0xff {
		t.Errorf("Expected reset value 0xff, got %#x (ok=%v)", reset, ok)
	}

	other := db.CreateEntity()
	if _, ok := db.Offset(other); ok {
		t.Error("Expected attribute maps to stay sparse across entities")
	}
}

func TestAccessDefaultIsNotStored(t *testing.T) {
	db := NewDatabase()
	id := db.CreateEntity()

	if db.Access(id) != AccessReadWrite {
		t.Error("Expected read-write default for an untouched entity")
	}

	db.SetAccess(id, AccessReadWrite)
	if len(db.access) != 0 {
		t.Error("Expected read-write default to not occupy a map slot")
	}

	db.SetAccess(id, AccessReadOnly)
	if db.Access(id) != AccessReadOnly {
		t.Error("Expected read-only after SetAccess")
	}
}

func TestAccessString(t *testing.T) {
	tests := []struct {
		access Access
		want   string
	}{
		{AccessReadWrite, "read-write"},
		{AccessReadOnly, "read-only"},
		{AccessWriteOnly, "write-only"},
	}
	for _, tt := range tests {
		if got := tt.access.String(); got != tt.want {
			t.Errorf("Access(%d).String() = %q, want %q", tt.access, got, tt.want)
		}
	}
}

func TestRelations(t *testing.T) {
	db := NewDatabase()

	parent := db.CreateEntity()
	r1 := db.CreateEntity()
	r2 := db.CreateEntity()
	m1 := db.CreateEntity()

	db.AddChild(TagRegisterType, parent, r1)
	db.AddChild(TagRegisterType, parent, r2)
	db.AddChild(TagModeType, parent, m1)

	registers := db.Children(parent, TagRegisterType)
	if len(registers) != 2 || registers[0] != r1 || registers[1] != r2 {
		t.Errorf("Expected register children [%d %d], got %v", r1, r2, registers)
	}
	modes := db.Children(parent, TagModeType)
	if len(modes) != 1 || modes[0] != m1 {
		t.Errorf("Expected mode children [%d], got %v", m1, modes)
	}
	if got := db.Children(parent, TagEnumType); got != nil {
		t.Errorf("Expected no enum children, got %v", got)
	}
}

func TestInstanceLinks(t *testing.T) {
	db := NewDatabase()

	typ := db.CreateEntity()
	inst1 := db.CreateEntity()
	inst2 := db.CreateEntity()

	db.LinkInstance(inst1, typ)
	db.LinkInstance(inst2, typ)

	if got, ok := db.InstanceType(inst1); !ok || got != typ {
		t.Errorf("Expected instance type %d, got %d (ok=%v)", typ, got, ok)
	}
	instances := db.InstancesOf(typ)
	if len(instances) != 2 || instances[0] != inst1 || instances[1] != inst2 {
		t.Errorf("Expected instances [%d %d], got %v", inst1, inst2, instances)
	}
	if _, ok := db.InstanceType(typ); ok {
		t.Error("Expected the type entity itself to be unlinked")
	}
}

func TestModeSet(t *testing.T) {
	db := NewDatabase()

	reg := db.CreateEntity()
	modeA := db.CreateEntity()
	modeB := db.CreateEntity()

	db.AddMode(reg, modeA)
	db.AddMode(reg, modeB)
	db.AddMode(reg, modeA) // duplicate

	modes := db.Modes(reg)
	if len(modes) != 2 || modes[0] != modeA || modes[1] != modeB {
		t.Errorf("Expected modes [%d %d], got %v", modeA, modeB, modes)
	}
}

func TestFindByNameCategoryScoping(t *testing.T) {
	db := NewDatabase()

	// The same name registered in two categories resolves independently.
	typ := db.CreateEntity()
	db.AddTag(typ, TagPeripheralType)
	db.SetName(typ, "PORT")

	inst := db.CreateEntity()
	db.AddTag(inst, TagPeripheralInstance)
	db.SetName(inst, "PORT")

	if got, ok := db.FindByName(TagPeripheralType, "PORT"); !ok || got != typ {
		t.Errorf("Expected type %d, got %d (ok=%v)", typ, got, ok)
	}
	if got, ok := db.FindByName(TagPeripheralInstance, "PORT"); !ok || got != inst {
		t.Errorf("Expected instance %d, got %d (ok=%v)", inst, got, ok)
	}
	if _, ok := db.FindByName(TagEnumType, "PORT"); ok {
		t.Error("Expected no match in an unrelated category")
	}
	if _, ok := db.FindByName(TagPeripheralType, "TWI"); ok {
		t.Error("Expected no match for a never-assigned name")
	}
}

func TestFindByNameRegistrationOrderWins(t *testing.T) {
	db := NewDatabase()

	first := db.CreateEntity()
	db.AddTag(first, TagEnumType)
	db.SetName(first, "PRESCALER")

	second := db.CreateEntity()
	db.AddTag(second, TagEnumType)
	db.SetName(second, "PRESCALER")

	if got, ok := db.FindByName(TagEnumType, "PRESCALER"); !ok || got != first {
		t.Errorf("Expected the earlier registration %d to win, got %d", first, got)
	}
}

func TestFindChildByName(t *testing.T) {
	db := NewDatabase()

	parent := db.CreateEntity()
	group := db.CreateEntity()
	db.SetName(group, "TIMERS")
	db.AddChild(TagRegisterGroupType, parent, group)

	if got, ok := db.FindChildByName(parent, TagRegisterGroupType, "TIMERS"); !ok || got != group {
		t.Errorf("Expected child %d, got %d (ok=%v)", group, got, ok)
	}
	if _, ok := db.FindChildByName(parent, TagRegisterGroupType, "MISSING"); ok {
		t.Error("Expected no match for unknown child name")
	}
	if _, ok := db.FindChildByName(parent, TagRegisterType, "TIMERS"); ok {
		t.Error("Expected no match under a different relation kind")
	}
}

func TestDestroyRemovesEverything(t *testing.T) {
	db := NewDatabase()

	parent := db.CreateEntity()
	db.AddTag(parent, TagRegisterType)
	db.SetName(parent, "CTRL")

	victim := db.CreateEntity()
	db.AddTag(victim, TagFieldType)
	db.SetName(victim, "EN")
	db.SetOffset(victim, 0)
	db.SetSize(victim, 1)
	db.SetAccess(victim, AccessReadOnly)
	db.AddChild(TagFieldType, parent, victim)

	enum := db.CreateEntity()
	db.SetEnum(victim, enum)

	mode := db.CreateEntity()
	db.AddMode(victim, mode)

	db.Destroy(victim)

	if db.Exists(victim) {
		t.Fatal("Expected destroyed entity to not exist")
	}
	if db.Is(victim, TagFieldType) {
		t.Error("Expected tag membership to be removed")
	}
	if _, ok := db.Name(victim); ok {
		t.Error("Expected name to be removed")
	}
	if _, ok := db.Offset(victim); ok {
		t.Error("Expected offset to be removed")
	}
	if _, ok := db.Size(victim); ok {
		t.Error("Expected size to be removed")
	}
	if db.Access(victim) != AccessReadWrite {
		t.Error("Expected access to revert to the default")
	}
	if _, ok := db.Enum(victim); ok {
		t.Error("Expected enum reference to be removed")
	}
	if got := db.Modes(victim); got != nil {
		t.Errorf("Expected mode set to be removed, got %v", got)
	}
	if children := db.Children(parent, TagFieldType); len(children) != 0 {
		t.Errorf("Expected child relation to be pruned, got %v", children)
	}
}

func TestDestroyPrunesReferencesFromOthers(t *testing.T) {
	db := NewDatabase()

	enum := db.CreateEntity()
	field := db.CreateEntity()
	db.SetEnum(field, enum)

	mode := db.CreateEntity()
	reg := db.CreateEntity()
	db.AddMode(reg, mode)

	typ := db.CreateEntity()
	inst := db.CreateEntity()
	db.LinkInstance(inst, typ)

	db.Destroy(enum)
	if _, ok := db.Enum(field); ok {
		t.Error("Expected enum reference from a field to be dropped")
	}

	db.Destroy(mode)
	if got := db.Modes(reg); len(got) != 0 {
		t.Errorf("Expected mode reference from a register to be dropped, got %v", got)
	}

	db.Destroy(typ)
	if _, ok := db.InstanceType(inst); ok {
		t.Error("Expected instance link to a destroyed type to be dropped")
	}
}
