package atdf

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/diagnostics"
	"github.com/satishbabariya/chipdb/internal/debug"
)

// InferPeripheralOffsets folds the shared register offset base of every
// single-instance peripheral type into the instance's own offset. Vendor
// files for such peripherals often write absolute register addresses;
// after this pass the registers are base-relative and the instance
// carries the base. Types with zero or several instances are left alone,
// the registers cannot be rebased for one instance without breaking the
// others.
func InferPeripheralOffsets(db *database.Database, diags *diagnostics.Diagnostics) {
	for _, typ := range db.Entities(database.TagPeripheralType) {
		name, _ := db.Name(typ)

		instances := db.InstancesOf(typ)
		if len(instances) != 1 {
			debug.Debug("offset normalization skipped",
				"peripheral", name, "instances", len(instances))
			continue
		}
		registers := db.Children(typ, database.TagRegisterType)
		if len(registers) == 0 {
			diags.PushWarning(diagnostics.NewInferenceSkippedWarning(
				name, "no registers to normalize", diagnostics.EmptySpan()))
			continue
		}

		min := uint64(math.MaxUint64)
		for _, register := range registers {
			if offset, ok := db.Offset(register); ok && offset < min {
				min = offset
			}
		}
		if min == 0 || min == math.MaxUint64 {
			continue
		}

		instance := instances[0]
		base, _ := db.Offset(instance)
		db.SetOffset(instance, base+min)
		for _, register := range registers {
			offset, _ := db.Offset(register)
			db.SetOffset(register, offset-min)
		}
	}
}

// InferEnumSizes gives every enum type a bit width. A width declared by a
// referencing field wins; absent one, the smallest width that holds the
// largest member value is used. Fields that disagree about the width, or
// a declared width too small for the values, are hard errors since any
// choice would misrepresent the hardware.
func InferEnumSizes(db *database.Database, diags *diagnostics.Diagnostics) {
	for _, enum := range db.Entities(database.TagEnumType) {
		name, _ := db.Name(enum)

		fields := db.Children(enum, database.TagEnumFieldType)
		if len(fields) == 0 {
			diags.PushError(diagnostics.NewStructuralError(
				fmt.Sprintf("enum %q has no fields to infer a size from", name), diagnostics.EmptySpan()))
			continue
		}
		var maxValue uint64
		for _, field := range fields {
			if value, ok := db.Value(field); ok && value > maxValue {
				maxValue = value
			}
		}

		var declared uint64
		var haveDeclared, conflict bool
		for _, field := range db.Entities(database.TagFieldType) {
			ref, ok := db.Enum(field)
			if !ok || ref != enum {
				continue
			}
			size, ok := db.Size(field)
			if !ok {
				continue
			}
			if !haveDeclared {
				declared, haveDeclared = size, true
				continue
			}
			if size != declared {
				diags.PushError(diagnostics.NewInconsistentEnumSizesError(
					name, declared, size, diagnostics.EmptySpan()))
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		if !haveDeclared {
			db.SetSize(enum, bitsFor(maxValue))
			continue
		}
		if declared < bitsFor(maxValue) {
			diags.PushError(diagnostics.NewEnumMaxValueTooBigError(
				name, maxValue, declared, diagnostics.EmptySpan()))
			continue
		}
		db.SetSize(enum, declared)
	}
}

// bitsFor returns the narrowest width that can represent v. Zero still
// occupies one bit.
func bitsFor(v uint64) uint64 {
	if v == 0 {
		return 1
	}
	return uint64(bits.Len64(v))
}
