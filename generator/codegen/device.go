package codegen

import (
	"strings"

	"github.com/satishbabariya/chipdb/database"
)

// DeviceInfo carries everything the header generator needs for one device.
type DeviceInfo struct {
	Name         string
	Architecture string
	Family       string
	Series       string
	Peripherals  []PeripheralInfo
	Interrupts   []InterruptInfo
	Enums        []EnumInfo
}

// PeripheralInfo describes one peripheral placement within a device.
type PeripheralInfo struct {
	Name      string
	TypeName  string // name of the peripheral type, empty when the link is broken
	Base      uint64 // byte offset of the instance within the address space
	Registers []RegisterInfo
}

// RegisterInfo describes one register exposed by a peripheral placement.
type RegisterInfo struct {
	Name       string
	Offset     uint64 // byte offset relative to the instance base
	Size       uint64 // width in bits
	ResetValue uint64
	HasReset   bool
	Fields     []FieldInfo
}

// FieldInfo describes one bitfield of a register.
type FieldInfo struct {
	Name   string
	Offset uint64 // bit position within the register
	Size   uint64 // width in bits
	Mask   uint64
}

// InterruptInfo describes one interrupt vector of a device.
type InterruptInfo struct {
	Name  string
	Index uint64
}

// EnumInfo describes one value group declared by a peripheral type the
// device uses.
type EnumInfo struct {
	TypeName string // owning peripheral type
	Name     string
	Values   []EnumValueInfo
}

// EnumValueInfo is one named value of an enum.
type EnumValueInfo struct {
	Name  string
	Value uint64
}

// CollectDevices flattens every device in the graph into generation info,
// in ingestion order.
func CollectDevices(db *database.Database) []DeviceInfo {
	devices := db.WalkDevices()
	out := make([]DeviceInfo, 0, len(devices))
	for _, device := range devices {
		out = append(out, collectDevice(device))
	}
	return out
}

func collectDevice(device *database.DeviceWalker) DeviceInfo {
	info := DeviceInfo{
		Name:         device.Name(),
		Architecture: device.Architecture(),
		Family:       device.Family(),
	}
	if series, ok := device.Series(); ok {
		info.Series = series
	}

	// Enums live on peripheral types; two instances of the same type must
	// not duplicate them.
	seenTypes := make(map[database.EntityId]bool)

	for _, peripheral := range device.Peripherals() {
		pi := PeripheralInfo{
			Name: peripheral.Name(),
			Base: peripheral.Offset(),
		}

		typ := peripheral.PeripheralType()
		if typ == nil {
			if group := peripheral.RegisterGroup(); group != nil {
				typ = group.PeripheralType()
			}
		}
		if typ != nil {
			pi.TypeName = typ.Name()
			if !seenTypes[typ.ID()] {
				seenTypes[typ.ID()] = true
				info.Enums = append(info.Enums, collectEnums(typ)...)
			}
		}

		for _, register := range peripheral.Registers() {
			ri := RegisterInfo{
				Name:   register.Name(),
				Offset: register.Offset(),
				Size:   register.Size(),
			}
			if reset, ok := register.ResetValue(); ok {
				ri.ResetValue = reset
				ri.HasReset = true
			}
			for _, field := range register.Fields() {
				ri.Fields = append(ri.Fields, FieldInfo{
					Name:   field.Name(),
					Offset: field.Offset(),
					Size:   field.Size(),
					Mask:   fieldMask(field.Offset(), field.Size()),
				})
			}
			pi.Registers = append(pi.Registers, ri)
		}

		info.Peripherals = append(info.Peripherals, pi)
	}

	for _, interrupt := range device.Interrupts() {
		info.Interrupts = append(info.Interrupts, InterruptInfo{
			Name:  interrupt.Name(),
			Index: interrupt.Index(),
		})
	}

	return info
}

func collectEnums(typ *database.PeripheralTypeWalker) []EnumInfo {
	var out []EnumInfo
	for _, enum := range typ.Enums() {
		info := EnumInfo{
			TypeName: typ.Name(),
			Name:     enum.Name(),
		}
		for _, value := range enum.Fields() {
			info.Values = append(info.Values, EnumValueInfo{
				Name:  value.Name(),
				Value: value.Value(),
			})
		}
		out = append(out, info)
	}
	return out
}

func fieldMask(offset, size uint64) uint64 {
	if size >= 64 {
		return ^uint64(0) << offset
	}
	return (uint64(1)<<size - 1) << offset
}

// DeviceFileName returns the output file name for a device header.
func DeviceFileName(deviceName string) string {
	return strings.ToLower(constName(deviceName)) + ".go"
}

// constName joins vendor names into a generated Go constant identifier.
// Characters Go cannot carry in an identifier become underscores, and a
// leading digit is shielded so the result stays exported.
func constName(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('_')
		}
		for _, r := range part {
			switch {
			case r >= 'a' && r <= 'z':
				b.WriteRune(r - 'a' + 'A')
			case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
				b.WriteRune(r)
			default:
				b.WriteByte('_')
			}
		}
	}
	out := b.String()
	if out == "" {
		return "X"
	}
	if out[0] >= '0' && out[0] <= '9' {
		return "D" + out
	}
	return out
}

// varName maps a device name onto an exported Go variable identifier,
// keeping the vendor casing where possible.
func varName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	out := b.String()
	switch {
	case out == "":
		return "Device"
	case out[0] >= 'a' && out[0] <= 'z':
		return string(out[0]-'a'+'A') + out[1:]
	case out[0] >= '0' && out[0] <= '9':
		return "Device" + out
	}
	return out
}
