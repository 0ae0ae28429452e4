// Package codegen renders register map headers from collected device
// info using the go/ast and go/format machinery.
package codegen

import (
	"fmt"
	"go/ast"
	"path/filepath"

	"github.com/satishbabariya/chipdb/internal/debug"
)

// GeneratedPackage is the package clause carried by every generated
// header file.
const GeneratedPackage = "chip"

// GenerateDeviceFile renders one device header into outputDir. The file
// carries a descriptor variable for the device plus constant blocks for
// peripheral bases, register addresses, reset values, field masks and
// enum values.
func GenerateDeviceFile(device DeviceInfo, outputDir string) error {
	file := newFile(GeneratedPackage)

	file.Decls = append(file.Decls, deviceDescriptor(device))

	for _, peripheral := range device.Peripherals {
		file.Decls = append(file.Decls, peripheralConsts(device, peripheral))
	}

	if len(device.Interrupts) > 0 {
		file.Decls = append(file.Decls, interruptConsts(device))
	}

	for _, enum := range device.Enums {
		if decl := enumConsts(device, enum); decl != nil {
			file.Decls = append(file.Decls, decl)
		}
	}

	path := filepath.Join(outputDir, DeviceFileName(device.Name))
	debug.Debug("Writing device header", "device", device.Name, "path", path)
	return writeASTFile(file, path)
}

// deviceDescriptor builds the exported variable identifying the device.
func deviceDescriptor(device DeviceInfo) ast.Decl {
	structType := newStructType([]*ast.Field{
		newField("Name", "string"),
		newField("Architecture", "string"),
		newField("Family", "string"),
		newField("Series", "string"),
	})
	value := newCompositeLit(structType, []ast.Expr{
		newKeyValueExpr("Name", newStringLit(device.Name)),
		newKeyValueExpr("Architecture", newStringLit(device.Architecture)),
		newKeyValueExpr("Family", newStringLit(device.Family)),
		newKeyValueExpr("Series", newStringLit(device.Series)),
	})

	name := varName(device.Name)
	doc := fmt.Sprintf("%s identifies the device this header was generated from.", name)
	return newVarDecl(name, doc, value)
}

// peripheralConsts builds the constant block for one peripheral
// placement: the base address, one absolute address per register, reset
// values where known, and mask and position constants per bitfield.
func peripheralConsts(device DeviceInfo, peripheral PeripheralInfo) ast.Decl {
	prefix := constName(device.Name, peripheral.Name)

	specs := []ast.Spec{
		newValueSpec(prefix+"_BASE", newHexLit(peripheral.Base)),
	}
	for _, register := range peripheral.Registers {
		regPrefix := constName(prefix, register.Name)
		specs = append(specs, newValueSpec(regPrefix, newHexLit(peripheral.Base+register.Offset)))
		if register.HasReset {
			specs = append(specs, newValueSpec(regPrefix+"_RESET", newHexLit(register.ResetValue)))
		}
		for _, field := range register.Fields {
			fieldPrefix := constName(regPrefix, field.Name)
			specs = append(specs,
				newValueSpec(fieldPrefix+"_MASK", newHexLit(field.Mask)),
				newValueSpec(fieldPrefix+"_POS", newIntLit(field.Offset)),
			)
		}
	}

	doc := fmt.Sprintf("%s at base %#x.", peripheral.Name, peripheral.Base)
	if peripheral.TypeName != "" && peripheral.TypeName != peripheral.Name {
		doc = fmt.Sprintf("%s (%s) at base %#x.", peripheral.Name, peripheral.TypeName, peripheral.Base)
	}
	return newConstBlock(doc, specs)
}

// interruptConsts builds the vector index constants.
func interruptConsts(device DeviceInfo) ast.Decl {
	specs := make([]ast.Spec, 0, len(device.Interrupts))
	for _, interrupt := range device.Interrupts {
		name := constName(device.Name, "IRQ", interrupt.Name)
		specs = append(specs, newValueSpec(name, newIntLit(interrupt.Index)))
	}
	return newConstBlock("Interrupt vector indexes.", specs)
}

// enumConsts builds the constants for one value group, or nil when the
// group carries no values.
func enumConsts(device DeviceInfo, enum EnumInfo) *ast.GenDecl {
	if len(enum.Values) == 0 {
		return nil
	}

	prefix := constName(device.Name, enum.TypeName, enum.Name)
	specs := make([]ast.Spec, 0, len(enum.Values))
	for _, value := range enum.Values {
		specs = append(specs, newValueSpec(constName(prefix, value.Name), newIntLit(value.Value)))
	}

	doc := fmt.Sprintf("%s values declared by %s.", enum.Name, enum.TypeName)
	return newConstBlock(doc, specs)
}
