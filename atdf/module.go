// Package atdf: first-phase ingestion of module type definitions.
package atdf

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/diagnostics"
	"github.com/satishbabariya/chipdb/document"
)

// loadModuleType ingests one module definition: its value groups, its
// interrupt templates and its register groups, in that order, so that
// bitfields can resolve enums declared anywhere in the same module. A
// missing module name aborts only this module; the error propagates to
// the document loop.
func (l *Loader) loadModuleType(el *document.Element) error {
	l.warnUnknownAttrs(el, moduleAttrs)

	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagPeripheralType)

	name, ok := el.Attr("name")
	if !ok {
		l.db.Destroy(id)
		err := diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span)
		l.diags.PushError(err)
		return err
	}
	l.db.SetName(id, name)
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}

	for _, group := range el.ChildrenByTag("value-group") {
		l.loadValueGroup(id, group)
	}
	for _, group := range el.ChildrenByTag("interrupt-group") {
		l.captureInterruptGroup(group)
	}

	groups := el.ChildrenByTag("register-group")
	if inlined, layout := isInlinedLayout(groups, name); inlined {
		// The single module-named group collapses into the peripheral:
		// its modes and registers attach directly, no group entity.
		l.loadGroupContents(id, layout)
		return nil
	}
	for _, group := range groups {
		l.loadRegisterGroup(id, group)
	}
	return nil
}

// isInlinedLayout applies the inlining rule: exactly one register group
// child whose declared name equals the owner's own name. The rule is
// shared between type construction and instance placement so the two
// sides cannot drift apart.
func isInlinedLayout(groups []*document.Element, owner string) (bool, *document.Element) {
	if len(groups) != 1 {
		return false, nil
	}
	name, ok := groups[0].Attr("name")
	if !ok || name != owner {
		return false, nil
	}
	return true, groups[0]
}

// loadRegisterGroup creates a standalone register group entity under the
// peripheral type and fills it.
func (l *Loader) loadRegisterGroup(peripheral database.EntityId, el *document.Element) {
	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagRegisterGroupType)

	name, ok := el.Attr("name")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}
	l.db.SetName(id, name)
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}
	if raw, ok := el.Attr("size"); ok {
		if size, err := parseUint(raw); err != nil {
			l.warnAttr(el, "size", raw)
		} else {
			l.db.SetSize(id, size*8)
		}
	}

	l.db.AddChild(database.TagRegisterGroupType, peripheral, id)
	l.loadGroupContents(id, el)
}

// loadGroupContents loads one register group element onto dest, which is
// either a register group entity or, for inlined layouts, the peripheral
// type itself. Modes load before registers so registers can resolve them
// by name.
func (l *Loader) loadGroupContents(dest database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, registerGroupAttrs)

	for _, mode := range el.ChildrenByTag("mode") {
		l.loadMode(dest, mode)
	}
	for _, register := range el.ChildrenByTag("register") {
		l.loadRegister(dest, register)
	}
}

// loadMode ingests one mode declaration.
func (l *Loader) loadMode(dest database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, modeAttrs)

	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagModeType)

	name, ok := el.Attr("name")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}
	l.db.SetName(id, name)
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}
	l.db.AddChild(database.TagModeType, dest, id)
}

// loadRegister ingests one register. The document declares sizes and
// offsets in bytes; sizes are stored in bits.
func (l *Loader) loadRegister(dest database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, registerAttrs)

	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagRegisterType)

	name, ok := el.Attr("name")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}
	l.db.SetName(id, name)

	rawSize, ok := el.Attr("size")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewMissingAttributeError(el.Tag, "size", el.Span))
		return
	}
	size, err := parseUint(rawSize)
	if err != nil {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewValueParseError("size", rawSize, attrSpan(el, "size")))
		return
	}
	l.db.SetSize(id, size*8)

	rawOffset, ok := el.Attr("offset")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewMissingAttributeError(el.Tag, "offset", el.Span))
		return
	}
	offset, err := parseUint(rawOffset)
	if err != nil {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewValueParseError("offset", rawOffset, attrSpan(el, "offset")))
		return
	}
	l.db.SetOffset(id, offset)

	if raw, ok := el.Attr("initval"); ok {
		if value, err := parseUint(raw); err != nil {
			l.warnAttr(el, "initval", raw)
		} else {
			l.db.SetResetValue(id, value)
		}
	}
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}
	l.db.SetAccess(id, accessFromRW(el))
	l.assignModes(id, dest, el)

	l.db.AddChild(database.TagRegisterType, dest, id)

	for _, bitfield := range el.ChildrenByTag("bitfield") {
		l.loadBitfield(id, dest, bitfield)
	}
}

// accessFromRW maps the rw attribute: R is read-only, W is write-only,
// RW is the unstored read-write default. Any other value is silently
// ignored.
func accessFromRW(el *document.Element) database.Access {
	switch rw, _ := el.Attr("rw"); rw {
	case "R":
		return database.AccessReadOnly
	case "W":
		return database.AccessWriteOnly
	default:
		return database.AccessReadWrite
	}
}

// assignModes resolves the space-delimited modes attribute against the
// mode set captured under scope. A name that fails to resolve aborts
// only that one assignment.
func (l *Loader) assignModes(id, scope database.EntityId, el *document.Element) {
	raw, ok := el.Attr("modes")
	if !ok {
		return
	}
	owner, _ := l.db.Name(scope)
	for _, modeName := range strings.Fields(raw) {
		mode, ok := l.db.FindChildByName(scope, database.TagModeType, modeName)
		if !ok {
			l.diags.PushWarning(diagnostics.NewModeResolutionWarning(modeName, owner, attrSpan(el, "modes")))
			continue
		}
		l.db.AddMode(id, mode)
	}
}

// loadBitfield decomposes one bitfield mask. A contiguous mask yields a
// single field at the index of its lowest set bit, with the population
// count as the width. A mask with gaps is split into one single-bit
// field per set bit, named <name>_bit<k> with k counting up from 0 in
// ascending bit order; split fields never link an enum.
func (l *Loader) loadBitfield(register, scope database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, bitfieldAttrs)

	name, ok := el.Attr("name")
	if !ok {
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}
	rawMask, ok := el.Attr("mask")
	if !ok {
		l.skip(el, name, diagnostics.NewMissingAttributeError(el.Tag, "mask", el.Span))
		return
	}
	mask, err := parseUint(rawMask)
	if err != nil {
		l.skip(el, name, diagnostics.NewValueParseError("mask", rawMask, attrSpan(el, "mask")))
		return
	}
	if mask == 0 {
		l.skip(el, name, diagnostics.NewStructuralError("mask has no bits set", attrSpan(el, "mask")))
		return
	}

	offset := uint64(bits.TrailingZeros64(mask))
	width := uint64(bits.OnesCount64(mask))

	if width == uint64(bits.Len64(mask))-offset {
		id := l.createField(el, name, offset, width, scope)
		if values, ok := el.Attr("values"); ok {
			// Exact-name scan over the enums registered so far; an enum
			// declared later in the document will not be linked.
			if enum, found := l.db.FindByName(database.TagEnumType, values); found {
				l.db.SetEnum(id, enum)
			} else {
				l.diags.PushWarning(diagnostics.NewUnresolvedEnumWarning(name, values, attrSpan(el, "values")))
			}
		}
		l.db.AddChild(database.TagFieldType, register, id)
		return
	}

	k := 0
	for bit := 0; bit < 64; bit++ {
		if mask&(1<<bit) == 0 {
			continue
		}
		id := l.createField(el, fmt.Sprintf("%s_bit%d", name, k), uint64(bit), 1, scope)
		l.db.AddChild(database.TagFieldType, register, id)
		k++
	}
}

// createField builds one field entity with the attribute handling shared
// by both decomposition outcomes.
func (l *Loader) createField(el *document.Element, name string, offset, width uint64, scope database.EntityId) database.EntityId {
	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagFieldType)
	l.db.SetName(id, name)
	l.db.SetOffset(id, offset)
	l.db.SetSize(id, width)
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}
	l.db.SetAccess(id, accessFromRW(el))
	l.assignModes(id, scope, el)
	return id
}

// loadValueGroup ingests one value-group as an enum type. A value child
// that fails to parse is skipped on its own; the enum keeps its other
// values.
func (l *Loader) loadValueGroup(peripheral database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, valueGroupAttrs)

	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagEnumType)

	name, ok := el.Attr("name")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}
	l.db.SetName(id, name)
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}
	l.db.AddChild(database.TagEnumType, peripheral, id)

	for _, value := range el.ChildrenByTag("value") {
		l.loadEnumField(id, value)
	}
}

// loadEnumField ingests one value of an enum.
func (l *Loader) loadEnumField(enum database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, valueAttrs)

	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagEnumFieldType)

	name, ok := el.Attr("name")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}
	rawValue, ok := el.Attr("value")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewMissingAttributeError(el.Tag, "value", el.Span))
		return
	}
	value, err := parseUint(rawValue)
	if err != nil {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewValueParseError("value", rawValue, attrSpan(el, "value")))
		return
	}

	l.db.SetName(id, name)
	l.db.SetValue(id, value)
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}
	l.db.AddChild(database.TagEnumFieldType, enum, id)
}

// captureInterruptGroup records a module's interrupt template into the
// document-scoped scratch table. Templates are keyed purely by name; a
// later template under the same name replaces the earlier one. No
// entities are created here.
func (l *Loader) captureInterruptGroup(el *document.Element) {
	l.warnUnknownAttrs(el, moduleInterruptGroupAttrs)

	name, ok := el.Attr("name")
	if !ok {
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}

	var entries []interruptTemplate
	for _, interrupt := range el.ChildrenByTag("interrupt") {
		l.warnUnknownAttrs(interrupt, templateInterruptAttrs)

		entryName, ok := interrupt.Attr("name")
		if !ok {
			l.skip(interrupt, "", diagnostics.NewMissingAttributeError(interrupt.Tag, "name", interrupt.Span))
			continue
		}
		rawIndex, ok := interrupt.Attr("index")
		if !ok {
			l.skip(interrupt, entryName, diagnostics.NewMissingAttributeError(interrupt.Tag, "index", interrupt.Span))
			continue
		}
		index, err := parseUint(rawIndex)
		if err != nil {
			l.skip(interrupt, entryName, diagnostics.NewValueParseError("index", rawIndex, attrSpan(interrupt, "index")))
			continue
		}
		caption, _ := interrupt.Attr("caption")
		entries = append(entries, interruptTemplate{name: entryName, index: index, description: caption})
	}
	l.interruptGroups[name] = entries
}
