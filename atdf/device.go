// Package atdf: second-phase ingestion of devices.
package atdf

import (
	"fmt"

	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/diagnostics"
	"github.com/satishbabariya/chipdb/document"
)

// loadDevice ingests one device: identity, peripheral instances resolved
// against the type registry built in the first phase, and interrupts. An
// incomplete identity aborts the whole device but never its siblings.
// Known but unmodeled sections (address-spaces, interfaces,
// property-groups, pinouts) are passed over without comment.
func (l *Loader) loadDevice(el *document.Element) error {
	l.warnUnknownAttrs(el, deviceAttrs)

	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagDeviceInstance)

	name, ok := el.Attr("name")
	if !ok {
		return l.failDevice(el, id, "name")
	}
	architecture, ok := el.Attr("architecture")
	if !ok {
		return l.failDevice(el, id, "architecture")
	}
	family, ok := el.Attr("family")
	if !ok {
		return l.failDevice(el, id, "family")
	}
	l.db.SetName(id, name)
	l.db.SetArchitecture(id, architecture)
	l.db.SetFamily(id, family)
	if series, ok := el.Attr("series"); ok {
		l.db.SetSeries(id, series)
	}

	for _, module := range el.Iterate("peripherals", "module") {
		l.loadPeripheralModule(id, module)
	}
	l.loadInterrupts(id, el)
	return nil
}

// failDevice rolls back a device whose identity is incomplete and records
// the error; the caller moves on to the next device.
func (l *Loader) failDevice(el *document.Element, id database.EntityId, attribute string) error {
	l.db.Destroy(id)
	err := diagnostics.NewMissingAttributeError(el.Tag, attribute, el.Span)
	l.diags.PushError(err)
	return err
}

// loadPeripheralModule resolves one device-side module reference and
// places each of its instances. A module the type registry does not know
// aborts every instance below it, nothing else.
func (l *Loader) loadPeripheralModule(device database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, moduleAttrs)

	typeName, ok := el.Attr("name")
	if !ok {
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}
	typ, ok := l.db.FindByName(database.TagPeripheralType, typeName)
	if !ok {
		l.skip(el, typeName, diagnostics.NewLookupError("peripheral type", typeName, attrSpan(el, "name")))
		return
	}
	for _, instance := range el.ChildrenByTag("instance") {
		l.loadModuleInstance(device, typ, typeName, instance)
	}
}

// loadModuleInstance places one peripheral instance within a device. The
// layout of the resolved type decides the path: an inlined type takes the
// byte offset straight from the instance's own matching register group
// element and links the instance to the type itself; anything else must
// reference exactly one of the type's register groups by name-in-module
// and links the instance to that group. A layout that contradicts the
// type's aborts the instance.
func (l *Loader) loadModuleInstance(device, typ database.EntityId, typeName string, el *document.Element) {
	l.warnUnknownAttrs(el, instanceAttrs)

	name, ok := el.Attr("name")
	if !ok {
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}

	groups := el.ChildrenByTag("register-group")
	typeInlined := len(l.db.Children(typ, database.TagRegisterGroupType)) == 0

	if typeInlined {
		inlined, layout := isInlinedLayout(groups, name)
		if !inlined {
			l.skip(el, name, diagnostics.NewStructuralError(
				fmt.Sprintf("instance %q does not match the inlined layout of peripheral type %q", name, typeName), el.Span))
			return
		}
		l.placeInstance(device, typ, name, layout, el)
		return
	}

	if len(groups) != 1 {
		l.skip(el, name, diagnostics.NewStructuralError(
			fmt.Sprintf("instance %q of peripheral type %q must reference exactly one register group, found %d", name, typeName, len(groups)), el.Span))
		return
	}
	ref := groups[0]
	target, ok := ref.Attr("name-in-module")
	if !ok {
		l.skip(el, name, diagnostics.NewMissingAttributeError(ref.Tag, "name-in-module", ref.Span))
		return
	}
	group, ok := l.db.FindChildByName(typ, database.TagRegisterGroupType, target)
	if !ok {
		l.skip(el, name, diagnostics.NewLookupError("register group", target, attrSpan(ref, "name-in-module")))
		return
	}
	l.placeInstance(device, group, name, ref, el)
}

// placeInstance creates the instance entity, links it to target and
// attaches it to the device. The byte offset comes from the register
// group reference element.
func (l *Loader) placeInstance(device, target database.EntityId, name string, ref, el *document.Element) {
	l.warnUnknownAttrs(ref, groupRefAttrs)

	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagPeripheralInstance)
	l.db.SetName(id, name)

	rawOffset, ok := ref.Attr("offset")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewMissingAttributeError(ref.Tag, "offset", ref.Span))
		return
	}
	offset, err := parseUint(rawOffset)
	if err != nil {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewValueParseError("offset", rawOffset, attrSpan(ref, "offset")))
		return
	}
	l.db.SetOffset(id, offset)
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}

	l.db.LinkInstance(id, target)
	l.db.AddChild(database.TagPeripheralInstance, device, id)
}

// loadInterrupts ingests the device's plain interrupts and expands its
// interrupt group references against the scratch table captured during
// module loading.
func (l *Loader) loadInterrupts(device database.EntityId, el *document.Element) {
	for _, interrupt := range el.Iterate("interrupts", "interrupt") {
		l.loadInterrupt(device, interrupt)
	}
	for _, group := range el.Iterate("interrupts", "interrupt-group") {
		l.expandInterruptGroup(device, group)
	}
}

// loadInterrupt ingests one plain interrupt. A module-instance attribute
// prefixes the stored name.
func (l *Loader) loadInterrupt(device database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, interruptAttrs)

	id := l.db.CreateEntity()
	l.db.AddTag(id, database.TagInterruptInstance)

	name, ok := el.Attr("name")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "name", el.Span))
		return
	}
	rawIndex, ok := el.Attr("index")
	if !ok {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewMissingAttributeError(el.Tag, "index", el.Span))
		return
	}
	index, err := parseUint(rawIndex)
	if err != nil {
		l.db.Destroy(id)
		l.skip(el, name, diagnostics.NewValueParseError("index", rawIndex, attrSpan(el, "index")))
		return
	}

	if moduleInstance, ok := el.Attr("module-instance"); ok {
		name = moduleInstance + "_" + name
	}
	l.db.SetName(id, name)
	l.db.SetOffset(id, index)
	if caption, ok := el.Attr("caption"); ok && caption != "" {
		l.db.SetDescription(id, caption)
	}
	l.db.AddChild(database.TagInterruptInstance, device, id)
}

// expandInterruptGroup emits one interrupt instance per template entry,
// prefixed with the consuming module instance and rebased on the group's
// declared base index.
func (l *Loader) expandInterruptGroup(device database.EntityId, el *document.Element) {
	l.warnUnknownAttrs(el, interruptGroupAttrs)

	moduleInstance, ok := el.Attr("module-instance")
	if !ok {
		l.skip(el, "", diagnostics.NewMissingAttributeError(el.Tag, "module-instance", el.Span))
		return
	}
	target, ok := el.Attr("name-in-module")
	if !ok {
		l.skip(el, moduleInstance, diagnostics.NewMissingAttributeError(el.Tag, "name-in-module", el.Span))
		return
	}
	rawIndex, ok := el.Attr("index")
	if !ok {
		l.skip(el, moduleInstance, diagnostics.NewMissingAttributeError(el.Tag, "index", el.Span))
		return
	}
	base, err := parseUint(rawIndex)
	if err != nil {
		l.skip(el, moduleInstance, diagnostics.NewValueParseError("index", rawIndex, attrSpan(el, "index")))
		return
	}

	entries, ok := l.interruptGroups[target]
	if !ok {
		l.skip(el, moduleInstance, diagnostics.NewLookupError("interrupt group", target, attrSpan(el, "name-in-module")))
		return
	}
	for _, entry := range entries {
		id := l.db.CreateEntity()
		l.db.AddTag(id, database.TagInterruptInstance)
		l.db.SetName(id, moduleInstance+"_"+entry.name)
		l.db.SetOffset(id, entry.index+base)
		if entry.description != "" {
			l.db.SetDescription(id, entry.description)
		}
		l.db.AddChild(database.TagInterruptInstance, device, id)
	}
}
