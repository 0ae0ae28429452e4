package chipdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/chipdb/database"
)

// TestLoadMinimalDocument runs the whole pipeline over a minimal valid
// document and checks the resulting graph.
func TestLoadMinimalDocument(t *testing.T) {
	source := `<?xml version="1.0" encoding="UTF-8"?>
<avr-tools-device-file schema-version="0.4">
  <modules>
    <module name="GPIO">
      <register-group name="GPIO">
        <register name="CTRL" offset="0x00" size="1"/>
      </register-group>
    </module>
  </modules>
  <devices>
    <device name="TEST1" architecture="AVR8" family="AVR">
      <peripherals>
        <module name="GPIO">
          <instance name="GPIO0">
            <register-group name="GPIO0" name-in-module="GPIO" offset="0x40"/>
          </instance>
        </module>
      </peripherals>
    </device>
  </devices>
</avr-tools-device-file>`

	db, diags := LoadString("test.atdf", source)
	require.NotNil(t, db)
	require.False(t, diags.HasErrors(), diags.ToPrettyString("test.atdf", source))
	require.Empty(t, diags.Warnings(), diags.WarningsToPrettyString("test.atdf", source))

	assert.Equal(t, 1, db.Count(database.TagPeripheralType))
	assert.Equal(t, 1, db.Count(database.TagRegisterType))
	assert.Equal(t, 1, db.Count(database.TagDeviceInstance))

	device := db.FindDevice("TEST1")
	require.NotNil(t, device)
	peripherals := device.Peripherals()
	require.Len(t, peripherals, 1)
	assert.Equal(t, "GPIO0", peripherals[0].Name())
	assert.Equal(t, uint64(0x40), peripherals[0].Offset())

	require.NoError(t, db.AssertValid())
}

// TestLoadDiagnostics checks that defective documents surface the
// expected diagnostics without aborting the pipeline.
func TestLoadDiagnostics(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:       "unparsable document",
			source:     `<avr-tools-device-file schema-version="0.4"><modules></avr-tools-device-file>`,
			wantErrors: []string{"Document parse failed"},
		},
		{
			name: "device reference to unregistered module",
			source: `<avr-tools-device-file schema-version="0.4">
  <devices>
    <device name="TEST1" architecture="AVR8" family="AVR">
      <peripherals>
        <module name="NOPE">
          <instance name="NOPE0">
            <register-group name="NOPE0" name-in-module="NOPE" offset="0x00"/>
          </instance>
        </module>
      </peripherals>
    </device>
  </devices>
</avr-tools-device-file>`,
			wantWarnings: []string{`No peripheral type named "NOPE" is registered`},
		},
		{
			name: "inconsistent enum sizes",
			source: `<avr-tools-device-file schema-version="0.4">
  <modules>
    <module name="M">
      <value-group name="VG">
        <value name="X" value="0x0"/>
      </value-group>
      <register-group name="M">
        <register name="R" offset="0x00" size="1">
          <bitfield name="A" mask="0x03" values="VG"/>
          <bitfield name="B" mask="0x70" values="VG"/>
        </register>
      </register-group>
    </module>
  </modules>
</avr-tools-device-file>`,
			wantErrors: []string{`Enum "VG" is referenced by fields of inconsistent sizes 2 and 3`},
		},
		{
			name: "enum value exceeds declared width",
			source: `<avr-tools-device-file schema-version="0.4">
  <modules>
    <module name="N">
      <value-group name="BIG">
        <value name="HUGE" value="0x04"/>
      </value-group>
      <register-group name="N">
        <register name="R" offset="0x00" size="1">
          <bitfield name="A" mask="0x01" values="BIG"/>
        </register>
      </register-group>
    </module>
  </modules>
</avr-tools-device-file>`,
			wantErrors: []string{`Enum "BIG" has maximum value 4 which does not fit in 1 bits`},
		},
		{
			// Value groups of the same module are loaded ahead of its
			// registers, so only a reference into a later module stays
			// unresolved.
			name: "enum declared in a later module",
			source: `<avr-tools-device-file schema-version="0.4">
  <modules>
    <module name="M">
      <register-group name="M">
        <register name="R" offset="0x00" size="1">
          <bitfield name="A" mask="0x01" values="LATER_VG"/>
        </register>
      </register-group>
    </module>
    <module name="L">
      <value-group name="LATER_VG">
        <value name="X" value="0x0"/>
      </value-group>
    </module>
  </modules>
</avr-tools-device-file>`,
			wantWarnings: []string{`references value group "LATER_VG" which is not (yet) registered`},
		},
		{
			name: "unknown attribute",
			source: `<avr-tools-device-file schema-version="0.4">
  <modules>
    <module name="M" vendor="nobody">
      <register-group name="M">
        <register name="R" offset="0x00" size="1"/>
      </register-group>
    </module>
  </modules>
</avr-tools-device-file>`,
			wantWarnings: []string{`unknown attribute "vendor" on <module> "M"`},
		},
		{
			name:         "newer schema version",
			source:       `<avr-tools-device-file schema-version="0.5"></avr-tools-device-file>`,
			wantWarnings: []string{"newer than the supported 0.4 line"},
		},
		{
			name:         "missing schema version",
			source:       `<avr-tools-device-file></avr-tools-device-file>`,
			wantWarnings: []string{"declares no schema-version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, diags := LoadString("test.atdf", tt.source)
			require.NotNil(t, db)

			errorText := joinMessages(diags)
			for _, want := range tt.wantErrors {
				assert.Contains(t, errorText, want)
			}
			if len(tt.wantErrors) == 0 {
				assert.False(t, diags.HasErrors(), errorText)
			}

			warningText := joinWarnings(diags)
			for _, want := range tt.wantWarnings {
				assert.Contains(t, warningText, want)
			}
			if len(tt.wantWarnings) == 0 {
				assert.Empty(t, diags.Warnings(), warningText)
			}
		})
	}
}

// TestDeviceFailureIsLocal checks that an incomplete device identity
// drops only that device, never its siblings.
func TestDeviceFailureIsLocal(t *testing.T) {
	source := `<avr-tools-device-file schema-version="0.4">
  <devices>
    <device name="BROKEN" family="AVR"/>
    <device name="SURVIVOR" architecture="AVR8" family="AVR"/>
  </devices>
</avr-tools-device-file>`

	db, diags := LoadString("test.atdf", source)
	require.NotNil(t, db)

	require.True(t, diags.HasErrors())
	assert.Contains(t, joinMessages(diags), `Element <device> is missing the required attribute "architecture"`)

	assert.Equal(t, 1, db.Count(database.TagDeviceInstance))
	assert.Nil(t, db.FindDevice("BROKEN"))
	require.NotNil(t, db.FindDevice("SURVIVOR"))
	require.NoError(t, db.AssertValid())
}

// TestLoadSourceFile checks the SourceFile entry point against the
// string one.
func TestLoadSourceFile(t *testing.T) {
	source := `<avr-tools-device-file schema-version="0.4">
  <devices>
    <device name="TEST1" architecture="AVR8" family="AVR"/>
  </devices>
</avr-tools-device-file>`

	file := NewSourceFile("memory.atdf", source)
	assert.Equal(t, "memory.atdf", file.Path)

	db, diags := LoadSourceFile(file)
	require.NotNil(t, db)
	require.False(t, diags.HasErrors())
	assert.NotNil(t, db.FindDevice("TEST1"))
}

func joinMessages(diags Diagnostics) string {
	var parts []string
	for _, err := range diags.Errors() {
		parts = append(parts, err.Message())
	}
	return strings.Join(parts, "\n")
}

func joinWarnings(diags Diagnostics) string {
	var parts []string
	for _, warning := range diags.Warnings() {
		parts = append(parts, warning.Message())
	}
	return strings.Join(parts, "\n")
}
