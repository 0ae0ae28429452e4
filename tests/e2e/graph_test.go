package e2e

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/chipdb/database"
)

// TestDeviceIdentity checks the device entity and its identity attributes.
func (suite *TestSuite) TestDeviceIdentity() {
	require.Equal(suite.T(), 1, suite.db.Count(database.TagDeviceInstance))

	device := suite.db.FindDevice("ATtiny817")
	require.NotNil(suite.T(), device)
	assert.Equal(suite.T(), "AVR8X", device.Architecture())
	assert.Equal(suite.T(), "AVR", device.Family())

	series, ok := device.Series()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "tinyAVR", series)
}

// TestInlinedPeripheralPlacement checks that the PORT module collapsed
// into its peripheral type and that both placements link the type
// directly.
func (suite *TestSuite) TestInlinedPeripheralPlacement() {
	port := suite.db.FindPeripheralType("PORT")
	require.NotNil(suite.T(), port)

	// Inlined: registers hang off the type, no register group entities.
	require.Empty(suite.T(), port.RegisterGroups())
	require.Len(suite.T(), port.Registers(), 4)

	device := suite.db.FindDevice("ATtiny817")
	require.NotNil(suite.T(), device)

	var porta, portb *database.PeripheralInstanceWalker
	for _, peripheral := range device.Peripherals() {
		switch peripheral.Name() {
		case "PORTA":
			porta = peripheral
		case "PORTB":
			portb = peripheral
		}
	}
	require.NotNil(suite.T(), porta)
	require.NotNil(suite.T(), portb)

	assert.Equal(suite.T(), uint64(0x0400), porta.Offset())
	assert.Equal(suite.T(), uint64(0x0420), portb.Offset())

	// Both instances link straight to the peripheral type.
	require.NotNil(suite.T(), porta.PeripheralType())
	assert.Equal(suite.T(), port.ID(), porta.PeripheralType().ID())
	require.NotNil(suite.T(), portb.PeripheralType())
	assert.Nil(suite.T(), porta.RegisterGroup())
}

// TestGroupedPeripheralPlacement checks that the TWI module kept its
// register groups and that the instance links the referenced group.
func (suite *TestSuite) TestGroupedPeripheralPlacement() {
	twi := suite.db.FindPeripheralType("TWI")
	require.NotNil(suite.T(), twi)

	groups := twi.RegisterGroups()
	require.Len(suite.T(), groups, 2)
	assert.Empty(suite.T(), twi.Registers())

	device := suite.db.FindDevice("ATtiny817")
	require.NotNil(suite.T(), device)

	var twi0 *database.PeripheralInstanceWalker
	for _, peripheral := range device.Peripherals() {
		if peripheral.Name() == "TWI0" {
			twi0 = peripheral
		}
	}
	require.NotNil(suite.T(), twi0)

	assert.Equal(suite.T(), uint64(0x0810), twi0.Offset())
	assert.Nil(suite.T(), twi0.PeripheralType())

	master := twi0.RegisterGroup()
	require.NotNil(suite.T(), master)
	assert.Equal(suite.T(), "MASTER", master.Name())

	// The group walker leads back to its owning peripheral type.
	owner := master.PeripheralType()
	require.NotNil(suite.T(), owner)
	assert.Equal(suite.T(), twi.ID(), owner.ID())

	// Registers resolve through the instance link.
	registers := twi0.Registers()
	require.Len(suite.T(), registers, 2)
	assert.Equal(suite.T(), "MCTRLA", registers[0].Name())
	assert.Equal(suite.T(), "MSTATUS", registers[1].Name())
}

// TestRegisterAttributes checks size conversion, reset values, access
// and mode assignment on loaded registers.
func (suite *TestSuite) TestRegisterAttributes() {
	port := suite.db.FindPeripheralType("PORT")
	require.NotNil(suite.T(), port)

	dir := port.FindRegister("DIR")
	require.NotNil(suite.T(), dir)
	assert.Equal(suite.T(), uint64(8), dir.Size(), "1 byte converts to 8 bits")
	reset, ok := dir.ResetValue()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), uint64(0), reset)
	assert.Equal(suite.T(), database.AccessReadWrite, dir.Access())

	in := port.FindRegister("IN")
	require.NotNil(suite.T(), in)
	assert.Equal(suite.T(), database.AccessReadOnly, in.Access())
	_, ok = in.ResetValue()
	assert.False(suite.T(), ok)

	adc := suite.db.FindPeripheralType("ADC")
	require.NotNil(suite.T(), adc)

	res := adc.FindRegister("RES")
	require.NotNil(suite.T(), res)
	assert.Equal(suite.T(), uint64(16), res.Size(), "2 bytes convert to 16 bits")

	ctrla := adc.FindRegister("CTRLA")
	require.NotNil(suite.T(), ctrla)
	modes := ctrla.Modes()
	require.Len(suite.T(), modes, 2)
	assert.Equal(suite.T(), "SINGLE", modes[0].Name())
	assert.Equal(suite.T(), "FREERUN", modes[1].Name())

	ctrlb := adc.FindRegister("CTRLB")
	require.NotNil(suite.T(), ctrlb)
	require.Len(suite.T(), ctrlb.Modes(), 1)
}

// TestBitfieldDecomposition checks contiguous and scattered mask
// handling on the PIN0CTRL register.
func (suite *TestSuite) TestBitfieldDecomposition() {
	port := suite.db.FindPeripheralType("PORT")
	require.NotNil(suite.T(), port)

	pinctrl := port.FindRegister("PIN0CTRL")
	require.NotNil(suite.T(), pinctrl)

	fields := pinctrl.Fields()
	require.Len(suite.T(), fields, 4, "ISC, INVEN and two split TEST bits")

	byName := make(map[string]*database.FieldWalker)
	for _, field := range fields {
		byName[field.Name()] = field
	}

	isc := byName["ISC"]
	require.NotNil(suite.T(), isc)
	assert.Equal(suite.T(), uint64(0), isc.Offset())
	assert.Equal(suite.T(), uint64(3), isc.Size())

	inven := byName["INVEN"]
	require.NotNil(suite.T(), inven)
	assert.Equal(suite.T(), uint64(7), inven.Offset())
	assert.Equal(suite.T(), uint64(1), inven.Size())

	// Mask 0x28 has bits 3 and 5 set; it splits into single-bit fields.
	bit0 := byName["TEST_bit0"]
	require.NotNil(suite.T(), bit0)
	assert.Equal(suite.T(), uint64(3), bit0.Offset())
	assert.Equal(suite.T(), uint64(1), bit0.Size())

	bit1 := byName["TEST_bit1"]
	require.NotNil(suite.T(), bit1)
	assert.Equal(suite.T(), uint64(5), bit1.Offset())
	assert.Equal(suite.T(), uint64(1), bit1.Size())

	assert.Nil(suite.T(), bit0.Enum())
	assert.Nil(suite.T(), bit1.Enum())
}

// TestEnumLinks checks the field-to-enum references and the enum
// contents.
func (suite *TestSuite) TestEnumLinks() {
	port := suite.db.FindPeripheralType("PORT")
	require.NotNil(suite.T(), port)

	pinctrl := port.FindRegister("PIN0CTRL")
	require.NotNil(suite.T(), pinctrl)

	var isc *database.FieldWalker
	for _, field := range pinctrl.Fields() {
		if field.Name() == "ISC" {
			isc = field
		}
	}
	require.NotNil(suite.T(), isc)

	enum := isc.Enum()
	require.NotNil(suite.T(), enum)
	assert.Equal(suite.T(), "PORT_ISC", enum.Name())

	values := enum.Fields()
	require.Len(suite.T(), values, 6)
	assert.Equal(suite.T(), "INTDISABLE", values[0].Name())
	assert.Equal(suite.T(), uint64(0), values[0].Value())
	assert.Equal(suite.T(), "LEVEL", values[5].Name())
	assert.Equal(suite.T(), uint64(5), values[5].Value())
}

// TestCategoryScopedNames checks that the same name resolves
// independently per category.
func (suite *TestSuite) TestCategoryScopedNames() {
	// "PORT" names a peripheral type; it is not a device.
	_, ok := suite.db.FindByName(database.TagPeripheralType, "PORT")
	assert.True(suite.T(), ok)
	_, ok = suite.db.FindByName(database.TagDeviceInstance, "PORT")
	assert.False(suite.T(), ok)

	// "MASTER" only names a register group type.
	_, ok = suite.db.FindByName(database.TagRegisterGroupType, "MASTER")
	assert.True(suite.T(), ok)
	_, ok = suite.db.FindByName(database.TagPeripheralType, "MASTER")
	assert.False(suite.T(), ok)
}
