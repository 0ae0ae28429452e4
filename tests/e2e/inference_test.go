package e2e

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOffsetNormalization checks that the single-instance ADC had its
// absolute register addresses folded into the instance base, while the
// two-instance PORT was left untouched.
func (suite *TestSuite) TestOffsetNormalization() {
	adc := suite.db.FindPeripheralType("ADC")
	require.NotNil(suite.T(), adc)

	device := suite.db.FindDevice("ATtiny817")
	require.NotNil(suite.T(), device)

	instances := adc.Instances()
	require.Len(suite.T(), instances, 1)
	assert.Equal(suite.T(), "ADC0", instances[0].Name())
	assert.Equal(suite.T(), uint64(0x23), instances[0].Offset(),
		"register base moves into the instance offset")

	registers := adc.Registers()
	require.Len(suite.T(), registers, 3)
	assert.Equal(suite.T(), uint64(0), registers[0].Offset())
	assert.Equal(suite.T(), uint64(1), registers[1].Offset())
	assert.Equal(suite.T(), uint64(2), registers[2].Offset())
}

// TestNormalizationSkipsMultiInstance checks that PORT, placed twice,
// keeps both its instance offsets and its register offsets as declared.
func (suite *TestSuite) TestNormalizationSkipsMultiInstance() {
	port := suite.db.FindPeripheralType("PORT")
	require.NotNil(suite.T(), port)

	instances := port.Instances()
	require.Len(suite.T(), instances, 2)
	assert.Equal(suite.T(), uint64(0x0400), instances[0].Offset())
	assert.Equal(suite.T(), uint64(0x0420), instances[1].Offset())

	wantOffsets := []uint64{0x00, 0x04, 0x08, 0x10}
	registers := port.Registers()
	require.Len(suite.T(), registers, len(wantOffsets))
	for i, register := range registers {
		assert.Equal(suite.T(), wantOffsets[i], register.Offset(), register.Name())
	}
}

// TestNormalizationSkipsZeroBasedGroups checks that already-relative
// register layouts stay put.
func (suite *TestSuite) TestNormalizationSkipsZeroBasedGroups() {
	twi := suite.db.FindPeripheralType("TWI")
	require.NotNil(suite.T(), twi)

	groups := twi.RegisterGroups()
	require.Len(suite.T(), groups, 2)

	master := groups[0]
	registers := master.Registers()
	require.Len(suite.T(), registers, 2)
	assert.Equal(suite.T(), uint64(0), registers[0].Offset())
	assert.Equal(suite.T(), uint64(1), registers[1].Offset())
}

// TestEnumSizeInference checks that declared field widths propagate to
// the enums they reference.
func (suite *TestSuite) TestEnumSizeInference() {
	isc := suite.db.FindEnum("PORT_ISC")
	require.NotNil(suite.T(), isc)
	size, ok := isc.Size()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), uint64(3), size, "ISC field declares 3 bits")

	ressel := suite.db.FindEnum("ADC_RESSEL")
	require.NotNil(suite.T(), ressel)
	size, ok = ressel.Size()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), uint64(1), size, "RESSEL field declares 1 bit")
}
