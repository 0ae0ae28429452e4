package e2e

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInterruptVectors checks plain interrupts, module-instance name
// prefixing and interrupt-group expansion against the template captured
// from the PORT module.
func (suite *TestSuite) TestInterruptVectors() {
	device := suite.db.FindDevice("ATtiny817")
	require.NotNil(suite.T(), device)

	interrupts := device.Interrupts()
	require.Len(suite.T(), interrupts, 4)

	indexByName := make(map[string]uint64)
	for _, interrupt := range interrupts {
		indexByName[interrupt.Name()] = interrupt.Index()
	}

	assert.Equal(suite.T(), uint64(0), indexByName["RESET"])
	assert.Equal(suite.T(), uint64(1), indexByName["CRCSCAN_NMI"],
		"module-instance prefixes the vector name")
	assert.Equal(suite.T(), uint64(3), indexByName["PORTB_INT0"],
		"template entry 0 rebased on the group's base index")
	assert.Equal(suite.T(), uint64(4), indexByName["PORTB_INT1"])
}

// TestInterruptOrder checks that vectors keep ingestion order: plain
// interrupts first, then the expanded groups.
func (suite *TestSuite) TestInterruptOrder() {
	device := suite.db.FindDevice("ATtiny817")
	require.NotNil(suite.T(), device)

	var names []string
	for _, interrupt := range device.Interrupts() {
		names = append(names, interrupt.Name())
	}
	assert.Equal(suite.T(), []string{"RESET", "CRCSCAN_NMI", "PORTB_INT0", "PORTB_INT1"}, names)
}

// TestExpandedInterruptDescriptions checks that template captions survive
// the expansion.
func (suite *TestSuite) TestExpandedInterruptDescriptions() {
	device := suite.db.FindDevice("ATtiny817")
	require.NotNil(suite.T(), device)

	for _, interrupt := range device.Interrupts() {
		if interrupt.Name() != "PORTB_INT0" {
			continue
		}
		description, ok := interrupt.Description()
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), "External interrupt 0", description)
		return
	}
	suite.T().Fatal("PORTB_INT0 not found")
}
