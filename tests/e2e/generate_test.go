package e2e

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/generator"
)

// TestGenerateHeaders renders the device header and checks the emitted
// constants against the loaded graph: bases, absolute register
// addresses, reset values, masks, vector indexes and enum values.
func (suite *TestSuite) TestGenerateHeaders() {
	outDir := filepath.Join(suite.tempDir, "chip")
	require.NoError(suite.T(), generator.Generate(suite.db, outDir))

	path := filepath.Join(outDir, generator.HeaderFileName("ATtiny817"))
	raw, err := os.ReadFile(path)
	require.NoError(suite.T(), err)
	text := string(raw)

	assert.True(suite.T(), strings.HasPrefix(text, "// Code generated by chipdb. DO NOT EDIT."))
	assert.Contains(suite.T(), text, "package chip")
	assert.Contains(suite.T(), text, "var ATtiny817 = struct")

	consts := parseConstants(text)

	// Peripheral bases and absolute register addresses.
	assert.Equal(suite.T(), "0x400", consts["ATTINY817_PORTA_BASE"])
	assert.Equal(suite.T(), "0x400", consts["ATTINY817_PORTA_DIR"])
	assert.Equal(suite.T(), "0x410", consts["ATTINY817_PORTA_PIN0CTRL"])
	assert.Equal(suite.T(), "0x420", consts["ATTINY817_PORTB_BASE"])
	assert.Equal(suite.T(), "0x23", consts["ATTINY817_ADC0_BASE"])
	assert.Equal(suite.T(), "0x23", consts["ATTINY817_ADC0_CTRLA"])
	assert.Equal(suite.T(), "0x25", consts["ATTINY817_ADC0_RES"])
	assert.Equal(suite.T(), "0x810", consts["ATTINY817_TWI0_MCTRLA"])

	// Reset value constants appear only where the input declared one.
	assert.Equal(suite.T(), "0x0", consts["ATTINY817_PORTA_DIR_RESET"])
	assert.NotContains(suite.T(), consts, "ATTINY817_PORTA_OUT_RESET")

	// Field masks and positions, including the synthesized split bits.
	assert.Equal(suite.T(), "0x7", consts["ATTINY817_PORTA_PIN0CTRL_ISC_MASK"])
	assert.Equal(suite.T(), "0", consts["ATTINY817_PORTA_PIN0CTRL_ISC_POS"])
	assert.Equal(suite.T(), "0x80", consts["ATTINY817_PORTA_PIN0CTRL_INVEN_MASK"])
	assert.Equal(suite.T(), "7", consts["ATTINY817_PORTA_PIN0CTRL_INVEN_POS"])
	assert.Equal(suite.T(), "0x8", consts["ATTINY817_PORTA_PIN0CTRL_TEST_BIT0_MASK"])
	assert.Equal(suite.T(), "0x20", consts["ATTINY817_PORTA_PIN0CTRL_TEST_BIT1_MASK"])

	// Interrupt vector indexes.
	assert.Equal(suite.T(), "0", consts["ATTINY817_IRQ_RESET"])
	assert.Equal(suite.T(), "1", consts["ATTINY817_IRQ_CRCSCAN_NMI"])
	assert.Equal(suite.T(), "3", consts["ATTINY817_IRQ_PORTB_INT0"])
	assert.Equal(suite.T(), "4", consts["ATTINY817_IRQ_PORTB_INT1"])

	// Enum values, emitted once per peripheral type.
	assert.Equal(suite.T(), "0", consts["ATTINY817_PORT_PORT_ISC_INTDISABLE"])
	assert.Equal(suite.T(), "5", consts["ATTINY817_PORT_PORT_ISC_LEVEL"])
	assert.Equal(suite.T(), "1", consts["ATTINY817_ADC_ADC_RESSEL_8BIT"])
}

// TestGenerateEmptyDatabase checks that a database without devices is
// rejected instead of producing an empty output directory.
func (suite *TestSuite) TestGenerateEmptyDatabase() {
	outDir := filepath.Join(suite.tempDir, "empty")
	err := generator.Generate(database.NewDatabase(), outDir)
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "no devices")
}

// parseConstants extracts name = value pairs from generated Go source.
// gofmt pads the alignment, so the values are matched after trimming.
func parseConstants(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || strings.ContainsAny(name, " \t") {
			continue
		}
		out[name] = value
	}
	return out
}
