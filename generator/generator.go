// Package generator renders Go register map headers from a loaded device
// database.
package generator

import (
	"fmt"

	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/generator/codegen"
	"github.com/satishbabariya/chipdb/internal/debug"
)

// Generator renders headers for every device held by a database.
type Generator struct {
	db *database.Database
}

// NewGenerator creates a new header generator.
func NewGenerator(db *database.Database) *Generator {
	debug.Debug("Creating new generator")
	return &Generator{db: db}
}

// Generate renders one header file per device in the database into
// outputDir.
func Generate(db *database.Database, outputDir string) error {
	return NewGenerator(db).GenerateHeaders(outputDir)
}

// HeaderFileName returns the file name a device's header is written to.
func HeaderFileName(deviceName string) string {
	return codegen.DeviceFileName(deviceName)
}

// GenerateHeaders renders every device header into outputDir.
func (g *Generator) GenerateHeaders(outputDir string) error {
	debug.Debug("Starting header generation", "outputDir", outputDir)

	devices := codegen.CollectDevices(g.db)
	debug.Debug("Devices collected", "count", len(devices))

	if len(devices) == 0 {
		debug.Error("No devices found in database")
		return fmt.Errorf("database holds no devices to generate from")
	}

	if err := validateDevices(devices); err != nil {
		debug.Error("Device validation failed", "error", err)
		return fmt.Errorf("device validation failed: %w", err)
	}

	for _, device := range devices {
		debug.Debug("Generating device header", "device", device.Name)
		if err := codegen.GenerateDeviceFile(device, outputDir); err != nil {
			debug.Error("Failed to generate device header", "device", device.Name, "error", err)
			return fmt.Errorf("failed to generate header for %s: %w", device.Name, err)
		}
	}

	debug.Info("Header generation completed", "outputDir", outputDir, "devices", len(devices))
	return nil
}

// validateDevices rejects device sets whose headers would land on the
// same output file.
func validateDevices(devices []codegen.DeviceInfo) error {
	fileNames := make(map[string]string) // file name -> device name
	for _, device := range devices {
		file := codegen.DeviceFileName(device.Name)
		debug.Debug("Validating device", "device", device.Name, "file", file)
		if existing, exists := fileNames[file]; exists {
			return fmt.Errorf("devices %q and %q both map to the output file %q", existing, device.Name, file)
		}
		fileNames[file] = device.Name
	}
	return nil
}
