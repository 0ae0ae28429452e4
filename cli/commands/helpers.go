package commands

import (
	"fmt"
	"os"

	"github.com/satishbabariya/chipdb"
	"github.com/satishbabariya/chipdb/cli/internal/config"
	"github.com/satishbabariya/chipdb/cli/internal/ui"
	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/internal/debug"
)

// getDocumentPath resolves the device file path using consistent logic:
// 1. Use the first positional argument if provided
// 2. Use the explicit flag value if it differs from the config default
// 3. Fall back to the configured document path
func getDocumentPath(flagValue string, args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if flagValue != "" {
		return flagValue
	}
	return cfg.DocumentPath
}

// loadConfig loads CLI configuration, degrading to defaults with a
// warning when resolution fails.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		ui.PrintWarning("Failed to load configuration, using defaults: %v", err)
		return &config.Config{
			DocumentPath: "device.atdf",
			OutputPath:   "./chip",
			ExportPath:   "device.sqlite",
		}
	}
	return cfg
}

// loadDatabase reads and ingests a device file. Warnings are printed,
// errors are pretty-printed with source excerpts and turn into a
// returned error.
func loadDatabase(path string) (*database.Database, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("device file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read device file: %w", err)
	}

	db, diags := chipdb.LoadString(path, string(content))

	if debug.Enabled() {
		log := debug.With("file", path)
		for _, warning := range diags.Warnings() {
			log.Warn("document warning", "message", warning.Message())
		}
		for _, err := range diags.Errors() {
			log.Error("document error", "message", err.Message())
		}
	}

	if diags.HasErrors() {
		ui.PrintError("Device file loading failed:")
		fmt.Fprintf(os.Stderr, "\n%s\n", diags.ToPrettyString(path, string(content)))
		return nil, fmt.Errorf("device file has errors")
	}

	if len(diags.Warnings()) > 0 {
		ui.PrintWarning("Device file loaded with warnings:")
		fmt.Fprintf(os.Stderr, "\n%s\n", diags.WarningsToPrettyString(path, string(content)))
	}

	return db, nil
}
