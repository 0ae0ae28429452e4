// Package commands implements the chipdb CLI commands.
package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/chipdb/cli/internal/ui"
	"github.com/satishbabariya/chipdb/cli/internal/version"
	"github.com/satishbabariya/chipdb/internal/debug"
	"github.com/satishbabariya/chipdb/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "chipdb",
	Short: "Turn vendor device description files into headers and databases",
	Long: `chipdb reads ATDF device description files, builds an entity graph of
peripherals, registers, bitfields, enums and interrupts, and renders Go
register map headers or SQLite dumps from it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var rootDebug bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
	// Consumed by the telemetry package straight from os.Args; declared
	// here so cobra accepts it.
	rootCmd.PersistentFlags().Bool("no-telemetry", false, "Disable usage telemetry")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		debug.Init(rootDebug || os.Getenv("CHIPDB_DEBUG") != "")
	}
}

// Execute is the main entry point for the CLI
func Execute() error {
	telemetry.Init(version.Version, os.Getenv("CHIPDB_TELEMETRY") == "1")
	defer telemetry.Shutdown()

	start := time.Now()
	err := rootCmd.Execute()
	telemetry.RecordCommand(commandPath(), time.Since(start), err)

	if err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}

// commandPath names the invoked subcommand for usage events, without
// flag values or file paths.
func commandPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return "help"
}
