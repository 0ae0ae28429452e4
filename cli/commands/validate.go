package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/chipdb/cli/internal/ui"
	"github.com/satishbabariya/chipdb/database"
)

var validateCmd = &cobra.Command{
	Use:   "validate [device-file]",
	Short: "Validate a device description file",
	Long: `Validate a vendor device description file.

This command will:
- Parse the device file
- Build the entity graph and run the inference passes
- Check referential integrity of the finished graph
- Display what was found`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var (
	validateFile   string
	validateReport bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Path to device description file")
	validateCmd.Flags().BoolVar(&validateReport, "report", false, "Render a register map report per device")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	documentPath := getDocumentPath(validateFile, args, cfg)

	ui.PrintHeader("chipdb", "Validate Device File")

	db, err := loadDatabase(documentPath)
	if err != nil {
		return err
	}

	absPath, _ := filepath.Abs(documentPath)
	ui.PrintSuccess("Device file is valid: %s", absPath)

	fmt.Println()
	ui.PrintSection("Graph Summary")
	ui.PrintTable(
		[]string{"Category", "Count"},
		[][]string{
			{"Devices", fmt.Sprint(db.Count(database.TagDeviceInstance))},
			{"Peripheral types", fmt.Sprint(db.Count(database.TagPeripheralType))},
			{"Register groups", fmt.Sprint(db.Count(database.TagRegisterGroupType))},
			{"Registers", fmt.Sprint(db.Count(database.TagRegisterType))},
			{"Fields", fmt.Sprint(db.Count(database.TagFieldType))},
			{"Enums", fmt.Sprint(db.Count(database.TagEnumType))},
			{"Interrupts", fmt.Sprint(db.Count(database.TagInterruptInstance))},
		},
	)

	devices := db.WalkDevices()
	if len(devices) > 0 {
		fmt.Println()
		ui.PrintSection("Devices")
		for _, device := range devices {
			ui.PrintInfo("%s [%s/%s] (%d peripherals, %d interrupts)",
				device.Name(), device.Architecture(), device.Family(),
				len(device.Peripherals()), len(device.Interrupts()))
		}
	}

	if validateReport {
		fmt.Println()
		if err := ui.PrintMarkdown(deviceReport(db)); err != nil {
			ui.PrintWarning("Report rendering failed: %v", err)
		}
	}

	return nil
}

// deviceReport builds a markdown register map report for every device in
// the graph.
func deviceReport(db *database.Database) string {
	var b strings.Builder

	for _, device := range db.WalkDevices() {
		fmt.Fprintf(&b, "# %s\n\n", device.Name())
		fmt.Fprintf(&b, "Architecture %s, family %s", device.Architecture(), device.Family())
		if series, ok := device.Series(); ok {
			fmt.Fprintf(&b, ", series %s", series)
		}
		b.WriteString(".\n\n")

		for _, peripheral := range device.Peripherals() {
			fmt.Fprintf(&b, "## %s at `%#04x`\n\n", peripheral.Name(), peripheral.Offset())

			registers := peripheral.Registers()
			if len(registers) == 0 {
				b.WriteString("No registers.\n\n")
				continue
			}
			b.WriteString("| Register | Address | Bits | Access |\n")
			b.WriteString("|---|---|---|---|\n")
			for _, register := range registers {
				fmt.Fprintf(&b, "| %s | `%#04x` | %d | %s |\n",
					register.Name(),
					peripheral.Offset()+register.Offset(),
					register.Size(),
					register.Access())
			}
			b.WriteString("\n")
		}

		if interrupts := device.Interrupts(); len(interrupts) > 0 {
			b.WriteString("## Interrupt vectors\n\n")
			for _, interrupt := range interrupts {
				fmt.Fprintf(&b, "- `%d` %s\n", interrupt.Index(), interrupt.Name())
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
