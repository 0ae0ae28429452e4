package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/chipdb/cli/internal/ui"
	"github.com/satishbabariya/chipdb/generator/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [device-file]",
	Short: "Export the entity graph to a SQLite file",
	Long: `Export the loaded entity graph to a SQLite file for inspection.

This command will:
- Parse the device file and build the entity graph
- Run the offset and enum inference passes
- Dump entities, attributes, relations and instance links into SQLite
  tables that ad hoc queries can work with`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var (
	exportFile string
	exportDB   string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Path to device description file")
	exportCmd.Flags().StringVar(&exportDB, "db", "", "Path of the SQLite file to write")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	documentPath := getDocumentPath(exportFile, args, cfg)
	dbPath := exportDB
	if dbPath == "" {
		dbPath = cfg.ExportPath
	}

	ui.PrintHeader("chipdb", "Export Graph")

	spinner, _ := ui.PrintSpinner("Loading device file...")

	db, err := loadDatabase(documentPath)
	if err != nil {
		spinner.Stop()
		return err
	}

	spinner.UpdateText("Writing SQLite file...")

	if err := export.ToSQLite(cmd.Context(), db, dbPath); err != nil {
		spinner.Stop()
		return fmt.Errorf("export failed: %w", err)
	}

	spinner.Stop()

	absPath, _ := filepath.Abs(dbPath)
	ui.PrintSuccess("Exported graph to %s", absPath)
	fmt.Println()

	ui.PrintSection("Tables")
	ui.PrintList([]string{
		"entities   - entity id and category",
		"attributes - sparse attribute values per entity",
		"relations  - parent/child edges keyed by relation kind",
		"instances  - instance-to-type links",
	})

	return nil
}
