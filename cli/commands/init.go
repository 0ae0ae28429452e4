package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/chipdb/cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [project-dir]",
	Short: "Initialize a new chipdb project",
	Long: `Initialize a new chipdb project.

Creates a starter device description file, a .chipdb.yaml configuration
and a .gitignore in the target directory. Existing files are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const starterDevice = `<?xml version="1.0" encoding="UTF-8"?>
<avr-tools-device-file schema-version="0.4">
  <modules>
    <module name="PORT" caption="I/O Pin Configuration">
      <register-group name="PORT" caption="I/O Ports">
        <register name="DIR" caption="Data Direction" offset="0x00" size="1" initval="0x00"/>
        <register name="OUT" caption="Output Value" offset="0x04" size="1" initval="0x00"/>
        <register name="IN" caption="Input Value" offset="0x08" size="1" rw="R"/>
      </register-group>
    </module>
  </modules>
  <devices>
    <device name="EXAMPLE1" architecture="AVR8X" family="AVR">
      <peripherals>
        <module name="PORT">
          <instance name="PORTA">
            <register-group name="PORTA" name-in-module="PORT" offset="0x0400"/>
          </instance>
        </module>
      </peripherals>
      <interrupts>
        <interrupt name="RESET" index="0"/>
      </interrupts>
    </device>
  </devices>
</avr-tools-device-file>
`

const starterConfig = `# chipdb configuration
document_path: device.atdf
output_path: ./chip
export_path: device.sqlite
`

const starterGitignore = `# Generated files
chip/
*.sqlite

# Environment variables
.env
.env.local

# IDE
.idea/
.vscode/
*.swp

# OS
.DS_Store
`

func runInit(cmd *cobra.Command, args []string) error {
	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	ui.PrintHeader("chipdb", "Initialize Project")

	if projectDir != "." {
		if err := os.MkdirAll(projectDir, 0755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
		ui.PrintInfo("Created project directory: %s", projectDir)
	}

	created := 0
	for _, file := range []struct {
		name    string
		content string
	}{
		{"device.atdf", starterDevice},
		{".chipdb.yaml", starterConfig},
		{".gitignore", starterGitignore},
	} {
		path := filepath.Join(projectDir, file.name)
		if _, err := os.Stat(path); err == nil {
			ui.PrintWarning("%s already exists, skipping", path)
			continue
		}
		if err := os.WriteFile(path, []byte(file.content), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		ui.PrintSuccess("Created %s", path)
		created++
	}

	if created > 0 {
		fmt.Println()
	}
	ui.PrintSection("Next Steps")
	ui.PrintList([]string{
		"Replace device.atdf with your vendor's device description file",
		"Run: chipdb validate",
		"Run: chipdb generate",
	})

	return nil
}
