package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/chipdb/cli/internal/ui"
	"github.com/satishbabariya/chipdb/cli/internal/watch"
	"github.com/satishbabariya/chipdb/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate [device-file]",
	Short: "Generate Go register map headers",
	Long: `Generate Go register map headers from a vendor device description file.

This command will:
- Parse the device file and build the entity graph
- Run the offset and enum inference passes
- Render one Go header per device with peripheral bases, register
  addresses, field masks, enum values and interrupt vector indexes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateFile      string
	generateOut       string
	generateWatch     bool
	generateWatchOnly bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "Path to device description file")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory for generated headers")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch the device file for changes")
	generateCmd.Flags().BoolVar(&generateWatchOnly, "watch-only", false, "Only watch, don't generate initially")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	documentPath := getDocumentPath(generateFile, args, cfg)
	outputDir := generateOut
	if outputDir == "" {
		outputDir = cfg.OutputPath
	}

	// Watch mode
	if generateWatch || generateWatchOnly {
		return runGenerateWatch(documentPath, outputDir, !generateWatchOnly)
	}

	ui.PrintHeader("chipdb", "Generate Headers")

	spinner, _ := ui.PrintSpinner("Loading device file...")

	db, err := loadDatabase(documentPath)
	if err != nil {
		spinner.Stop()
		return err
	}

	spinner.UpdateText("Generating headers...")

	if err := generator.Generate(db, outputDir); err != nil {
		spinner.Stop()
		return fmt.Errorf("header generation failed: %w", err)
	}

	spinner.Stop()

	// Show generation info
	info := pterm.Info.WithPrefix(pterm.Prefix{
		Text:  "INFO",
		Style: pterm.NewStyle(pterm.FgBlue),
	})

	info.Println(fmt.Sprintf("Device file: %s", documentPath))
	info.Println(fmt.Sprintf("Output: %s", outputDir))
	fmt.Println()

	absPath, _ := filepath.Abs(outputDir)
	ui.PrintSuccess("Generated headers at %s", absPath)
	fmt.Println()

	ui.PrintSection("Generated Files")
	var files []string
	for _, device := range db.WalkDevices() {
		files = append(files, fmt.Sprintf("%s  - %s register map", generator.HeaderFileName(device.Name()), device.Name()))
	}
	ui.PrintList(files)

	fmt.Println()
	ui.PrintSection("Next Steps")
	nextSteps := []string{
		"Import the generated package in your firmware support code",
		"Address registers through the generated constants",
		"Re-run chipdb generate whenever the vendor file changes",
	}
	ui.PrintList(nextSteps)

	return nil
}

func runGenerateWatch(documentPath, outputDir string, generateInitially bool) error {
	ui.PrintHeader("chipdb", "Watch Mode")

	if _, err := os.Stat(documentPath); os.IsNotExist(err) {
		return fmt.Errorf("device file not found: %s", documentPath)
	}

	generateCallback := func() error {
		ui.PrintInfo("Device file changed, regenerating...")

		db, err := loadDatabase(documentPath)
		if err != nil {
			return err
		}

		if err := generator.Generate(db, outputDir); err != nil {
			return fmt.Errorf("header generation failed: %w", err)
		}

		absPath, _ := filepath.Abs(outputDir)
		ui.PrintSuccess("Generated headers at %s", absPath)
		return nil
	}

	// Generate initially if requested
	if generateInitially {
		if err := generateCallback(); err != nil {
			return err
		}
	}

	watcher, err := watch.NewWatcher(documentPath, generateCallback)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	watcher.Start()

	ui.PrintSuccess("Watching %s for changes... (Press Ctrl+C to stop)", documentPath)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ui.PrintInfo("\nStopping watch mode...")
	return nil
}
