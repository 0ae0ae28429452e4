package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/chipdb/cli/internal/ui"
	"github.com/satishbabariya/chipdb/cli/internal/update"
	"github.com/satishbabariya/chipdb/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

var (
	versionCheck bool
	versionFull  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check whether a newer release is available")
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "Print build metadata as well")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()

	if versionFull {
		fmt.Println(info.FullString())
	} else {
		fmt.Println(info.String())
	}

	if versionCheck {
		fmt.Println()
		if err := update.CheckForUpdates(info.Version); err != nil {
			ui.PrintWarning("Update check failed: %v", err)
		}
	}

	return nil
}
