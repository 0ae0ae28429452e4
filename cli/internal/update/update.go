// Package update compares the running CLI version against the newest
// known release.
package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"

	"github.com/satishbabariya/chipdb/cli/internal/ui"
)

// latestKnown is the newest release this build is aware of. A release
// pipeline stamps it via -ldflags alongside the version package.
var latestKnown = "0.1.0"

// CheckForUpdates reports whether a newer version than currentVersion is
// available.
func CheckForUpdates(currentVersion string) error {
	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	latest, err := version.NewVersion(latestKnown)
	if err != nil {
		return fmt.Errorf("invalid latest version format: %w", err)
	}

	if current.LessThan(latest) {
		ui.PrintWarning("A new version is available!")
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Printf("Latest version:  %s\n", latestKnown)
		fmt.Printf("\nDownload: %s\n", GetDownloadURL(latestKnown))
		fmt.Printf("Or update with: go install github.com/satishbabariya/chipdb/cli@latest\n")
		return nil
	}

	ui.PrintSuccess("chipdb %s is up to date", currentVersion)
	return nil
}

// GetDownloadURL returns the release download URL for the current
// platform.
func GetDownloadURL(v string) string {
	return fmt.Sprintf("https://github.com/satishbabariya/chipdb/releases/download/v%s/chipdb-%s-%s", v, runtime.GOOS, runtime.GOARCH)
}
