// Package version carries the build identity stamped into the binary.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Stamped by the release pipeline via -ldflags; the defaults identify a
// source build.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Info holds the resolved version information of this build.
type Info struct {
	Version   string
	BuildDate string
	GitCommit string
	GoVersion string
	Platform  string
}

// Get resolves the build identity, including the runtime platform.
func Get() Info {
	return Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the one-line version string.
func (i Info) String() string {
	return fmt.Sprintf("chipdb version %s (%s %s)", i.Version, i.Platform, i.GoVersion)
}

// FullString returns the multi-line version string with build metadata.
func (i Info) FullString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "chipdb version %s\n", i.Version)
	fmt.Fprintf(&b, "Build Date: %s\n", i.BuildDate)
	fmt.Fprintf(&b, "Git Commit: %s\n", i.GitCommit)
	fmt.Fprintf(&b, "Platform: %s\n", i.Platform)
	fmt.Fprintf(&b, "Go Version: %s", i.GoVersion)
	return b.String()
}
