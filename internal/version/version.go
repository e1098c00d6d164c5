package version

import "fmt"

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/mdmeta/internal/version.Version=v0.3.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `mdmeta --version`.
func String() string {
	return fmt.Sprintf("mdmeta %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
