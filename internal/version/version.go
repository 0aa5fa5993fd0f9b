// Package version holds build-time version information, populated via
// ldflags by the release build.
package version

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
