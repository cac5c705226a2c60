// Package version holds build identity injected with -ldflags:
//
//	-X github.com/sofmeright/crossforge/src/version.Version=0.1.0
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("crossforge %s (%s, %s)", Version, Commit, BuildDate)
}
