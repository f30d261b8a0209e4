// Package version holds build metadata injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the full build stamp, e.g. "v1.2.0 (abc1234, 2026-08-31)".
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}
