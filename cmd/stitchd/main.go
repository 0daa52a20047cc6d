// stitchd CLI - Command-line interface for the stitchd GraphQL stitcher
package main

import (
	"github.com/getstitchd/stitchd/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	cli.Execute()
}
