package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show stitchd version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
				"version":   Version,
				"commit":    Commit,
				"buildDate": BuildDate,
				"goVersion": runtime.Version(),
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stitchd %s (commit %s, built %s, %s)\n",
			Version, Commit, BuildDate, runtime.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
