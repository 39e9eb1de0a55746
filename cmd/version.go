// =============================================================================
// Sales Reporter - Version Command
// =============================================================================
//
// 'salesreport version' prints the release of the reporter and the Go runtime
// it was built with, so a report file can be traced to the binary that wrote
// it.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the reporter release, overridden at link time with
// -ldflags "-X github.com/ginjaninja78/sales-reporter/cmd.Version=...".
var Version = "1.0.0"

// Commit is the source revision, set the same way as Version.
var Commit = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the reporter version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "salesreport %s (commit %s, %s %s/%s)\n",
			Version, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
