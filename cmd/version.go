package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/southpaw/internal/store"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "southpaw", version)
		fmt.Fprintf(cmd.OutOrStdout(), "snapshot schema v%d\n", store.CurrentSchemaVersion)
	},
}
