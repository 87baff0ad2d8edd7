// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "collect5",
	Short: "Collect5 is a data-collection server for field-survey projects",
	Long: `Collect5 is a data-collection server for field-survey projects.
Projects carry a hierarchical form definition; clients upload parent, child
and branch entries through a JSON API keyed by client-generated UUIDs.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
