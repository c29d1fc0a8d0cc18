// Package checkcmd is the cobra command tree for safesqlcheck, a
// standalone harness exercising the compile pipeline the way the
// teacher lineage's cli/cmd package exposes sqlcode's pipeline as a
// build-time tool.
package checkcmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "safesqlcheck",
	Short:        "safesqlcheck",
	SilenceUsage: true,
	Long:         "Lex, parse, and optionally type-check a single SQL statement against a live schema.",
}

var databaseURL string

// Execute runs the command tree.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "postgres connection string for schema-backed checks; omit to check syntax only")
	return rootCmd.Execute()
}
