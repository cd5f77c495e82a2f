package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "supplyval",
	Short: "Supplyval validates ads.txt files against sellers.json directories",
	Long: `A command-line tool for parsing, validating, and normalizing ads.txt
documents, cross-checking their records against the sellers.json
directories published by advertising systems.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "validation", Title: "Validation Commands:"},
		&cobra.Group{ID: "snapshots", Title: "Snapshot Commands:"},
	)

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(sellersCmd)
	rootCmd.AddCommand(snapshotCmd)
}
