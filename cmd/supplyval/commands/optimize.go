package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adverify/supplyval/internal/optimizer"
)

var optimizeFlags struct {
	Domain  string
	Output  string
	InPlace bool
}

var optimizeCmd = &cobra.Command{
	Use:           "optimize [file]",
	Short:         "Normalize an ads.txt file",
	GroupID:       "validation",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Rewrite an ads.txt document (or stdin when no file is given) into
normalized form: duplicates removed, variables grouped by type, records
sorted by advertising system, and invalid lines dropped.

Running optimize on already-optimized output is a no-op.

Examples:
  # Print the normalized document to stdout
  supplyval optimize ./ads.txt

  # Normalize in place
  supplyval optimize ./ads.txt --write

  # Normalize with a defaulted OWNERDOMAIN
  supplyval optimize ./ads.txt --domain pub.example.com

  # Write to a different file
  supplyval optimize ./ads.txt --output ./ads-clean.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if optimizeFlags.InPlace && len(args) == 0 {
			return fmt.Errorf("--write requires a file argument")
		}

		content, err := readInput(args)
		if err != nil {
			return err
		}

		optimized := optimizer.Optimize(content, optimizeFlags.Domain)

		switch {
		case optimizeFlags.InPlace:
			if err := os.WriteFile(args[0], []byte(optimized), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			fmt.Printf("Wrote %s\n", args[0])
		case optimizeFlags.Output != "":
			if err := os.WriteFile(optimizeFlags.Output, []byte(optimized), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", optimizeFlags.Output, err)
			}
			fmt.Printf("Wrote %s\n", optimizeFlags.Output)
		default:
			fmt.Print(optimized)
		}
		return nil
	},
}

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeFlags.Domain, "domain", "d", "", "Publisher domain the document belongs to")
	optimizeCmd.Flags().StringVarP(&optimizeFlags.Output, "output", "o", "", "Write the normalized document to this file")
	optimizeCmd.Flags().BoolVarP(&optimizeFlags.InPlace, "write", "w", false, "Rewrite the input file in place")
}
