package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/parser"
	"github.com/adverify/supplyval/internal/presenter"
)

var parseFlags struct {
	Domain string
	Format string
}

var parseCmd = &cobra.Command{
	Use:           "parse [file]",
	Short:         "Parse an ads.txt file and report syntax findings",
	GroupID:       "validation",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Parse an ads.txt file (or stdin when no file is given) and print each
entry with its parse outcome. No network access is performed.

If --domain is given and the document declares no OWNERDOMAIN variable,
a default one is derived from the publisher domain, exactly as the
validate command would.

Examples:
  # Parse a local file
  supplyval parse ./ads.txt

  # Parse stdin with a publisher domain
  cat ads.txt | supplyval parse --domain pub.example.com

  # Compact table output
  supplyval parse ./ads.txt --format table`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(args)
		if err != nil {
			return err
		}

		entries := parser.ParseContent(content, parseFlags.Domain)

		switch parseFlags.Format {
		case "table":
			presenter.WriteRecordTable(os.Stdout, model.Records(entries))
		default:
			presenter.WriteReport(os.Stdout, displayDomain(parseFlags.Domain), entries)
		}

		for _, record := range model.Records(entries) {
			if !record.IsValid {
				return ExitWithCode(2, fmt.Errorf("document contains invalid records"))
			}
		}
		return nil
	},
}

// readInput reads the named file, or stdin when no argument is given
func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func displayDomain(domain string) string {
	if domain == "" {
		return "(no publisher domain)"
	}
	return domain
}

func init() {
	parseCmd.Flags().StringVarP(&parseFlags.Domain, "domain", "d", "", "Publisher domain the document belongs to")
	parseCmd.Flags().StringVar(&parseFlags.Format, "format", "report", "Output format: report or table")
}
