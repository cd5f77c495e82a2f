package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adverify/supplyval/internal/crosscheck"
	"github.com/adverify/supplyval/internal/fetch"
	"github.com/adverify/supplyval/internal/logger"
	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/presenter"
	"github.com/adverify/supplyval/internal/repository"
	"github.com/adverify/supplyval/internal/usecase/validate"
)

var validateFlags struct {
	PersistenceFlags
	Input        string
	NoCrossCheck bool
	Timeout      time.Duration
	ErrorCodes   []string
	WarningCodes []string
}

var validateCmd = &cobra.Command{
	Use:           "validate <domain>",
	Short:         "Validate a publisher's ads.txt against seller directories",
	GroupID:       "validation",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Fetch and validate the ads.txt document for a publisher domain.

Each record is checked for syntax, compared against the previously stored
snapshot to flag duplicates, and cross-checked against the sellers.json
directory of its advertising system. The fetched document replaces the
stored snapshot when persistence flags are given.

Examples:
  # Validate the live ads.txt for a domain
  supplyval validate pub.example.com

  # Validate a local file instead of fetching
  supplyval validate pub.example.com --input ./ads.txt

  # Validate with duplicate history from a JSON store
  supplyval validate pub.example.com --file ./snapshots.json

  # Skip the sellers.json cross-check
  supplyval validate pub.example.com --no-crosscheck

  # Show only records with a specific warning
  supplyval validate pub.example.com --warning-code DOMAIN_MISMATCH`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain := args[0]
		ctx := context.Background()
		log := logger.NewDefaultLogger()

		var repo model.SnapshotRepository
		if validateFlags.FilePath != "" || validateFlags.DynamoTable != "" {
			var err error
			repo, err = repository.NewRepository(ctx, repository.RepositoryConfig{
				FilePath:       validateFlags.FilePath,
				DynamoTable:    validateFlags.DynamoTable,
				DynamoEndpoint: validateFlags.DynamoEndpoint,
			})
			if err != nil {
				return err
			}
		}

		fetchClient := fetch.NewClient(validateFlags.Timeout)
		var checker *crosscheck.Checker
		if !validateFlags.NoCrossCheck {
			checker = crosscheck.New(fetchClient, log)
		}

		uc := validate.NewValidateUseCase(repo, checker, fetchClient, log)

		var result *validate.Result
		var err error
		if validateFlags.Input != "" {
			data, readErr := os.ReadFile(validateFlags.Input)
			if readErr != nil {
				return fmt.Errorf("failed to read %s: %w", validateFlags.Input, readErr)
			}
			result, err = uc.ValidateContent(ctx, domain, string(data))
		} else {
			result, err = uc.ValidateDomain(ctx, domain)
		}
		if err != nil {
			return err
		}

		entries := result.Entries
		if len(validateFlags.ErrorCodes) > 0 || len(validateFlags.WarningCodes) > 0 {
			filtered := model.FilterRecords(model.Records(entries), model.RecordFilter{
				ErrorCodes:   validateFlags.ErrorCodes,
				WarningCodes: validateFlags.WarningCodes,
			})
			entries = make([]model.Entry, 0, len(filtered))
			for _, r := range filtered {
				entries = append(entries, r)
			}
		}

		presenter.WriteReport(os.Stdout, domain, entries)

		if result.ErrorCount > 0 {
			return ExitWithCode(2, fmt.Errorf("document contains %d invalid records", result.ErrorCount))
		}
		return nil
	},
}

func init() {
	addPersistenceFlags(validateCmd, &validateFlags.PersistenceFlags)

	validateCmd.Flags().StringVarP(&validateFlags.Input, "input", "i", "", "Validate a local file instead of fetching the live document")
	validateCmd.Flags().BoolVar(&validateFlags.NoCrossCheck, "no-crosscheck", false, "Skip the sellers.json cross-check")
	validateCmd.Flags().DurationVar(&validateFlags.Timeout, "timeout", 30*time.Second, "HTTP timeout for fetches")
	validateCmd.Flags().StringSliceVar(&validateFlags.ErrorCodes, "error-code", nil, "Show only records with these error codes")
	validateCmd.Flags().StringSliceVar(&validateFlags.WarningCodes, "warning-code", nil, "Show only records with these warning codes")
}
